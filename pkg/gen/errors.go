package gen

import "errors"

var (
	// ErrNoTasks is returned when Run is called with an empty task list
	ErrNoTasks = errors.New("no generation tasks provided")

	// ErrToolFailed is recorded when a generator tool exits non-zero
	ErrToolFailed = errors.New("generator tool failed")

	// ErrToolTimeout is recorded when a generator tool exceeds its timeout
	ErrToolTimeout = errors.New("generator tool timed out")

	// ErrNoFiles is recorded when a tool exits zero but writes nothing
	ErrNoFiles = errors.New("generator tool produced no files")

	// ErrCanceled is recorded for tasks aborted by the global timeout
	ErrCanceled = errors.New("generation canceled")
)
