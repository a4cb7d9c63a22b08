package pipeline

import "errors"

var (
	// ErrNoZonesSelected is returned when zone selection matches nothing
	ErrNoZonesSelected = errors.New("no zones selected")

	// ErrNoLanguagesSelected is returned when no enabled target matches
	ErrNoLanguagesSelected = errors.New("no generation targets selected")
)
