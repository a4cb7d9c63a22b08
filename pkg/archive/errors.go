package archive

import "errors"

var (
	// ErrNothingToArchive is returned when a run produced no successful clients
	ErrNothingToArchive = errors.New("no successful clients to archive")

	// ErrNoLatest is returned when no snapshot has ever been published
	ErrNoLatest = errors.New("no latest snapshot")

	// ErrSnapshotNotFound is returned when a named snapshot does not exist
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
