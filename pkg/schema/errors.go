package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrToolFailed is returned when the schema tool exits non-zero
	ErrToolFailed = errors.New("schema tool failed")

	// ErrToolTimeout is returned when the schema tool exceeds its timeout
	ErrToolTimeout = errors.New("schema tool timed out")

	// ErrNoOutput is returned when the tool exits zero without writing output
	ErrNoOutput = errors.New("schema tool produced no output file")

	// ErrMalformedOutput is returned when the output file is not parseable
	ErrMalformedOutput = errors.New("schema tool output is not parseable")
)

// ExtractionError is the failure of one zone's schema extraction. It carries
// the zone name and the tool's diagnostic output; sibling zones are never
// affected by it.
type ExtractionError struct {
	Zone   string
	Stderr string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("schema extraction failed for zone %q: %v: %s", e.Zone, e.Err, e.Stderr)
	}
	return fmt.Sprintf("schema extraction failed for zone %q: %v", e.Zone, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
