package zones

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoZones is returned when a configuration declares no zones at all
	ErrNoZones = errors.New("no zones configured")

	// ErrZoneNotFound is returned when a zone name is not in the registry
	ErrZoneNotFound = errors.New("zone not found")

	// ErrEmptyZoneName is returned when a zone is declared with an empty name
	ErrEmptyZoneName = errors.New("zone name cannot be empty")
)

// ValidationError describes one violation found while validating the zone
// partition. Kind is one of the Kind* constants; Zone and App narrow the
// violation down to the offending entry.
type ValidationError struct {
	Kind string
	Zone string
	App  string
}

const (
	KindDuplicateName   = "duplicate_name"
	KindDuplicatePrefix = "duplicate_prefix"
	KindEmptyApps       = "empty_apps"
	KindUnknownApp      = "unknown_app"
	KindSharedApp       = "shared_app"
)

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindDuplicateName:
		return fmt.Sprintf("zone %q: duplicate zone name", e.Zone)
	case KindDuplicatePrefix:
		return fmt.Sprintf("zone %q: path prefix already claimed by another zone", e.Zone)
	case KindEmptyApps:
		return fmt.Sprintf("zone %q: apps list cannot be empty", e.Zone)
	case KindUnknownApp:
		return fmt.Sprintf("zone %q: app %q not found in application registry", e.Zone, e.App)
	case KindSharedApp:
		return fmt.Sprintf("zone %q: app %q already belongs to another zone", e.Zone, e.App)
	default:
		return fmt.Sprintf("zone %q: invalid configuration", e.Zone)
	}
}

// ValidationErrors aggregates every violation found in one validation pass.
// A single run reports the complete problem set instead of stopping at the
// first failure.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("%d zone validation error(s): %s", len(errs), strings.Join(msgs, "; "))
}
