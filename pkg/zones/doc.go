// Package zones models the zone partition of an API surface.
//
// A zone is a named, non-overlapping group of host applications with its own
// visibility, auth and versioning metadata. The Registry is the validated,
// immutable representation of the whole partition: Load builds it from raw
// configuration in one all-or-nothing step, Validate cross-checks it against
// the host application registry and reports every violation in a single
// pass, and Get/All/Subset serve read-only lookups to the rest of the
// pipeline.
//
// Loading and validating are deliberately separate. Load only needs the
// configuration itself (structural checks: names, prefixes, defaults), so a
// Registry can be constructed and displayed without touching the host
// application registry. Validate takes the application snapshot as an
// explicit argument, which keeps the check side-effect free and easy to
// exercise in tests.
package zones
