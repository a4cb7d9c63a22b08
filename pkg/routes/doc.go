// Package routes holds the host route table snapshot and the per-zone
// isolation transform.
//
// The host framework exports its application registry as a YAML snapshot
// (apps plus routes); LoadTable reads it and Isolate projects it down to one
// zone. Isolation is a pure data transform rather than any kind of dynamic
// module or route registration: it cannot leak state between zones, so
// isolating many zones concurrently is safe by construction.
package routes
