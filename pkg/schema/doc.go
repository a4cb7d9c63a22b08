// Package schema invokes the external schema-extraction tool against
// per-zone isolated route tables.
//
// The tool is an external collaborator: the Extractor writes the isolated
// table to a temp file, expands a configurable argv template and runs the
// tool as a subprocess under a bounded timeout. The contract is exit 0 plus
// a parseable document at the output path, or a non-zero exit with
// diagnostics on stderr. Either way the outcome is confined to that zone.
//
// An optional LRU cache keyed by the isolated table's fingerprint skips the
// subprocess entirely when a zone's projection has not changed since the
// last successful run.
package schema
