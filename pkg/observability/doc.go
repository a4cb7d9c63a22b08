// Package observability provides structured logging and Prometheus metrics
// for the generation pipeline.
//
// The Logger is a thin wrapper over stdlib slog emitting JSON, with
// WithField/WithFields/WithError chaining for per-zone and per-task context.
// Metrics collects extraction, generation and archive counters on a private
// registry; because zonekit runs as a short-lived batch process the registry
// is flushed to a textfile (node-exporter textfile collector format) rather
// than served over HTTP.
package observability
