// Package pipeline drives a full generation run end to end.
//
// # Overview
//
// A run walks five stages in order:
//
//  1. Validate: the zone partition is checked against the route table's
//     apps; every violation is reported at once.
//  2. Isolate: each selected zone gets a pure projection of the global
//     route table containing only its member apps' routes.
//  3. Extract: the external schema tool turns each isolated table into a
//     schema document, with bounded concurrency and a fingerprint cache
//     that skips zones whose projection has not changed.
//  4. Generate: every (zone, language) pair becomes one task on the
//     bounded worker pool; a failing task never disturbs its siblings.
//  5. Archive: successful clients are published as an immutable snapshot
//     and the latest pointer moves atomically.
//
// The Summary accounts for every selected zone and every submitted task.
// Per-zone and per-task failures live in the Summary; Run returns an error
// only for setup problems that void the whole run.
//
// Watcher wraps the same flow in a rerun-on-change loop driven by
// filesystem notifications, with scheduled snapshot retention.
package pipeline
