// Package archive versions generation output into timestamped snapshots.
//
// Each pipeline run that produced at least one successful client can be
// archived. A snapshot is a self-contained directory named by its creation
// timestamp, holding a copy of every successful client plus a manifest that
// records the run's full outcome, failures included. Snapshots are
// immutable once published.
//
// The "latest" pointer names the newest snapshot and is updated atomically:
// a snapshot is staged under a temporary name, renamed into place, and only
// then does the pointer move. A crash at any step leaves the previous
// pointer target intact.
package archive
