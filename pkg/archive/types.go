package archive

import (
	"time"

	"github.com/zonekit/zonekit/pkg/gen"
)

// SnapshotIDFormat is the timestamp layout used for snapshot directory
// names. It sorts lexicographically in creation order.
const SnapshotIDFormat = "20060102_150405"

// ManifestName is the per-snapshot manifest file.
const ManifestName = "manifest.json"

// latestPointerName is the file under the archive root that names the
// current snapshot.
const latestPointerName = "latest.json"

// TaskOutcome records one (zone, language) task in a snapshot manifest.
// Failed tasks appear here with their error; their output is not copied.
type TaskOutcome struct {
	Zone     string `json:"zone"`
	Language string `json:"language"`
	Success  bool   `json:"success"`
	Files    int    `json:"files,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Manifest describes one published snapshot.
type Manifest struct {
	ID        string        `json:"id"`
	RunID     string        `json:"run_id"`
	CreatedAt time.Time     `json:"created_at"`
	Tasks     []TaskOutcome `json:"tasks"`

	// Succeeded and Failed are task counts, kept denormalized so listings
	// do not have to walk the task list.
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// Bytes is the total size of the archived client files.
	Bytes int64 `json:"bytes"`
}

// latestPointer is the on-disk form of the latest reference.
type latestPointer struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func outcomeFromResult(r *gen.Result) TaskOutcome {
	return TaskOutcome{
		Zone:     r.Zone,
		Language: r.Language,
		Success:  r.Success,
		Files:    len(r.Files),
		Bytes:    r.Bytes,
		Error:    r.Error,
	}
}
