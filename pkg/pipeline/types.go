package pipeline

import (
	"time"

	"github.com/zonekit/zonekit/pkg/archive"
	"github.com/zonekit/zonekit/pkg/gen"
)

// Options narrows one run. Zero values mean "everything the configuration
// enables".
type Options struct {
	// Zones restricts the run to the named zones. Empty means all.
	Zones []string

	// Languages restricts the run to the named targets. Empty means all
	// enabled targets.
	Languages []string

	// Workers overrides the configured pool size when positive.
	Workers int

	// SkipArchive suppresses the archive stage for this run.
	SkipArchive bool
}

// ZoneOutcome records the schema extraction stage for one zone. A zone
// that failed extraction contributes no generation tasks.
type ZoneOutcome struct {
	Zone        string
	SchemaPath  string
	Fingerprint string
	CacheHit    bool
	Duration    time.Duration
	Err         string
	Stderr      string
}

// Succeeded reports whether the zone's schema was produced.
func (z *ZoneOutcome) Succeeded() bool {
	return z.Err == ""
}

// Summary is the full account of one run. Every selected zone appears in
// Zones and every submitted task appears in Results; nothing is silently
// dropped.
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	Zones   []*ZoneOutcome
	Results []*gen.Result

	// Archive is the published snapshot, nil when archiving was disabled,
	// skipped, or there was nothing to archive.
	Archive *archive.Manifest

	// Pruned lists the snapshot IDs removed by retention after this run.
	Pruned []string
}

// FailedTasks counts generation results that did not succeed.
func (s *Summary) FailedTasks() int {
	n := 0
	for _, r := range s.Results {
		if !r.Success {
			n++
		}
	}
	return n
}

// FailedZones counts zones whose schema extraction failed.
func (s *Summary) FailedZones() int {
	n := 0
	for _, z := range s.Zones {
		if !z.Succeeded() {
			n++
		}
	}
	return n
}

// Clean reports whether every stage of the run succeeded.
func (s *Summary) Clean() bool {
	return s.FailedZones() == 0 && s.FailedTasks() == 0
}
