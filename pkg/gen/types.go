package gen

import "time"

// Task is one (zone, language) unit of work. The schema document for the
// zone must already exist at SchemaPath before the task is submitted.
type Task struct {
	Zone       string
	Language   string
	SchemaPath string

	// OutputDir is this task's private slice of the output tree,
	// clients/<language>/<zone>. No two tasks share an output directory.
	OutputDir string

	// Command is the resolved argv template for the generator tool.
	// Placeholders: {schema}, {output}, {zone}, {language}.
	Command []string

	Timeout time.Duration
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the outcome of exactly one Task. Failures are captured here,
// never thrown away: every submitted task produces one Result.
type Result struct {
	Zone     string
	Language string
	Status   Status
	Success  bool

	// OutputDir and Files describe what the generator produced.
	OutputDir string
	Files     []string
	Bytes     int64

	Duration time.Duration

	// Stderr holds the tool's captured diagnostics on failure.
	Stderr string
	Error  string
}

// Key returns the zone/language pair for display and manifest keys.
func (r *Result) Key() string {
	return r.Zone + "/" + r.Language
}
