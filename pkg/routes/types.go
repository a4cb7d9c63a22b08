package routes

// Entry is one route in the host application's route table. App is the
// owning application identifier; Path is the externally visible path
// pattern; Handler is the internal dispatch target and is never rewritten
// by zone isolation.
type Entry struct {
	App      string            `yaml:"app" json:"app"`
	Method   string            `yaml:"method,omitempty" json:"method,omitempty"`
	Path     string            `yaml:"path" json:"path"`
	Handler  string            `yaml:"handler,omitempty" json:"handler,omitempty"`
	Name     string            `yaml:"name,omitempty" json:"name,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Table is a snapshot of the host application registry: the set of known
// applications plus their routes. It is read-only input to the pipeline.
type Table struct {
	Apps    []string `yaml:"apps" json:"apps"`
	Entries []Entry  `yaml:"routes" json:"routes"`
}

// IsolatedTable is a per-zone, read-only projection of the global table.
// It contains only routes owned by the zone's member apps, with the zone's
// path prefix and version applied to the external paths.
type IsolatedTable struct {
	Zone    string  `yaml:"zone" json:"zone"`
	Version string  `yaml:"version" json:"version"`
	Prefix  string  `yaml:"prefix" json:"prefix"`
	Entries []Entry `yaml:"routes" json:"routes"`
}
