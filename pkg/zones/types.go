package zones

import "strings"

// Zone is one named partition of the API surface. Zones are built once by
// Load and never mutated afterwards; every downstream stage reads them by
// value.
type Zone struct {
	Name        string   `yaml:"-" json:"name"`
	Apps        []string `yaml:"apps" json:"apps"`
	Title       string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Public      bool     `yaml:"public" json:"public"`
	AuthRequired bool    `yaml:"auth_required" json:"auth_required"`
	Version     string   `yaml:"version,omitempty" json:"version"`
	PathPrefix  string   `yaml:"path_prefix,omitempty" json:"path_prefix"`
	RateLimit   string   `yaml:"rate_limit,omitempty" json:"rate_limit,omitempty"`
	Permissions []string `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	CORSEnabled bool     `yaml:"cors_enabled" json:"cors_enabled"`
	Middleware  []string `yaml:"middleware,omitempty" json:"middleware,omitempty"`
}

// DefaultVersion is applied when a zone omits its API version.
const DefaultVersion = "v1"

// applyDefaults fills Title, Version and PathPrefix from the zone name.
func (z *Zone) applyDefaults() {
	if z.Title == "" {
		z.Title = titleFromName(z.Name)
	}
	if z.Version == "" {
		z.Version = DefaultVersion
	}
	if z.PathPrefix == "" {
		z.PathPrefix = z.Name
	}
}

// HasApp reports whether app is a member of the zone.
func (z *Zone) HasApp(app string) bool {
	for _, a := range z.Apps {
		if a == app {
			return true
		}
	}
	return false
}

func titleFromName(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
