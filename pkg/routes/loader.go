package routes

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoRoutes is returned when a snapshot contains no route entries
	ErrNoRoutes = errors.New("route table snapshot contains no routes")

	// ErrMissingApp is returned when a route entry omits its owning app
	ErrMissingApp = errors.New("route entry missing owning app")

	// ErrMissingPath is returned when a route entry omits its path pattern
	ErrMissingPath = errors.New("route entry missing path")
)

// LoadTable reads a route table snapshot exported by the host framework.
// The snapshot is YAML with top-level "apps" and "routes" keys; when "apps"
// is omitted the app set is derived from the route entries.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route table snapshot: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses a route table snapshot from raw YAML.
func ParseTable(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse route table snapshot: %w", err)
	}

	if len(table.Entries) == 0 {
		return nil, ErrNoRoutes
	}

	for i, e := range table.Entries {
		if e.App == "" {
			return nil, fmt.Errorf("%w (entry %d, path %q)", ErrMissingApp, i, e.Path)
		}
		if e.Path == "" {
			return nil, fmt.Errorf("%w (entry %d, app %q)", ErrMissingPath, i, e.App)
		}
	}

	if len(table.Apps) == 0 {
		seen := make(map[string]struct{})
		for _, e := range table.Entries {
			if _, ok := seen[e.App]; !ok {
				seen[e.App] = struct{}{}
				table.Apps = append(table.Apps, e.App)
			}
		}
		sort.Strings(table.Apps)
	}

	return &table, nil
}
