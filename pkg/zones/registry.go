package zones

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the validated, immutable view of the zone partition. It is
// built once by Load and read concurrently by every downstream stage; no
// method mutates it after construction.
type Registry struct {
	zones map[string]*Zone
	order []string
}

// Load builds a Registry from raw zone configuration keyed by zone name.
// Construction is all-or-nothing: structural problems (empty names,
// zone names colliding after normalization) fail the whole load and no
// registry is produced. Cross-checks against the host application registry
// are deferred to Validate.
func Load(raw map[string]*Zone) (*Registry, error) {
	if len(raw) == 0 {
		return nil, ErrNoZones
	}

	r := &Registry{
		zones: make(map[string]*Zone, len(raw)),
		order: make([]string, 0, len(raw)),
	}

	for name, cfg := range raw {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, ErrEmptyZoneName
		}
		if _, dup := r.zones[name]; dup {
			return nil, &ValidationError{Kind: KindDuplicateName, Zone: name}
		}
		if cfg == nil {
			cfg = &Zone{}
		}

		z := *cfg
		z.Name = name
		z.Apps = append([]string(nil), cfg.Apps...)
		z.Permissions = append([]string(nil), cfg.Permissions...)
		z.Middleware = append([]string(nil), cfg.Middleware...)
		z.applyDefaults()
		r.zones[name] = &z
		r.order = append(r.order, name)
	}
	sort.Strings(r.order)

	return r, nil
}

// Validate checks the partition against the host application registry and
// returns every violation found in one pass. An empty slice means the
// partition is sound and generation may proceed.
func (r *Registry) Validate(apps []string) ValidationErrors {
	known := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		known[a] = struct{}{}
	}

	var errs ValidationErrors
	owned := make(map[string]string)
	prefixes := make(map[string]string)

	for _, name := range r.order {
		z := r.zones[name]

		if owner, taken := prefixes[z.PathPrefix]; taken && owner != name {
			errs = append(errs, &ValidationError{Kind: KindDuplicatePrefix, Zone: name})
		} else {
			prefixes[z.PathPrefix] = name
		}

		if len(z.Apps) == 0 {
			errs = append(errs, &ValidationError{Kind: KindEmptyApps, Zone: name})
			continue
		}

		for _, app := range z.Apps {
			if _, ok := known[app]; !ok {
				errs = append(errs, &ValidationError{Kind: KindUnknownApp, Zone: name, App: app})
			}
			if owner, claimed := owned[app]; claimed && owner != name {
				errs = append(errs, &ValidationError{Kind: KindSharedApp, Zone: name, App: app})
				continue
			}
			owned[app] = name
		}
	}

	return errs
}

// Get returns the zone with the given name, or false if it does not exist.
func (r *Registry) Get(name string) (*Zone, bool) {
	z, ok := r.zones[name]
	return z, ok
}

// All returns every zone in stable name order.
func (r *Registry) All() []*Zone {
	out := make([]*Zone, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.zones[name])
	}
	return out
}

// Names returns the sorted zone names.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Subset returns the zones matching the requested names in stable order.
// Unknown names produce an ErrZoneNotFound wrapped with the name.
func (r *Registry) Subset(names []string) ([]*Zone, error) {
	if len(names) == 0 {
		return r.All(), nil
	}

	requested := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := r.zones[n]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, n)
		}
		requested[n] = struct{}{}
	}

	out := make([]*Zone, 0, len(requested))
	for _, name := range r.order {
		if _, ok := requested[name]; ok {
			out = append(out, r.zones[name])
		}
	}
	return out, nil
}

// Count returns the number of zones in the registry.
func (r *Registry) Count() int {
	return len(r.zones)
}
