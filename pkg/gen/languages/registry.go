package languages

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry manages the available generation targets.
type Registry struct {
	mu        sync.RWMutex
	languages map[string]*LanguageSpec
}

// NewRegistry creates an empty language registry.
func NewRegistry() *Registry {
	return &Registry{
		languages: make(map[string]*LanguageSpec),
	}
}

// InitializeDefaultRegistry creates a registry preloaded with the built-in
// targets.
func InitializeDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range GetDefaultLanguages() {
		if err := r.Register(spec); err != nil {
			// Built-in specs are static; a failure here is a programming error.
			panic(fmt.Sprintf("invalid built-in language %q: %v", spec.ID, err))
		}
	}
	return r
}

// Register adds a language to the registry.
func (r *Registry) Register(spec *LanguageSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.languages[spec.ID]; exists {
		return ErrLanguageAlreadyExists
	}

	r.languages[spec.ID] = spec
	logrus.WithField("language", spec.ID).Debug("registered generation target")
	return nil
}

// Get retrieves a language by ID.
func (r *Registry) Get(id string) (*LanguageSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.languages[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, id)
	}
	return spec, nil
}

// List returns all registered languages sorted by ID.
func (r *Registry) List() []*LanguageSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*LanguageSpec, 0, len(r.languages))
	for _, spec := range r.languages {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

// ListEnabled returns all enabled languages sorted by ID.
func (r *Registry) ListEnabled() []*LanguageSpec {
	specs := r.List()
	enabled := specs[:0]
	for _, spec := range specs {
		if spec.Enabled {
			enabled = append(enabled, spec)
		}
	}
	return enabled
}

// ApplyOverride layers configuration overrides onto a registered language,
// registering it as a custom target when it is unknown and the override
// carries a full command.
func (r *Registry) ApplyOverride(id string, o *Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec, exists := r.languages[id]
	if !exists {
		if len(o.Command) == 0 {
			return fmt.Errorf("%w: %s", ErrLanguageNotFound, id)
		}
		spec = &LanguageSpec{
			ID:      id,
			Name:    id,
			Tool:    o.Command[0],
			Command: o.Command,
			Enabled: true,
		}
		if o.Enabled != nil {
			spec.Enabled = *o.Enabled
		}
		if o.Timeout > 0 {
			spec.Timeout = o.Timeout
		}
		if err := spec.Validate(); err != nil {
			return err
		}
		r.languages[id] = spec
		return nil
	}

	updated := *spec
	if o.Enabled != nil {
		updated.Enabled = *o.Enabled
	}
	if len(o.Command) > 0 {
		updated.Command = o.Command
		updated.Tool = o.Command[0]
	}
	if o.Timeout > 0 {
		updated.Timeout = o.Timeout
	}
	r.languages[id] = &updated
	return nil
}

// Count returns the number of registered languages.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.languages)
}
