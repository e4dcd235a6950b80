package monitor

import "fmt"

// Registry owns the set of monitors configured for a process. It is
// built explicitly by the entry point; there is no process-wide
// registry.
type Registry struct {
	store   Store
	ordered []*Monitor
	byName  map[string]*Monitor
}

// NewRegistry returns an empty registry backed by the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store, byName: make(map[string]*Monitor)}
}

// Register adds a monitor and snapshots its settings to the store.
// Duplicate names are rejected.
func (r *Registry) Register(m *Monitor) error {
	if _, exists := r.byName[m.Name()]; exists {
		return fmt.Errorf("monitor %q already registered", m.Name())
	}
	if err := r.store.SaveSettings(m.Settings()); err != nil {
		return fmt.Errorf("saving settings for %q: %w", m.Name(), err)
	}
	r.byName[m.Name()] = m
	r.ordered = append(r.ordered, m)
	return nil
}

// Find returns the named monitor, or nil when unknown.
func (r *Registry) Find(name string) *Monitor {
	return r.byName[name]
}

// All returns the monitors in registration order.
func (r *Registry) All() []*Monitor {
	out := make([]*Monitor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ForEnvironment returns the monitors that apply to the given
// environment, in registration order.
func (r *Registry) ForEnvironment(environment string) []*Monitor {
	var out []*Monitor
	for _, m := range r.ordered {
		if m.InEnvironment(environment) {
			out = append(out, m)
		}
	}
	return out
}
