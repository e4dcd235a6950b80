package monitor

// DefaultLevel is the criticality used when a monitor has no level
// registered for the active environment.
const DefaultLevel = "warning"

// Level pairs a criticality name with the environment it applies to.
// An empty Environment means the level is the monitor's default.
type Level struct {
	Name        string `yaml:"level" json:"level" validate:"required"`
	Environment string `yaml:"environment" json:"environment,omitempty"`
}

// LevelSet holds a monitor's ordered level registrations and resolves the
// effective criticality for an environment. A fresh set contains a single
// system-default entry, so an unconfigured monitor resolves to
// DefaultLevel everywhere.
type LevelSet struct {
	entries []Level
}

// NewLevelSet returns a set seeded with the system default level.
func NewLevelSet() *LevelSet {
	return &LevelSet{entries: []Level{{Name: DefaultLevel}}}
}

// Set registers a level. A registration with an explicit environment
// replaces any prior entry carrying the same level name. A registration
// with no environment becomes the monitor's default: it also displaces
// whatever default entry the set held, keeping at most one
// environment-less entry. Repeated registration of the same pair is safe;
// the last write wins.
func (s *LevelSet) Set(name, environment string) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.Name == name {
			continue
		}
		if environment == "" && e.Environment == "" {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = append(kept, Level{Name: name, Environment: environment})
}

// Resolve returns the effective level for the given environment.
//
// A set holding exactly one environment-less entry belongs to an
// environment-agnostic monitor: that level applies regardless of the
// environment passed in. Otherwise only entries registered for the exact
// environment are considered; with no match the system default applies,
// and with several the last registration wins.
func (s *LevelSet) Resolve(environment string) string {
	if len(s.entries) == 1 && s.entries[0].Environment == "" {
		return s.entries[0].Name
	}

	name := ""
	for _, e := range s.entries {
		if e.Environment == environment {
			name = e.Name
		}
	}
	if name == "" {
		return DefaultLevel
	}
	return name
}

// Entries returns a copy of the registered levels in order.
func (s *LevelSet) Entries() []Level {
	out := make([]Level, len(s.entries))
	copy(out, s.entries)
	return out
}
