package monitor

import (
	"context"
	"slices"
)

// Assertion is the check a monitor evaluates on every run. It returns
// the verdict, or an error when the check could not be evaluated at all.
// A returned ConfigError marks the monitor as misconfigured and aborts
// the run; any other error counts as an ordinary assertion failure.
type Assertion func(ctx context.Context) (bool, error)

// Config declares a monitor. Populate it as a literal (or from YAML via
// the config package) and hand it to New, which validates it.
type Config struct {
	Name            string
	Assert          Assertion
	NotifyAfter     int
	ThenNotifyEvery int
	Environments    []string
	Levels          []Level
	IfFailing       func(count int)
}

// Monitor is a validated, immutable monitor definition.
type Monitor struct {
	name            string
	assert          Assertion
	notifyAfter     int
	thenNotifyEvery int
	environments    []string
	levels          *LevelSet
	ifFailing       func(count int)
}

// New validates cfg and builds a Monitor. Name and Assert are required,
// and both notification thresholds must be positive; anything else is a
// ConfigError surfaced here rather than at evaluation time.
func New(cfg Config) (*Monitor, error) {
	if cfg.Name == "" {
		return nil, NewConfigError("", "name is required")
	}
	if cfg.Assert == nil {
		return nil, NewConfigError(cfg.Name, "assert is required")
	}
	if cfg.NotifyAfter < 1 {
		return nil, NewConfigError(cfg.Name, "notify_after must be a positive integer, got %d", cfg.NotifyAfter)
	}
	if cfg.ThenNotifyEvery < 1 {
		return nil, NewConfigError(cfg.Name, "then_notify_every must be a positive integer, got %d", cfg.ThenNotifyEvery)
	}

	m := &Monitor{
		name:            cfg.Name,
		assert:          cfg.Assert,
		notifyAfter:     cfg.NotifyAfter,
		thenNotifyEvery: cfg.ThenNotifyEvery,
		environments:    slices.Clone(cfg.Environments),
		levels:          NewLevelSet(),
		ifFailing:       cfg.IfFailing,
	}
	for _, l := range cfg.Levels {
		if l.Name == "" {
			return nil, NewConfigError(cfg.Name, "level name is required")
		}
		m.levels.Set(l.Name, l.Environment)
	}
	return m, nil
}

// Name returns the monitor's unique identifier.
func (m *Monitor) Name() string { return m.name }

// NotifyAfter returns the consecutive-failure threshold for the first
// notification.
func (m *Monitor) NotifyAfter() int { return m.notifyAfter }

// ThenNotifyEvery returns the repeat-notification spacing.
func (m *Monitor) ThenNotifyEvery() int { return m.thenNotifyEvery }

// InEnvironment reports whether the monitor applies to the given
// environment. A monitor with no environments is environment-agnostic
// and applies everywhere.
func (m *Monitor) InEnvironment(tag string) bool {
	if len(m.environments) == 0 {
		return true
	}
	return slices.Contains(m.environments, tag)
}

// Environments returns the environments the monitor is scoped to.
func (m *Monitor) Environments() []string { return slices.Clone(m.environments) }

// SetLevel registers a criticality level after construction, with the
// same replacement semantics as LevelSet.Set.
func (m *Monitor) SetLevel(name, environment string) {
	m.levels.Set(name, environment)
}

// Level resolves the effective criticality for an environment.
func (m *Monitor) Level(environment string) string {
	return m.levels.Resolve(environment)
}

// Settings returns the serializable snapshot stored at registration.
func (m *Monitor) Settings() Settings {
	return Settings{
		Name:            m.name,
		NotifyAfter:     m.notifyAfter,
		ThenNotifyEvery: m.thenNotifyEvery,
		Environments:    slices.Clone(m.environments),
		Levels:          m.levels.Entries(),
	}
}
