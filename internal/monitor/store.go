package monitor

// Settings is the serializable snapshot of a monitor definition handed to
// the store at registration time, for inspection and dashboards.
type Settings struct {
	Name            string   `json:"name"`
	NotifyAfter     int      `json:"notify_after"`
	ThenNotifyEvery int      `json:"then_notify_every"`
	Environments    []string `json:"environments,omitempty"`
	Levels          []Level  `json:"levels"`
}

// Store is the persistence collaborator the engine runs against. Values
// are scoped by an environment tag; the empty tag is a valid scope for
// environment-agnostic monitors.
type Store interface {
	// Read returns the value stored under key for the environment, with
	// ok=false when nothing is stored.
	Read(key, environment string) (value string, ok bool, err error)
	Write(key, value, environment string) error

	Disable(name, environment string) error
	Enable(name, environment string) error
	// IsDisabled defaults to false for monitors never explicitly disabled.
	IsDisabled(name, environment string) (bool, error)

	// WriteOutcome records a run result for later inspection. The engine
	// treats it as fire-and-forget: errors are logged, never returned.
	WriteOutcome(name string, outcome Outcome, environment string) error

	// SaveSettings is called once per monitor at registration time.
	SaveSettings(settings Settings) error
}

// Notifier delivers an escalation notification to a named recipient.
// Delivery failure does not alter the outcome already computed; the
// engine logs it and moves on.
type Notifier interface {
	Deliver(recipient, subject, body string) error
}
