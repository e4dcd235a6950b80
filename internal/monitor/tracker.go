package monitor

import (
	"log/slog"
	"strconv"
)

// Tracker maintains the consecutive-failure counter for one monitor.
// The counter lives in the store under a per-environment key; a missing
// or unparseable value reads as zero, so counter corruption never takes
// a monitor run down with it.
type Tracker struct {
	store  Store
	name   string
	logger *slog.Logger
}

// NewTracker returns a tracker for the named monitor.
func NewTracker(store Store, name string, logger *slog.Logger) *Tracker {
	return &Tracker{store: store, name: name, logger: logger}
}

// Record applies an outcome to the counter and returns the new count.
// A success resets the counter to zero. A failure increments it and sets
// escalate, telling the caller to consult the escalation policy with the
// returned count. A disabled outcome leaves the counter untouched.
func (t *Tracker) Record(outcome Outcome, environment string) (count int, escalate bool) {
	switch {
	case outcome.IsDisabled():
		return 0, false
	case outcome.IsSuccess():
		t.write(0, environment)
		return 0, false
	default:
		n := t.read(environment) + 1
		t.write(n, environment)
		return n, true
	}
}

func (t *Tracker) key() string {
	return t.name + ":failures"
}

func (t *Tracker) read(environment string) int {
	raw, ok, err := t.store.Read(t.key(), environment)
	if err != nil {
		t.logger.Warn("failure counter read failed, treating as 0", "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		t.logger.Warn("failure counter malformed, treating as 0", "value", raw)
		return 0
	}
	return n
}

func (t *Tracker) write(n int, environment string) {
	if err := t.store.Write(t.key(), strconv.Itoa(n), environment); err != nil {
		t.logger.Warn("failure counter write failed", "error", err)
	}
}
