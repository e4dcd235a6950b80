package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Engine runs monitors and applies the escalation policy. It owns no
// monitor state itself: counters and disabled flags live in the Store,
// and notifications go out through the Notifier. Construct one per
// process and share it across runs.
type Engine struct {
	store      Store
	notifier   Notifier
	recipients map[string]string // criticality level → recipient
	logger     *slog.Logger
}

// NewEngine wires an engine to its collaborators. recipients maps a
// criticality level to whatever recipient identifier the notifier
// understands; levels without an entry simply never notify.
func NewEngine(store Store, notifier Notifier, recipients map[string]string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, notifier: notifier, recipients: recipients, logger: logger}
}

// Run executes one evaluation of m in the given environment.
//
// The returned error is non-nil only for configuration errors (an
// assertion that could not produce a boolean verdict); every
// environmental failure — including an assertion that errors or panics —
// is absorbed into a Failure outcome and never aborts the run.
func (e *Engine) Run(ctx context.Context, m *Monitor, environment string) (Outcome, error) {
	log := e.logger.With("monitor", m.name)
	if environment != "" {
		log = log.With("environment", environment)
	}

	disabled, err := e.store.IsDisabled(m.name, environment)
	if err != nil {
		log.Warn("disabled flag lookup failed, assuming enabled", "error", err)
	}
	if disabled {
		log.Info("monitor disabled, skipping assertion")
		out := Disabled()
		e.persist(m, out, environment, log)
		return out, nil
	}

	out, cfgErr := e.invoke(ctx, m, log)
	if cfgErr != nil {
		return Outcome{}, cfgErr
	}

	count, escalate := NewTracker(e.store, m.name, log).Record(out, environment)
	log.Debug("outcome recorded", "status", out.Status, "failures", count)

	if escalate && ShouldNotify(count, m.notifyAfter, m.thenNotifyEvery) {
		e.notify(m, out, count, environment, log)
	}

	if out.IsFailure() && m.ifFailing != nil {
		m.ifFailing(count)
	}

	e.persist(m, out, environment, log)
	return out, nil
}

// invoke evaluates the assertion, converting errors and panics into a
// Failure outcome with the error text captured. ConfigErrors pass
// through untouched.
func (e *Engine) invoke(ctx context.Context, m *Monitor, log *slog.Logger) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("assertion panicked", "panic", r)
			out, err = Failure(fmt.Sprint(r)), nil
		}
	}()

	ok, aerr := m.assert(ctx)
	if aerr != nil {
		var ce *ConfigError
		if errors.As(aerr, &ce) {
			return Outcome{}, aerr
		}
		log.Error("assertion errored", "error", aerr)
		return Failure(aerr.Error()), nil
	}
	if ok {
		return Success(), nil
	}
	return Failure(""), nil
}

func (e *Engine) notify(m *Monitor, out Outcome, count int, environment string, log *slog.Logger) {
	level := m.levels.Resolve(environment)
	recipient := e.recipients[level]
	if recipient == "" {
		log.Info("no recipient configured for level, skipping notification", "level", level)
		return
	}

	subject := fmt.Sprintf("%s is failing", m.name)
	var body strings.Builder
	fmt.Fprintf(&body, "%s has failed %d consecutive time(s)", m.name, count)
	if environment != "" {
		fmt.Fprintf(&body, " in %s", environment)
	}
	body.WriteString(".")
	if out.Diagnostic != "" {
		body.WriteString("\n\n")
		body.WriteString(out.Diagnostic)
	}

	if err := e.notifier.Deliver(recipient, subject, body.String()); err != nil {
		log.Error("notification delivery failed", "recipient", recipient, "level", level, "error", err)
		return
	}
	log.Info("notification sent", "recipient", recipient, "level", level, "failures", count)
}

func (e *Engine) persist(m *Monitor, out Outcome, environment string, log *slog.Logger) {
	if err := e.store.WriteOutcome(m.name, out, environment); err != nil {
		log.Warn("recording outcome failed", "error", err)
	}
}
