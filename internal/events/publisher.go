package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/calebfornari/listerine/internal/monitor"
)

// OutcomeEvent is the JSON payload published for every recorded run.
type OutcomeEvent struct {
	Monitor     string    `json:"monitor"`
	Environment string    `json:"environment,omitempty"`
	Status      string    `json:"status"`
	Diagnostic  string    `json:"diagnostic,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Publisher emits outcome events to NATS under a subject prefix.
// Publishing is fire-and-forget: errors are logged, never returned to
// the engine.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

// Connect dials NATS and returns a publisher using the given subject
// prefix (default "listerine.outcome").
func Connect(url, prefix string, logger *slog.Logger) (*Publisher, error) {
	if prefix == "" {
		prefix = "listerine.outcome"
	}
	nc, err := nats.Connect(url, nats.Name("listerine"))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &Publisher{nc: nc, prefix: strings.TrimSuffix(prefix, "."), logger: logger}, nil
}

// PublishOutcome emits one event for a recorded run.
func (p *Publisher) PublishOutcome(name string, outcome monitor.Outcome, environment string) {
	payload, err := json.Marshal(OutcomeEvent{
		Monitor:     name,
		Environment: environment,
		Status:      string(outcome.Status),
		Diagnostic:  outcome.Diagnostic,
		RecordedAt:  time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn("encoding outcome event failed", "monitor", name, "error", err)
		return
	}
	subject := p.prefix + "." + name
	if err := p.nc.Publish(subject, payload); err != nil {
		p.logger.Warn("publishing outcome event failed", "subject", subject, "error", err)
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if err := p.nc.Drain(); err != nil {
		p.logger.Warn("draining nats connection failed", "error", err)
	}
}

// PublishingStore decorates a monitor.Store so every recorded outcome is
// also published as an event.
type PublishingStore struct {
	monitor.Store
	Publisher *Publisher
}

// WriteOutcome records the outcome and publishes it.
func (s *PublishingStore) WriteOutcome(name string, outcome monitor.Outcome, environment string) error {
	err := s.Store.WriteOutcome(name, outcome, environment)
	s.Publisher.PublishOutcome(name, outcome, environment)
	return err
}
