package notify

import (
	"fmt"
	"log/slog"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Service is a configured notification destination: a Shoutrrr URL plus
// default params and an optional per-service message template.
type Service struct {
	URL      string
	Template string
	Params   map[string]string
}

// Shoutrrr delivers engine notifications through Shoutrrr services. The
// recipient name the engine resolves maps to a configured Service.
type Shoutrrr struct {
	services map[string]Service
	logger   *slog.Logger
}

// NewShoutrrr builds a notifier over the configured services.
func NewShoutrrr(services map[string]Service, logger *slog.Logger) *Shoutrrr {
	return &Shoutrrr{services: services, logger: logger}
}

// Deliver renders the service's message template and sends it. The
// subject also travels as the "title" param for services that support
// one.
func (n *Shoutrrr) Deliver(recipient, subject, body string) error {
	svc, msg, params, err := n.prepare(recipient, subject, body)
	if err != nil {
		return err
	}

	sender, err := shoutrrr.CreateSender(svc.URL)
	if err != nil {
		return fmt.Errorf("creating sender for %s: %w", recipient, err)
	}

	p := types.Params(params)
	for _, e := range sender.Send(msg, &p) {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", recipient, e)
		}
	}
	n.logger.Debug("notification delivered", "recipient", recipient)
	return nil
}

// Validate checks that a recipient's service URL parses and its template
// renders, without sending anything. Used by dry runs and `validate`.
func (n *Shoutrrr) Validate(recipient string) error {
	svc, _, _, err := n.prepare(recipient, "subject", "body")
	if err != nil {
		return err
	}
	if _, err := shoutrrr.CreateSender(svc.URL); err != nil {
		return fmt.Errorf("invalid service URL for %s: %w", recipient, err)
	}
	return nil
}

func (n *Shoutrrr) prepare(recipient, subject, body string) (Service, string, map[string]string, error) {
	svc, ok := n.services[recipient]
	if !ok {
		return Service{}, "", nil, fmt.Errorf("unknown notification service %q", recipient)
	}

	tmpl := svc.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	msg, err := Render(tmpl, TemplateData{
		Subject:   subject,
		Body:      body,
		Recipient: recipient,
	})
	if err != nil {
		return Service{}, "", nil, fmt.Errorf("rendering message for %s: %w", recipient, err)
	}

	params := make(map[string]string, len(svc.Params)+1)
	for k, v := range svc.Params {
		params[k] = v
	}
	if _, set := params["title"]; !set {
		params["title"] = subject
	}
	return svc, msg, params, nil
}

// DryRun validates delivery without sending, logging what would go out.
// It satisfies the same interface as Shoutrrr so the engine can swap it
// in for `run --dry-run`.
type DryRun struct {
	Notifier *Shoutrrr
	Logger   *slog.Logger

	Delivered []string // recipients that passed validation
}

// Deliver validates the recipient and records it instead of sending.
func (d *DryRun) Deliver(recipient, subject, body string) error {
	if err := d.Notifier.Validate(recipient); err != nil {
		return err
	}
	d.Logger.Info("would notify (dry-run)", "recipient", recipient, "subject", subject)
	d.Delivered = append(d.Delivered, recipient)
	return nil
}
