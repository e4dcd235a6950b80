package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultTemplate is the message layout used when a service has no
// template of its own.
const DefaultTemplate = "{{ monitor.subject }}\n\n{{ monitor.body }}"

// TemplateData holds the data available to notification templates.
type TemplateData struct {
	Subject   string
	Body      string
	Recipient string
}

// Render executes a Go text/template string with Sprig functions and a
// monitor accessor function, so templates can write
// {{monitor.subject | upper}}.
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["monitor"] = func() map[string]string {
		return map[string]string{
			"subject":   data.Subject,
			"body":      data.Body,
			"recipient": data.Recipient,
		}
	}

	t, err := template.New("notify").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
