package monitor

import (
	"errors"
	"fmt"
)

// ConfigError marks a defect in a monitor definition: a missing required
// field, an invalid threshold, or an assertion that produced something
// other than a boolean verdict. Unlike an assertion that merely fails, a
// ConfigError propagates out of Run so broken definitions are caught
// early instead of silently degrading.
type ConfigError struct {
	Monitor string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Monitor == "" {
		return "monitor config: " + e.Reason
	}
	return fmt.Sprintf("monitor %q: %s", e.Monitor, e.Reason)
}

// NewConfigError builds a ConfigError for the named monitor.
func NewConfigError(name, format string, args ...any) *ConfigError {
	return &ConfigError{Monitor: name, Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
