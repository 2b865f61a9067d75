package ir

import "fmt"

// ConfigurationError reports a model record that cannot be constructed.
type ConfigurationError struct {
	Property string
	Message  string
}

func (e *ConfigurationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("element properties %q: %s", e.Property, e.Message)
	}
	return e.Message
}
