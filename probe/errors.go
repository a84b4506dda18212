package probe

import "fmt"

// ConfigurationError reports an unknown task, argument or position name, or
// a malformed bucket list.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("configuration: %s %q: %s", e.Field, e.Value, e.Reason)
}
