package sim

import "fmt"

// ConfigurationError reports a machine definition that cannot be simulated.
// It is always returned by the constructors, before any step runs.
type ConfigurationError struct {
	Field string // definition field at fault, e.g. "estado_inicial"
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Msg
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Msg)
}

func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
