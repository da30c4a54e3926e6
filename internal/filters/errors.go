package filters

import (
	"errors"
	"fmt"
)

// ErrConfig is returned when a geometry or wavelet parameter cannot produce
// a filter bank. Match it with errors.Is.
var ErrConfig = errors.New("scattering: invalid configuration")

// ConfigError provides detailed information about a rejected parameter.
type ConfigError struct {
	Field  string // Parameter name (e.g., "J", "shape")
	Value  any    // Rejected value
	Reason string // Human readable explanation
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrConfig, e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrConfig.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

func configErr(field string, value any, format string, args ...any) error {
	return &ConfigError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
