package scattering

import (
	"errors"

	"github.com/born-ml/scatter/internal/filters"
)

// Sentinel errors. Construction reports ErrConfig and ErrCapability;
// Scatter reports ErrShape and ErrType before touching the backend.
var (
	// ErrConfig reports parameters that cannot produce a filter bank.
	ErrConfig = filters.ErrConfig

	// ErrCapability reports an averaging method the backend cannot run.
	ErrCapability = errors.New("scattering: backend capability missing")

	// ErrShape reports a signal whose trailing axes differ from the geometry.
	ErrShape = errors.New("scattering: shape mismatch")

	// ErrType reports a signal the backend cannot consume.
	ErrType = errors.New("scattering: unsupported input type")
)

// ConfigError details a rejected configuration field. It unwraps to ErrConfig.
type ConfigError = filters.ConfigError

func configErr(field string, value any, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
