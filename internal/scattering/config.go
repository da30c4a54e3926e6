package scattering

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/tensor"
)

// Method names an averaging policy.
type Method string

// Averaging policies.
const (
	MethodStandard Method = "standard" // low-pass, then subsample by 2^J
	MethodLocal    Method = "local"    // low-pass at scale j+1, sampled at Points
	MethodIntegral Method = "integral" // sum of |U|^p over space
)

// ParseMethod resolves a policy name.
func ParseMethod(name string) (Method, error) {
	switch m := Method(name); m {
	case MethodStandard, MethodLocal, MethodIntegral:
		return m, nil
	default:
		return "", configErr("method", name, "averaging method not supported")
	}
}

// ParsePadMode resolves a padding mode name.
func ParsePadMode(name string) (tensor.PadMode, error) {
	switch name {
	case "", "zero":
		return tensor.PadZero, nil
	case "reflect":
		return tensor.PadReflect, nil
	default:
		return 0, configErr("pad_mode", name, "padding mode not supported")
	}
}

// Config holds every construction parameter of a Scattering.
type Config struct {
	Dim      int   // 1, 2 or 3
	Shape    []int // spatial shape of the signals
	J        int   // number of dyadic scales
	L        int   // orientations (2D), wavelets per octave (1D), max degree (3D)
	MaxOrder int   // 1 or 2

	Sigma0            float64 // low-pass bandwidth
	RotationCovariant bool    // 3D: combine the moduli of every order m

	Method         Method
	Points         [][]int   // local: sample points in signal coordinates
	IntegralPowers []float64 // integral: exponents p of sum |U|^p

	PadMode tensor.PadMode
	Logger  *slog.Logger // nil uses slog.Default()
}

// DefaultConfig returns the defaults for a dimensionality. Shape must be set
// by the caller.
func DefaultConfig(dim int) Config {
	cfg := Config{
		Dim:            dim,
		J:              3,
		MaxOrder:       2,
		Method:         MethodStandard,
		IntegralPowers: []float64{0.5, 1, 2},
		PadMode:        tensor.PadZero,
	}
	switch dim {
	case 1:
		cfg.L = 1
		cfg.Sigma0 = 0.1
	case 2:
		cfg.L = 8
		cfg.Sigma0 = 0.8
	case 3:
		cfg.J = 2
		cfg.L = 3
		cfg.Sigma0 = 1
		cfg.RotationCovariant = true
	}
	return cfg
}

// Geometry returns the geometry part of the configuration.
func (c Config) Geometry() filters.Geometry {
	return filters.Geometry{
		Dim:      c.Dim,
		Shape:    c.Shape,
		J:        c.J,
		L:        c.L,
		MaxOrder: c.MaxOrder,
	}
}

// Validate checks the configuration without building filters.
func (c Config) Validate() error {
	if err := c.Geometry().Validate(); err != nil {
		return err
	}
	if !(c.Sigma0 > 0) || math.IsInf(c.Sigma0, 0) {
		return configErr("sigma0", c.Sigma0, "must be a positive finite number")
	}
	if c.PadMode != tensor.PadZero && c.PadMode != tensor.PadReflect {
		return configErr("pad_mode", c.PadMode, "padding mode not supported")
	}

	switch c.Method {
	case MethodStandard:
	case MethodLocal:
		return c.validatePoints()
	case MethodIntegral:
		if len(c.IntegralPowers) == 0 {
			return configErr("integral_powers", c.IntegralPowers, "at least one exponent is required")
		}
		for _, p := range c.IntegralPowers {
			if !(p > 0) || math.IsInf(p, 0) {
				return configErr("integral_powers", c.IntegralPowers, "exponents must be positive and finite")
			}
		}
	default:
		return configErr("method", c.Method, "averaging method not supported")
	}
	return nil
}

func (c Config) validatePoints() error {
	if len(c.Points) == 0 {
		return configErr("points", c.Points, "local averaging needs at least one point")
	}
	for _, p := range c.Points {
		if len(p) != c.Dim {
			return configErr("points", p, fmt.Sprintf("expected %d coordinates", c.Dim))
		}
		for a, v := range p {
			if v < 0 || v >= c.Shape[a] {
				return configErr("points", p, fmt.Sprintf("outside shape %v", c.Shape))
			}
		}
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
