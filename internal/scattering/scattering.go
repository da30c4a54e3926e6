// Package scattering computes wavelet scattering transforms of 1D, 2D and
// 3D signals.
//
// A Scattering is built once per geometry: it validates the configuration,
// builds the filter bank and enumerates the cascade paths. Scatter then runs
// the cascade on any batch of signals with that spatial shape. The object is
// immutable after New and safe for concurrent use.
package scattering

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/tensor"
)

// Scattering is a built scattering transform.
type Scattering struct {
	backend tensor.Backend
	cfg     Config
	bank    *filters.Bank
	table   *pathTable
	avg     averager
	logger  *slog.Logger
}

// New validates cfg, checks the backend capabilities the averaging method
// needs and builds the filter bank.
func New(backend tensor.Backend, cfg Config) (*Scattering, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrCapability)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds, ok := backend.(tensor.DimensionSupporter); ok && !ds.SupportsDim(cfg.Dim) {
		return nil, configErr("dim", cfg.Dim, fmt.Sprintf("dimensionality not supported by backend %s", backend.Name()))
	}

	cfg.Shape = slices.Clone(cfg.Shape)
	cfg.Points = clonePoints(cfg.Points)
	cfg.IntegralPowers = slices.Clone(cfg.IntegralPowers)
	if cfg.Dim != 3 {
		cfg.RotationCovariant = false
	}

	start := time.Now()
	bank, err := filters.Build(cfg.Geometry(), filters.Params{
		Sigma0:            cfg.Sigma0,
		RotationCovariant: cfg.RotationCovariant,
	})
	if err != nil {
		return nil, err
	}

	avg, err := newAverager(backend, bank, cfg)
	if err != nil {
		return nil, err
	}

	s := &Scattering{
		backend: backend,
		cfg:     cfg,
		bank:    bank,
		table:   newPathTable(bank.Geometry),
		avg:     avg,
		logger:  cfg.logger(),
	}

	s.logger.Debug("scattering built",
		"backend", backend.Name(),
		"dim", cfg.Dim,
		"shape", cfg.Shape,
		"J", cfg.J,
		"L", cfg.L,
		"max_order", cfg.MaxOrder,
		"method", cfg.Method,
		"padded", bank.Layout.Padded,
		"filters", bank.NumFilters(),
		"paths", len(s.table.paths),
		"elapsed", time.Since(start),
	)
	return s, nil
}

// Config returns a copy of the construction configuration.
func (s *Scattering) Config() Config {
	cfg := s.cfg
	cfg.Shape = slices.Clone(cfg.Shape)
	cfg.Points = clonePoints(cfg.Points)
	cfg.IntegralPowers = slices.Clone(cfg.IntegralPowers)
	return cfg
}

// Bank returns the filter bank. It must not be modified.
func (s *Scattering) Bank() *filters.Bank {
	return s.bank
}

// Paths returns the canonical path enumeration.
func (s *Scattering) Paths() []Path {
	return slices.Clone(s.table.paths)
}

// OutputShape returns the shape of Scatter's stacked tensor for a given batch shape.
func (s *Scattering) OutputShape(batch ...int) tensor.Shape {
	out := append(tensor.Shape(nil), batch...)
	out = append(out, len(s.table.paths))
	return out.Concat(s.avg.trailing()...)
}

// Scatter runs the cascade on x, whose trailing axes must equal the
// configured shape. Leading axes are batch axes. Real Float32 and Float64
// inputs are accepted.
func (s *Scattering) Scatter(x *tensor.RawTensor) (*Result, error) {
	if err := s.checkInput(x); err != nil {
		return nil, err
	}
	start := time.Now()
	g, layout := s.bank.Geometry, s.bank.Layout

	batch, _ := x.Shape().Split(g.Dim)
	padded := x
	if x.DType() != tensor.Float64 {
		padded = tensor.MustNewRaw(x.Shape(), tensor.Float64, x.Device())
		copy(padded.AsFloat64(), tensor.Float64Values(x))
	}
	if !layout.Unpadded() {
		padded = s.backend.Pad(padded, layout.Pads, s.cfg.PadMode)
	}

	coeffs := s.cascade(padded)
	stacked := s.backend.Stack(coeffs, len(batch))

	s.logger.Debug("scatter",
		"batch", []int(batch),
		"paths", len(coeffs),
		"output", []int(stacked.Shape()),
		"elapsed", time.Since(start),
	)
	return &Result{
		Stacked:   stacked,
		Paths:     slices.Clone(s.table.paths),
		batchDims: len(batch),
	}, nil
}

func (s *Scattering) checkInput(x *tensor.RawTensor) error {
	if x == nil {
		return fmt.Errorf("%w: nil tensor", ErrType)
	}
	switch x.DType() {
	case tensor.Float32, tensor.Float64:
	default:
		return fmt.Errorf("%w: dtype %s not supported, signals must be real", ErrType, x.DType())
	}

	shape := x.Shape()
	if len(shape) < s.cfg.Dim {
		return fmt.Errorf("%w: input %v has fewer than %d axes", ErrShape, shape, s.cfg.Dim)
	}
	if _, spatial := shape.Split(s.cfg.Dim); !spatial.Equal(s.cfg.Shape) {
		return fmt.Errorf("%w: trailing axes %v, expected %v", ErrShape, spatial, s.cfg.Shape)
	}
	return nil
}

func clonePoints(points [][]int) [][]int {
	if points == nil {
		return nil
	}
	out := make([][]int, len(points))
	for i, p := range points {
		out[i] = slices.Clone(p)
	}
	return out
}
