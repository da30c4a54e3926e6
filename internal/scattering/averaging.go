package scattering

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/tensor"
)

// signal is a cascade node: a space-domain tensor at a given resolution
// whose spectrum is computed on first use.
type signal struct {
	space *tensor.RawTensor
	hat   *tensor.RawTensor
	res   int // log2 of the subsampling factor relative to the padded grid
	scale int // j_k + 1 of the path that produced it; 0 for the input
}

func (s *signal) spectrum(be tensor.Backend, ndim int) *tensor.RawTensor {
	if s.hat == nil {
		s.hat = be.FFT(s.space, ndim)
	}
	return s.hat
}

// averager turns a cascade node into the coefficient of its path.
type averager interface {
	// average returns a Float64 tensor shaped [batch..., trailing()...].
	average(s *signal) *tensor.RawTensor
	trailing() []int
}

// newAverager resolves the policy once at construction. Missing optional
// backend capabilities surface here as ErrCapability.
func newAverager(be tensor.Backend, bank *filters.Bank, cfg Config) (averager, error) {
	switch cfg.Method {
	case MethodStandard:
		return &standardAverager{be: be, bank: bank}, nil

	case MethodLocal:
		sampler, ok := be.(tensor.LocalAverager)
		if !ok {
			return nil, fmt.Errorf("%w: backend %s does not support local averaging", ErrCapability, be.Name())
		}
		return newLocalAverager(be, sampler, bank, cfg.Points), nil

	case MethodIntegral:
		integ, ok := be.(tensor.Integrator)
		if !ok {
			return nil, fmt.Errorf("%w: backend %s does not support integral averaging", ErrCapability, be.Name())
		}
		return &integralAverager{
			be:     be,
			integ:  integ,
			bank:   bank,
			powers: append([]float64(nil), cfg.IntegralPowers...),
		}, nil

	default:
		return nil, configErr("method", cfg.Method, "averaging method not supported")
	}
}

// standardAverager low-passes with the scale-J Gaussian and subsamples to
// the coarsest grid, cropping away the padding.
type standardAverager struct {
	be   tensor.Backend
	bank *filters.Bank
}

func (a *standardAverager) average(s *signal) *tensor.RawTensor {
	g, layout := a.bank.Geometry, a.bank.Layout
	phi := a.bank.LowPass(g.J, s.res)
	smooth := a.be.Real(a.be.IFFT(a.be.ComplexMul(s.spectrum(a.be, g.Dim), phi), g.Dim))
	if k := 1 << (g.J - s.res); k > 1 {
		smooth = a.be.Subsample(smooth, k, g.Dim)
	}
	return a.be.Crop(smooth, layout.CropStart, layout.CropSize)
}

func (a *standardAverager) trailing() []int {
	return append([]int(nil), a.bank.Layout.CropSize...)
}

// localAverager low-passes at scale j_k+1 and samples at fixed points.
type localAverager struct {
	be      tensor.Backend
	sampler tensor.LocalAverager
	bank    *filters.Bank
	// pointsAt[r] holds the points mapped onto the padded grid at resolution r.
	pointsAt [][][]int
}

func newLocalAverager(be tensor.Backend, sampler tensor.LocalAverager, bank *filters.Bank, points [][]int) *localAverager {
	maxRes := 0
	if bank.Geometry.Subsampled() {
		maxRes = bank.Geometry.J - 1
	}
	a := &localAverager{
		be:       be,
		sampler:  sampler,
		bank:     bank,
		pointsAt: make([][][]int, maxRes+1),
	}
	for r := range a.pointsAt {
		mapped := make([][]int, len(points))
		for i, p := range points {
			q := make([]int, len(p))
			for ax, v := range p {
				q[ax] = (v + bank.Layout.Pads[ax][0]) >> r
			}
			mapped[i] = q
		}
		a.pointsAt[r] = mapped
	}
	return a
}

func (a *localAverager) average(s *signal) *tensor.RawTensor {
	ndim := a.bank.Geometry.Dim
	phi := a.bank.LowPass(s.scale, s.res)
	smooth := a.be.Real(a.be.IFFT(a.be.ComplexMul(s.spectrum(a.be, ndim), phi), ndim))
	return a.sampler.SamplePoints(smooth, a.pointsAt[s.res])
}

func (a *localAverager) trailing() []int {
	return []int{len(a.pointsAt[0])}
}

// integralAverager sums |U|^p over the signal support. Sums at coarser
// resolutions are weighted by the cell volume so every order approximates
// the same integral.
type integralAverager struct {
	be     tensor.Backend
	integ  tensor.Integrator
	bank   *filters.Bank
	powers []float64
}

func (a *integralAverager) average(s *signal) *tensor.RawTensor {
	g, layout := a.bank.Geometry, a.bank.Layout
	u := s.space
	if !layout.Unpadded() {
		start := make([]int, g.Dim)
		size := make([]int, g.Dim)
		for ax, n := range g.Shape {
			start[ax] = layout.Pads[ax][0] >> s.res
			size[ax] = min((n+(1<<s.res)-1)>>s.res, (layout.Padded[ax]>>s.res)-start[ax])
		}
		u = a.be.Crop(u, start, size)
	}

	out := a.integ.Integrate(u, a.powers, g.Dim)
	if s.res > 0 {
		floats.Scale(math.Pow(2, float64(s.res*g.Dim)), out.AsFloat64())
	}
	return out
}

func (a *integralAverager) trailing() []int {
	return []int{len(a.powers)}
}
