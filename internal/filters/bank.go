// Package filters builds the band-pass and low-pass filter banks consumed by
// the scattering cascade.
//
// All filters are stored in the frequency domain on the padded working grid
// of the geometry, pre-periodized for every resolution the cascade visits.
// A Bank is immutable after Build returns and may be shared between
// goroutines.
package filters

import (
	"math"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// Params are the wavelet hyperparameters of a bank.
type Params struct {
	Sigma0            float64 // low-pass bandwidth at the finest scale
	RotationCovariant bool    // 3D only: keep every order m of each degree
}

// Psi is the band-pass family at one scale and orientation (or degree).
type Psi struct {
	J, L int
	// Ms lists the harmonic orders of a solid harmonic family; nil for Morlet.
	Ms []int
	// Levels[r][i] is filter i periodized onto the grid subsampled by 2^r.
	Levels [][]*tensor.RawTensor
}

// Level returns the filters of the family at resolution res.
func (p *Psi) Level(res int) []*tensor.RawTensor {
	return p.Levels[res]
}

// Bank is a complete filter bank for one geometry.
type Bank struct {
	Geometry Geometry
	Layout   Layout
	Params   Params

	// Psi is ordered by (j, l).
	Psi []*Psi
	// Phi[s][r] is the Gaussian at scale s periodized to resolution r.
	Phi [][]*tensor.RawTensor
}

// Wavelet returns the family at scale j and orientation (or degree) l.
func (b *Bank) Wavelet(j, l int) *Psi {
	return b.Psi[j*b.Geometry.Harmonics()+l]
}

// LowPass returns the Gaussian at the given scale for a signal at resolution res.
func (b *Bank) LowPass(scale, res int) *tensor.RawTensor {
	return b.Phi[scale][res]
}

// NumFilters counts every stored filter tensor.
func (b *Bank) NumFilters() int {
	n := 0
	for _, p := range b.Psi {
		for _, lvl := range p.Levels {
			n += len(lvl)
		}
	}
	for _, s := range b.Phi {
		n += len(s)
	}
	return n
}

// Build validates the geometry and generates every filter. Families are
// generated concurrently; the result does not depend on scheduling.
func Build(g Geometry, p Params) (*Bank, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if !(p.Sigma0 > 0) || math.IsInf(p.Sigma0, 0) {
		return nil, configErr("sigma0", p.Sigma0, "must be a positive finite number")
	}
	if g.Dim != 3 {
		p.RotationCovariant = false
	}

	g.Shape = append([]int(nil), g.Shape...)
	b := &Bank{
		Geometry: g,
		Layout:   PlanLayout(g, p.Sigma0),
		Params:   p,
		Psi:      make([]*Psi, g.J*g.Harmonics()),
		Phi:      make([][]*tensor.RawTensor, g.J+1),
	}

	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 1
	parallel.For(len(b.Psi), func(i int) {
		j, l := i/g.Harmonics(), i%g.Harmonics()
		b.Psi[i] = b.buildPsi(j, l)
	}, cfg)
	parallel.For(len(b.Phi), func(s int) {
		b.Phi[s] = b.buildPhi(s)
	}, cfg)
	return b, nil
}

// psiMaxResolution is the coarsest resolution a filter at scale j is applied at.
func (b *Bank) psiMaxResolution(j int) int {
	if !b.Geometry.Subsampled() || b.Geometry.MaxOrder < 2 {
		return 0
	}
	return max(0, j-1)
}

func (b *Bank) phiMaxResolution(s int) int {
	if !b.Geometry.Subsampled() {
		return 0
	}
	return min(s, b.Geometry.J-1)
}

func (b *Bank) buildPsi(j, l int) *Psi {
	g := b.Geometry
	grid := b.Layout.Padded
	maxRes := b.psiMaxResolution(j)
	psi := &Psi{J: j, L: l}

	var specs [][]complex128
	realValued := true
	switch g.Dim {
	case 1:
		xi, sigma := morlet1DParams(j, l, g.L)
		specs = [][]complex128{morlet1D(grid[0], xi, sigma)}
	case 2:
		sigma, theta, xi, slant := morlet2DParams(j, l, g.L, b.Params.Sigma0)
		specs = [][]complex128{morlet2D(grid[0], grid[1], sigma, theta, xi, slant)}
	case 3:
		psi.Ms = []int{-l}
		if b.Params.RotationCovariant {
			psi.Ms = make([]int, 0, 2*l+1)
			for m := -l; m <= l; m++ {
				psi.Ms = append(psi.Ms, m)
			}
		}
		sigma := b.Params.Sigma0 * math.Pow(2, float64(j))
		specs = solidHarmonic3D(grid, sigma, l, psi.Ms)
		realValued = l == 0
	}

	psi.Levels = make([][]*tensor.RawTensor, maxRes+1)
	for r := range psi.Levels {
		psi.Levels[r] = make([]*tensor.RawTensor, len(specs))
	}
	for i, spec := range specs {
		for r, t := range levels(spec, grid, maxRes, realValued) {
			psi.Levels[r][i] = t
		}
	}
	return psi
}

func (b *Bank) buildPhi(s int) []*tensor.RawTensor {
	grid := b.Layout.Padded
	sigma0 := b.Params.Sigma0
	scale := math.Pow(2, float64(s))

	var spec []complex128
	switch b.Geometry.Dim {
	case 1:
		spec = gaussian1D(grid[0], sigma0/scale)
	case 2:
		spec = gaussian2D(grid[0], grid[1], sigma0*scale/2)
	case 3:
		spec = gaussian3D(grid, sigma0*scale)
	}
	return levels(spec, grid, b.phiMaxResolution(s), true)
}
