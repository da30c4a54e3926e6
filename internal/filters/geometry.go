package filters

import (
	"math"
	"slices"
)

// Geometry fixes the signal layout a filter bank is built for.
// It is immutable once validated.
type Geometry struct {
	Dim      int   // 1, 2 or 3
	Shape    []int // spatial shape, len(Shape) == Dim
	J        int   // number of dyadic scales
	L        int   // orientations (2D), wavelets per octave (1D), max degree (3D)
	MaxOrder int   // 1 or 2
}

// Validate checks the geometry before any filter is allocated.
func (g Geometry) Validate() error {
	if g.Dim < 1 || g.Dim > 3 {
		return configErr("dim", g.Dim, "dimensionality not supported, want 1, 2 or 3")
	}
	if len(g.Shape) != g.Dim {
		return configErr("shape", g.Shape, "expected %d spatial dimensions", g.Dim)
	}
	for _, n := range g.Shape {
		if n <= 0 {
			return configErr("shape", g.Shape, "dimensions must be positive")
		}
	}
	if g.J < 1 {
		return configErr("J", g.J, "at least one scale is required")
	}
	if smallest := slices.Min(g.Shape); 1<<g.J > smallest {
		return configErr("J", g.J,
			"2^J=%d exceeds the smallest dimension %d (at most %d octaves available)",
			1<<g.J, smallest, int(math.Log2(float64(smallest))))
	}
	switch {
	case g.Dim == 3 && g.L < 0:
		return configErr("L", g.L, "harmonic degree must be >= 0")
	case g.Dim < 3 && g.L < 1:
		return configErr("L", g.L, "at least one orientation is required")
	}
	if g.MaxOrder != 1 && g.MaxOrder != 2 {
		return configErr("max_order", g.MaxOrder, "must be 1 or 2")
	}
	return nil
}

// Harmonics returns the number of orientation/degree indices per scale.
func (g Geometry) Harmonics() int {
	if g.Dim == 3 {
		return g.L + 1
	}
	return g.L
}

// Subsampled reports whether the cascade decimates between orders.
// Morlet banks are critically sampled; solid harmonics are not.
func (g Geometry) Subsampled() bool {
	return g.Dim < 3
}

// Layout is the padded working grid derived from a geometry.
type Layout struct {
	Padded    []int    // working shape per axis
	Pads      [][2]int // {before, after} per axis
	CropStart []int    // first kept sample on the 2^J output grid
	CropSize  []int    // kept samples on the 2^J output grid
}

// Unpadded reports whether the working grid equals the signal grid.
func (l Layout) Unpadded() bool {
	for _, p := range l.Pads {
		if p[0] != 0 || p[1] != 0 {
			return false
		}
	}
	return true
}

// lowPassSupport is the half-width, in samples, beyond which the scale-J
// low-pass drops below 1e-3 of its peak.
func lowPassSupport(g Geometry, sigma0 float64) int {
	switch g.Dim {
	case 1:
		// sigma0/2^J is a frequency bandwidth; the spatial std is its reciprocal over 2pi.
		spatial := float64(int(1)<<g.J) / (2 * math.Pi * sigma0)
		return int(math.Ceil(math.Sqrt(2*math.Log(1e3)) * spatial))
	default:
		return 1 << (g.J - 1)
	}
}

// PlanLayout computes the padded grid. Padded lengths are multiples of 2^J so
// every dyadic subsampling stays exact; 3D banks work on the periodic signal
// grid directly.
func PlanLayout(g Geometry, sigma0 float64) Layout {
	l := Layout{
		Padded:    make([]int, g.Dim),
		Pads:      make([][2]int, g.Dim),
		CropStart: make([]int, g.Dim),
		CropSize:  make([]int, g.Dim),
	}
	step := 1 << g.J

	if !g.Subsampled() {
		copy(l.Padded, g.Shape)
		for a, n := range g.Shape {
			l.CropSize[a] = (n + step - 1) / step
		}
		return l
	}

	h := lowPassSupport(g, sigma0)
	for a, n := range g.Shape {
		padded := step * ((n+2*h)/step + 1)
		before := (padded - n) / 2
		l.Padded[a] = padded
		l.Pads[a] = [2]int{before, padded - n - before}

		size := n / step
		start := (before + step/2) / step
		l.CropStart[a] = min(start, padded/step-size)
		l.CropSize[a] = size
	}
	return l
}
