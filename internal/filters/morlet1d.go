package filters

import (
	"math"
)

const (
	// maxPeriods caps how many periods of a 1D spectrum are folded back.
	maxPeriods = 5
	// truncEps is the amplitude below which a Gaussian tail is ignored.
	truncEps = 1e-7
)

// xiMax is the highest center frequency of a 1D bank with q wavelets per octave.
func xiMax(q int) float64 {
	return math.Max(1/(1+math.Pow(2, 3/float64(q))), 0.35)
}

// sigmaPsi is the bandwidth that makes adjacent filters of a constant-Q
// bank intersect at half their peak.
func sigmaPsi(xi float64, q int) float64 {
	factor := math.Pow(2, -1/float64(q))
	return xi * (1 - factor) / (1 + factor) / math.Sqrt(2*math.Ln2)
}

func periodsFor(sigma float64) int {
	p := int(math.Ceil(math.Sqrt(-2*math.Log(truncEps)) * sigma))
	return max(1, min(p, maxPeriods))
}

// foldGaussian sums exp(-(f-xi)^2 / (2 sigma^2)) over 2p-1 periods of an
// n-point frequency grid.
func foldGaussian(n, p int, xi, sigma float64) []float64 {
	out := make([]float64, n)
	if p == 1 {
		for k := range out {
			f := fftFreq(k, n) - xi
			out[k] = math.Exp(-f * f / (2 * sigma * sigma))
		}
		return out
	}
	for t := range (2*p - 1) * n {
		f := float64(t+(1-p)*n)/float64(n) - xi
		out[t%n] += math.Exp(-f * f / (2 * sigma * sigma))
	}
	return out
}

// morlet1D builds a zero-mean, l1-normalized Morlet spectrum on n bins.
func morlet1D(n int, xi, sigma float64) []complex128 {
	p := periodsFor(sigma)
	gabor := foldGaussian(n, p, xi, sigma)
	envelope := foldGaussian(n, p, 0, sigma)
	// The Gabor bump leaks into DC; removing the matching envelope keeps psi admissible.
	kappa := gabor[0] / envelope[0]

	spec := make([]complex128, n)
	for k := range spec {
		spec[k] = complex(gabor[k]-kappa*envelope[k], 0)
	}
	l1Normalize(spec, []int{n})
	return spec
}

// gaussian1D builds an l1-normalized low-pass spectrum with frequency std sigma.
func gaussian1D(n int, sigma float64) []complex128 {
	envelope := foldGaussian(n, periodsFor(sigma), 0, sigma)
	spec := make([]complex128, n)
	for k, v := range envelope {
		spec[k] = complex(v, 0)
	}
	l1Normalize(spec, []int{n})
	return spec
}

// morlet1DParams returns the center frequency and bandwidth of filter (j, l).
func morlet1DParams(j, l, q int) (xi, sigma float64) {
	xi = xiMax(q) * math.Pow(2, -(float64(j)+float64(l)/float64(q)))
	return xi, sigmaPsi(xi, q)
}
