package filters

import (
	"math"
)

// periodsGabor is how many spatial periods are summed per side when a Gabor
// kernel is wrapped onto the periodic grid.
const periodsGabor = 2

// gabor2D samples a periodized, unnormalized-phase Gabor kernel centered on
// the origin of an m x n grid.
func gabor2D(m, n int, sigma, theta, xi, slant float64) []complex128 {
	c, s := math.Cos(theta), math.Sin(theta)
	s2 := slant * slant
	den := 2 * sigma * sigma
	c00 := (c*c + s2*s*s) / den
	c01 := c * s * (1 - s2) / den
	c11 := (s*s + s2*c*c) / den
	kx, ky := c*xi, s*xi

	out := make([]complex128, m*n)
	for ex := -periodsGabor; ex <= periodsGabor; ex++ {
		for ey := -periodsGabor; ey <= periodsGabor; ey++ {
			for i := range m {
				x := float64(i + ex*m)
				for j := range n {
					y := float64(j + ey*n)
					amp := math.Exp(-(c00*x*x + 2*c01*x*y + c11*y*y))
					phase := x*kx + y*ky
					out[i*n+j] += complex(amp*math.Cos(phase), amp*math.Sin(phase))
				}
			}
		}
	}
	norm := complex(slant/(2*math.Pi*sigma*sigma), 0)
	for i := range out {
		out[i] *= norm
	}
	return out
}

// morlet2D returns the spectrum of a zero-mean Morlet wavelet. The spatial
// kernel is Hermitian so the spectrum is real up to rounding.
func morlet2D(m, n int, sigma, theta, xi, slant float64) []complex128 {
	wave := gabor2D(m, n, sigma, theta, xi, slant)
	envelope := gabor2D(m, n, sigma, theta, 0, slant)

	var sw, se complex128
	for i := range wave {
		sw += wave[i]
		se += envelope[i]
	}
	k := sw / se
	for i := range wave {
		wave[i] -= k * envelope[i]
	}
	return fftN(wave, []int{m, n})
}

// gaussian2D returns the spectrum of an isotropic Gaussian with unit DC gain.
func gaussian2D(m, n int, sigma float64) []complex128 {
	return fftN(gabor2D(m, n, sigma, 0, 0, 1), []int{m, n})
}

// morlet2DParams returns sigma, theta, xi and slant of filter (j, l) in an
// L-orientation bank.
func morlet2DParams(j, l, orientations int, sigma0 float64) (sigma, theta, xi, slant float64) {
	half := float64(orientations) / 2
	offset := int(float64(orientations) - half - 1)
	sigma = sigma0 * math.Pow(2, float64(j))
	theta = float64(offset-l) * math.Pi / float64(orientations)
	xi = 3.0 / 4.0 * math.Pi / math.Pow(2, float64(j))
	slant = 4.0 / float64(orientations)
	return sigma, theta, xi, slant
}
