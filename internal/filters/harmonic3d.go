package filters

import (
	"math"
	"math/cmplx"
)

// frequencyGrid3D returns the angular frequency of every bin of a 3D grid,
// axis 0 first.
func frequencyGrid3D(shape []int) (wz, wy, wx []float64) {
	axis := func(n int) []float64 {
		w := make([]float64, n)
		for k := range w {
			w[k] = 2 * math.Pi * fftFreq(k, n)
		}
		return w
	}
	return axis(shape[0]), axis(shape[1]), axis(shape[2])
}

// gaussian3D is the spectrum of a unit-mass spatial Gaussian with std sigma.
func gaussian3D(shape []int, sigma float64) []complex128 {
	wz, wy, wx := frequencyGrid3D(shape)
	out := make([]complex128, 0, len(wz)*len(wy)*len(wx))
	for _, z := range wz {
		for _, y := range wy {
			for _, x := range wx {
				r2 := z*z + y*y + x*x
				out = append(out, complex(math.Exp(-0.5*r2*sigma*sigma), 0))
			}
		}
	}
	return out
}

// solidHarmonic3D returns the spectra of the solid harmonic wavelets of degree
// l at scale sigma, one per order in ms.
func solidHarmonic3D(shape []int, sigma float64, l int, ms []int) [][]complex128 {
	out := make([][]complex128, len(ms))
	if l == 0 {
		out[0] = gaussian3D(shape, sigma)
		return out
	}

	wz, wy, wx := frequencyGrid3D(shape)
	size := len(wz) * len(wy) * len(wx)
	for i := range out {
		out[i] = make([]complex128, 0, size)
	}
	norm := complex(harmonicNorm(l)*math.Pow(2*math.Pi, 1.5), 0) * negIPow(l)

	for _, z := range wz {
		for _, y := range wy {
			for _, x := range wx {
				r2 := z*z + y*y + x*x
				r := math.Sqrt(r2)
				radial := math.Pow(r*sigma, float64(l)) * math.Exp(-0.5*r2*sigma*sigma)
				polar := math.Atan2(z, math.Hypot(y, x)) + math.Pi/2
				azimuth := math.Atan2(y, x)
				for i, m := range ms {
					harm := sphericalHarmonic(l, m, math.Cos(polar), azimuth)
					out[i] = append(out[i], norm*complex(radial, 0)*harm)
				}
			}
		}
	}
	return out
}

// negIPow returns (-i)^l without rounding.
func negIPow(l int) complex128 {
	return [4]complex128{1, -1i, -1, 1i}[l%4]
}

// harmonicNorm keeps solid harmonic wavelets of different degrees at
// comparable energy.
func harmonicNorm(l int) float64 {
	if l%2 == 0 {
		return 1 / (2 * math.Pi * math.Sqrt(float64(l)+0.5) * doubleFactorial(l+1))
	}
	return 1 / (math.Pow(2, 0.5*float64(l+3)) * math.Sqrt(math.Pi*float64(2*l+1)) * factorial((l+1)/2))
}

func doubleFactorial(n int) float64 {
	out := 1.0
	for ; n > 0; n -= 2 {
		out *= float64(n)
	}
	return out
}

func factorial(n int) float64 {
	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out
}

// sphericalHarmonic evaluates the orthonormal Y_l^m at polar cosine x and
// azimuth phi, Condon-Shortley phase included.
func sphericalHarmonic(l, m int, x, phi float64) complex128 {
	am := m
	if am < 0 {
		am = -am
	}
	// (l-|m|)! / (l+|m|)!
	ratio := 1.0
	for k := l - am + 1; k <= l+am; k++ {
		ratio /= float64(k)
	}
	amp := math.Sqrt(float64(2*l+1)/(4*math.Pi)*ratio) * legendre(l, am, x)
	y := complex(amp*math.Cos(float64(am)*phi), amp*math.Sin(float64(am)*phi))
	if m < 0 {
		y = cmplx.Conj(y)
		if am%2 == 1 {
			y = -y
		}
	}
	return y
}

// legendre evaluates the associated Legendre function P_l^m(x), m >= 0.
func legendre(l, m int, x float64) float64 {
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt((1 - x) * (1 + x))
		fact := 1.0
		for range m {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}
	pmmp1 := x * float64(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}
	var pll float64
	for ll := m + 2; ll <= l; ll++ {
		pll = (x*float64(2*ll-1)*pmmp1 - float64(ll+m-1)*pmm) / float64(ll-m)
		pmm, pmmp1 = pmmp1, pll
	}
	return pll
}
