package filters

import (
	"math/cmplx"

	"github.com/born-ml/scatter/internal/backend/cpu"
)

// Filters are always generated on the CPU; the engine moves nothing since
// every backend reads CPU-resident filter tensors.
var spectral = cpu.New()

func fftN(data []complex128, shape []int) []complex128 {
	return spectral.FFT(toTensor(data, shape, false), len(shape)).AsComplex128()
}

func ifftN(data []complex128, shape []int) []complex128 {
	return spectral.IFFT(toTensor(data, shape, false), len(shape)).AsComplex128()
}

// fftFreq returns the signed frequency index of bin k on an n-point grid,
// in cycles per sample.
func fftFreq(k, n int) float64 {
	if k < (n+1)/2 {
		return float64(k) / float64(n)
	}
	return float64(k-n) / float64(n)
}

// l1Normalize scales a spectrum so its space-domain response has unit l1 norm.
func l1Normalize(spec []complex128, shape []int) {
	space := ifftN(spec, shape)
	var total float64
	for _, v := range space {
		total += cmplx.Abs(v)
	}
	if total == 0 {
		return
	}
	scale := complex(1/total, 0)
	for i := range spec {
		spec[i] *= scale
	}
}
