package filters

import (
	"github.com/born-ml/scatter/internal/tensor"
)

// periodize folds a full-resolution spectrum onto the grid subsampled by
// 2^res along every axis. Frequencies that would alias are masked first so
// the folded filter keeps the response of the original on its band.
func periodize(spec []complex128, shape []int, res int) ([]complex128, []int) {
	if res == 0 {
		return spec, shape
	}
	k := 1 << res
	out := make([]int, len(shape))
	for a, n := range shape {
		out[a] = n / k
	}

	size := tensor.Shape(out).NumElements()
	folded := make([]complex128, size)
	strides := tensor.Shape(shape).ComputeStrides()
	outStrides := tensor.Shape(out).ComputeStrides()

	idx := make([]int, len(shape))
	for flat := range spec {
		rem := flat
		dst := 0
		masked := false
		for a := range shape {
			idx[a] = rem / strides[a]
			rem %= strides[a]
			n := shape[a]
			lo := n / (2 * k)
			if idx[a] >= lo && idx[a] < n-lo {
				masked = true
				break
			}
			dst += (idx[a] % out[a]) * outStrides[a]
		}
		if !masked {
			folded[dst] += spec[flat]
		}
	}
	return folded, out
}

// levels returns the spectrum periodized at resolutions 0..maxRes.
// Real spectra are stored as Float64 tensors to halve filter memory.
func levels(spec []complex128, shape []int, maxRes int, realValued bool) []*tensor.RawTensor {
	out := make([]*tensor.RawTensor, maxRes+1)
	for r := 0; r <= maxRes; r++ {
		folded, s := periodize(spec, shape, r)
		out[r] = toTensor(folded, s, realValued)
	}
	return out
}

func toTensor(spec []complex128, shape []int, realValued bool) *tensor.RawTensor {
	if !realValued {
		t := tensor.MustNewRaw(tensor.Shape(shape).Clone(), tensor.Complex128, tensor.CPU)
		copy(t.AsComplex128(), spec)
		return t
	}
	t := tensor.MustNewRaw(tensor.Shape(shape).Clone(), tensor.Float64, tensor.CPU)
	data := t.AsFloat64()
	for i, v := range spec {
		data[i] = real(v)
	}
	return t
}
