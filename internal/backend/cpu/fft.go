package cpu

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

// FFT computes the unnormalized discrete Fourier transform over the trailing
// ndim axes. Real inputs are promoted to complex128.
func (cpu *CPUBackend) FFT(x *tensor.RawTensor, ndim int) *tensor.RawTensor {
	return cpu.transform("fft", x, ndim, false)
}

// IFFT computes the inverse transform over the trailing ndim axes, normalized
// by the number of transformed samples.
func (cpu *CPUBackend) IFFT(x *tensor.RawTensor, ndim int) *tensor.RawTensor {
	return cpu.transform("ifft", x, ndim, true)
}

func (cpu *CPUBackend) transform(op string, x *tensor.RawTensor, ndim int, inverse bool) *tensor.RawTensor {
	splitSpatial(op, x, ndim)

	shape := x.Shape()
	data := toComplex128(op, x)
	for axis := len(shape) - ndim; axis < len(shape); axis++ {
		transformAxis(data, shape, axis, inverse, cpu.par)
	}

	result := tensor.MustNewRaw(shape, tensor.Complex128, cpu.device)
	copy(result.AsComplex128(), data)
	return result
}

// transformAxis runs a 1D complex FFT along every line of the given axis in place.
func transformAxis(data []complex128, shape tensor.Shape, axis int, inverse bool, cfg parallel.Config) {
	n := shape[axis]
	if n == 1 {
		return
	}

	stride := 1
	for _, d := range shape[axis+1:] {
		stride *= d
	}
	lines := len(data) / n
	scale := complex(1/float64(n), 0)

	parallel.ForChunks(lines, func(start, end int) {
		// gonum plans keep scratch space and are not safe for concurrent use.
		plan := fourier.NewCmplxFFT(n)
		in := make([]complex128, n)
		out := make([]complex128, n)

		for line := start; line < end; line++ {
			outer, inner := line/stride, line%stride
			base := outer*n*stride + inner

			for k := 0; k < n; k++ {
				in[k] = data[base+k*stride]
			}
			if inverse {
				plan.Sequence(out, in)
				for k := 0; k < n; k++ {
					data[base+k*stride] = out[k] * scale
				}
				continue
			}
			plan.Coefficients(out, in)
			for k := 0; k < n; k++ {
				data[base+k*stride] = out[k]
			}
		}
	}, cfg)
}
