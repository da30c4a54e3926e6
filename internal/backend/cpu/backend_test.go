package cpu

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scatter/internal/parallel"
	"github.com/born-ml/scatter/internal/tensor"
)

const epsilon = 1e-9

// naiveDFT is the O(n^2) reference transform.
func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += x[j] * cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n)))
		}
		out[k] = sum
	}
	return out
}

func complexNear(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if cmplx.Abs(want[i]-got[i]) > tol {
			t.Fatalf("index %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestFFT_MatchesNaiveDFT(t *testing.T) {
	for _, backend := range []*CPUBackend{New(), NewWithConfig(parallel.Sequential())} {
		for _, n := range []int{1, 2, 5, 8, 12} {
			data := make([]float64, n)
			for i := range data {
				data[i] = math.Sin(float64(i)*0.7) + float64(i%3)
			}
			x, err := tensor.FromFloat64(data, tensor.Shape{n}, tensor.CPU)
			require.NoError(t, err)

			got := backend.FFT(x, 1)
			assert.Equal(t, tensor.Complex128, got.DType())
			complexNear(t, naiveDFT(tensor.Complex128Values(x)), got.AsComplex128(), 1e-9)
		}
	}
}

func TestFFT_2DSeparable(t *testing.T) {
	backend := New()

	// A single nonzero sample at (1, 2) has spectrum exp(-2pi i (k*1/4 + l*2/6)).
	data := make([]float64, 4*6)
	data[1*6+2] = 1
	x, err := tensor.FromFloat64(data, tensor.Shape{4, 6}, tensor.CPU)
	require.NoError(t, err)

	got := backend.FFT(x, 2).AsComplex128()
	for k := 0; k < 4; k++ {
		for l := 0; l < 6; l++ {
			want := cmplx.Exp(complex(0, -2*math.Pi*(float64(k)/4+float64(2*l)/6)))
			assert.InDelta(t, real(want), real(got[k*6+l]), epsilon)
			assert.InDelta(t, imag(want), imag(got[k*6+l]), epsilon)
		}
	}
}

func TestIFFT_RoundTripWithBatch(t *testing.T) {
	backend := New()

	shape := tensor.Shape{3, 8, 4}
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = float64((i*7)%11) - 5
	}
	x, err := tensor.FromFloat64(data, shape, tensor.CPU)
	require.NoError(t, err)

	back := backend.IFFT(backend.FFT(x, 2), 2)
	require.True(t, back.Shape().Equal(shape))
	complexNear(t, tensor.Complex128Values(x), back.AsComplex128(), 1e-9)
}

func TestComplexMul_BroadcastsFilter(t *testing.T) {
	backend := New()

	x, _ := tensor.FromComplex128([]complex128{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, tensor.CPU)
	f, _ := tensor.FromComplex128([]complex128{complex(0, 1), 2}, tensor.Shape{2}, tensor.CPU)

	got := backend.ComplexMul(x, f).AsComplex128()
	assert.Equal(t, []complex128{complex(0, 1), 4, complex(0, 3), 8, complex(0, 5), 12}, got)

	gain, _ := tensor.FromFloat64([]float64{0.5, -1}, tensor.Shape{2}, tensor.CPU)
	got = backend.ComplexMul(x, gain).AsComplex128()
	assert.Equal(t, []complex128{0.5, -2, 1.5, -4, 2.5, -6}, got)
}

func TestComplexMul_ShapeMismatchPanics(t *testing.T) {
	backend := New()
	x, _ := tensor.FromComplex128(make([]complex128, 6), tensor.Shape{2, 3}, tensor.CPU)
	f, _ := tensor.FromComplex128(make([]complex128, 2), tensor.Shape{2}, tensor.CPU)

	assert.Panics(t, func() { backend.ComplexMul(x, f) })
}

func TestModulusAndRotation(t *testing.T) {
	backend := New()

	a, _ := tensor.FromComplex128([]complex128{complex(3, 4), complex(0, -2)}, tensor.Shape{2}, tensor.CPU)
	b, _ := tensor.FromComplex128([]complex128{complex(0, 12), complex(1, 0)}, tensor.Shape{2}, tensor.CPU)

	assert.Equal(t, []float64{5, 2}, backend.Modulus(a).AsFloat64())

	acc := backend.ModulusRotation(a, nil)
	acc = backend.ModulusRotation(b, acc)
	got := acc.AsFloat64()
	assert.InDelta(t, 13.0, got[0], epsilon)
	assert.InDelta(t, math.Sqrt(5), got[1], epsilon)
}

func TestReal(t *testing.T) {
	backend := New()
	x, _ := tensor.FromComplex128([]complex128{complex(1.5, 2), complex(-3, 1)}, tensor.Shape{2}, tensor.CPU)
	assert.Equal(t, []float64{1.5, -3}, backend.Real(x).AsFloat64())
}

func TestSubsample(t *testing.T) {
	backend := New()

	data := make([]float64, 2*4*6)
	for i := range data {
		data[i] = float64(i)
	}
	x, _ := tensor.FromFloat64(data, tensor.Shape{2, 4, 6}, tensor.CPU)

	got := backend.Subsample(x, 2, 2)
	require.True(t, got.Shape().Equal(tensor.Shape{2, 2, 3}))
	assert.Equal(t, []float64{0, 2, 4, 12, 14, 16, 24, 26, 28, 36, 38, 40}, got.AsFloat64())

	same := backend.Subsample(x, 1, 2)
	assert.Equal(t, data, same.AsFloat64())
}

func TestPad(t *testing.T) {
	backend := New()
	x, _ := tensor.FromFloat64([]float64{1, 2, 3}, tensor.Shape{1, 3}, tensor.CPU)

	tests := []struct {
		name string
		mode tensor.PadMode
		pads [2]int
		want []float64
	}{
		{"zero", tensor.PadZero, [2]int{2, 1}, []float64{0, 0, 1, 2, 3, 0}},
		{"reflect", tensor.PadReflect, [2]int{2, 2}, []float64{3, 2, 1, 2, 3, 2, 1}},
		{"reflect wider than signal", tensor.PadReflect, [2]int{4, 0}, []float64{1, 2, 3, 2, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := backend.Pad(x, [][2]int{tt.pads}, tt.mode)
			assert.Equal(t, tt.want, got.AsFloat64())
			assert.Equal(t, tensor.Shape{1, len(tt.want)}, got.Shape())
		})
	}
}

func TestCropInvertsPad(t *testing.T) {
	backend := New()
	data := []float64{1, 2, 3, 4, 5, 6}
	x, _ := tensor.FromFloat64(data, tensor.Shape{2, 3}, tensor.CPU)

	padded := backend.Pad(x, [][2]int{{1, 2}, {3, 1}}, tensor.PadReflect)
	require.True(t, padded.Shape().Equal(tensor.Shape{5, 7}))

	back := backend.Crop(padded, []int{1, 3}, []int{2, 3})
	assert.Equal(t, data, back.AsFloat64())

	assert.Panics(t, func() { backend.Crop(x, []int{1, 0}, []int{2, 3}) })
}

func TestStack(t *testing.T) {
	backend := New()
	a, _ := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	b, _ := tensor.FromFloat64([]float64{5, 6, 7, 8}, tensor.Shape{2, 2}, tensor.CPU)

	front := backend.Stack([]*tensor.RawTensor{a, b}, 0)
	assert.Equal(t, tensor.Shape{2, 2, 2}, front.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, front.AsFloat64())

	middle := backend.Stack([]*tensor.RawTensor{a, b}, 1)
	assert.Equal(t, tensor.Shape{2, 2, 2}, middle.Shape())
	assert.Equal(t, []float64{1, 2, 5, 6, 3, 4, 7, 8}, middle.AsFloat64())
}

func TestIntegrate(t *testing.T) {
	backend := New()
	x, _ := tensor.FromFloat64([]float64{1, -4, 0, 9, 1, 1, 1, 1}, tensor.Shape{2, 2, 2}, tensor.CPU)

	got := backend.Integrate(x, []float64{0.5, 1, 2}, 2)
	require.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.InDeltaSlice(t, []float64{1 + 2 + 0 + 3, 14, 98, 4, 4, 4}, got.AsFloat64(), epsilon)
}

func TestSamplePoints(t *testing.T) {
	backend := New()
	data := make([]float64, 2*3*3)
	for i := range data {
		data[i] = float64(i)
	}
	x, _ := tensor.FromFloat64(data, tensor.Shape{2, 3, 3}, tensor.CPU)

	got := backend.SamplePoints(x, [][]int{{0, 0}, {2, 1}})
	require.Equal(t, tensor.Shape{2, 2}, got.Shape())
	assert.Equal(t, []float64{0, 7, 9, 16}, got.AsFloat64())

	assert.Panics(t, func() { backend.SamplePoints(x, [][]int{{3, 0}}) })
}
