package tensor

// PadMode selects how signals are extended to the padded working shape.
type PadMode int

// Supported padding modes.
const (
	PadZero    PadMode = iota // zero extension
	PadReflect                // symmetric reflection without edge repeat, repeated as needed
)

// String returns the configuration name of the mode.
func (m PadMode) String() string {
	switch m {
	case PadZero:
		return "zero"
	case PadReflect:
		return "reflect"
	default:
		return "unknown"
	}
}

// Backend is the set of numeric primitives the scattering cascade runs on.
// Every spatial operation acts on the trailing ndim axes; leading axes are
// batch axes and pass through unchanged.
//
// Implementations:
//   - CPU: pure Go, gonum FFT
//   - WebGPU: element-wise complex kernels on GPU (windows)
//
// Methods panic on programmer misuse (wrong dtype, mismatched shapes).
// Callers validate user input before reaching a backend.
type Backend interface {
	// Transforms. FFT accepts real or complex input and returns Complex128.
	// IFFT is normalized by 1/n and returns Complex128.
	FFT(x *RawTensor, ndim int) *RawTensor
	IFFT(x *RawTensor, ndim int) *RawTensor

	// ComplexMul multiplies x by filter element-wise; filter matches the
	// trailing axes of x and is broadcast over the leading ones.
	ComplexMul(x, filter *RawTensor) *RawTensor

	// Modulus returns |x| as Float64.
	Modulus(x *RawTensor) *RawTensor
	// ModulusRotation returns sqrt(acc^2 + |x|^2); acc may be nil.
	ModulusRotation(x, acc *RawTensor) *RawTensor
	// Real returns the real part of x as Float64.
	Real(x *RawTensor) *RawTensor

	// Subsample keeps every k-th sample along each of the trailing ndim axes.
	Subsample(x *RawTensor, k, ndim int) *RawTensor
	// Pad extends the trailing len(pads) axes by pads[i] = {before, after}.
	Pad(x *RawTensor, pads [][2]int, mode PadMode) *RawTensor
	// Crop extracts the window [start, start+size) of the trailing len(start) axes.
	Crop(x *RawTensor, start, size []int) *RawTensor
	// Stack joins equally shaped tensors along a new axis dim.
	Stack(xs []*RawTensor, dim int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}

// LocalAverager is implemented by backends able to sample a signal at
// arbitrary spatial points.
type LocalAverager interface {
	// SamplePoints replaces the trailing len(points[0]) axes of x by a single
	// axis holding x at each point.
	SamplePoints(x *RawTensor, points [][]int) *RawTensor
}

// Integrator is implemented by backends able to reduce a signal to global
// moments.
type Integrator interface {
	// Integrate replaces the trailing ndim axes of x by a single axis holding
	// sum(|x|^p) for every p in powers.
	Integrate(x *RawTensor, powers []float64, ndim int) *RawTensor
}

// DimensionSupporter is implemented by backends restricted to a subset of
// signal dimensionalities. Backends without it accept every dimensionality.
type DimensionSupporter interface {
	SupportsDim(ndim int) bool
}
