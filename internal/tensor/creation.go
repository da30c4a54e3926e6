package tensor

import "fmt"

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return NewRaw(shape, dtype, device)
}

// FromFloat64 creates a Float64 tensor holding a copy of data.
//
// Example:
//
//	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
func FromFloat64(data []float64, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Float64, device)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat64(), data)
	return r, nil
}

// FromFloat32 creates a Float32 tensor holding a copy of data.
func FromFloat32(data []float32, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Float32, device)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat32(), data)
	return r, nil
}

// FromComplex128 creates a Complex128 tensor holding a copy of data.
func FromComplex128(data []complex128, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Complex128, device)
	if err != nil {
		return nil, err
	}
	copy(r.AsComplex128(), data)
	return r, nil
}

// Float64Values returns a float64 copy of a real tensor's data.
// Panics for complex tensors.
func Float64Values(r *RawTensor) []float64 {
	switch r.DType() {
	case Float64:
		return append([]float64(nil), r.AsFloat64()...)
	case Float32:
		src := r.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	default:
		panic(fmt.Sprintf("Float64Values: unsupported dtype %s", r.DType()))
	}
}

// Complex128Values returns a complex128 copy of any tensor's data.
// Real tensors are promoted with a zero imaginary part.
func Complex128Values(r *RawTensor) []complex128 {
	switch r.DType() {
	case Complex128:
		return append([]complex128(nil), r.AsComplex128()...)
	case Complex64:
		src := r.AsComplex64()
		out := make([]complex128, len(src))
		for i, v := range src {
			out[i] = complex128(v)
		}
		return out
	default:
		re := Float64Values(r)
		out := make([]complex128, len(re))
		for i, v := range re {
			out[i] = complex(v, 0)
		}
		return out
	}
}
