// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/scatter/internal/tensor"

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed data access via AsFloat64(), AsComplex128(), etc.
//   - Reference counting via Clone() and Release()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Complex128, tensor.CPU)
//	data := raw.AsComplex128()
//	clone := raw.Clone() // Shares buffer via reference counting
type RawTensor = tensor.RawTensor

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// DataType represents runtime type information for tensors.
type DataType = tensor.DataType

// Device represents the compute device for tensor operations.
type Device = tensor.Device

// Data type constants.
const (
	Float32    = tensor.Float32
	Float64    = tensor.Float64
	Complex64  = tensor.Complex64
	Complex128 = tensor.Complex128
)

// Device constants.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros creates a zero-filled tensor.
func Zeros(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype, device)
}

// FromFloat64 creates a Float64 tensor holding a copy of data.
func FromFloat64(data []float64, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape, device)
}

// FromFloat32 creates a Float32 tensor holding a copy of data.
func FromFloat32(data []float32, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape, device)
}

// FromComplex128 creates a Complex128 tensor holding a copy of data.
func FromComplex128(data []complex128, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromComplex128(data, shape, device)
}

// Float64Values returns the elements of a real tensor widened to float64.
func Float64Values(r *RawTensor) []float64 {
	return tensor.Float64Values(r)
}

// Complex128Values returns the elements of r as complex128.
func Complex128Values(r *RawTensor) []complex128 {
	return tensor.Complex128Values(r)
}
