// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/scatter/internal/tensor"

// Backend is the set of numeric primitives a scattering transform runs on.
// Every spatial operation acts on the trailing ndim axes; leading axes are
// batch axes.
//
// Implementations:
//   - backend/cpu: Pure Go, all capabilities
//   - backend/webgpu: GPU complex kernels via WebGPU (Windows)
//
// Example:
//
//	backend := cpu.New()
//	xhat := backend.FFT(x, 2)
//	y := backend.IFFT(backend.ComplexMul(xhat, filter), 2)
type Backend = tensor.Backend

// LocalAverager is implemented by backends able to sample signals at points.
type LocalAverager = tensor.LocalAverager

// Integrator is implemented by backends able to compute global moments.
type Integrator = tensor.Integrator

// DimensionSupporter is implemented by backends restricted to a subset of
// signal dimensionalities.
type DimensionSupporter = tensor.DimensionSupporter

// PadMode selects how signals are extended to the padded working shape.
type PadMode = tensor.PadMode

// Padding modes.
const (
	PadZero    = tensor.PadZero
	PadReflect = tensor.PadReflect
)
