// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types shared by scattering transforms
// and their compute backends.
//
// # Overview
//
// Signals, filters and scattering coefficients are all carried by RawTensor,
// a reference-counted, row-major buffer with a shape and a data type.
// Leading axes of a signal are batch axes; the trailing 1, 2 or 3 axes are
// spatial.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scatter/tensor"
//	    "github.com/born-ml/scatter/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromFloat64(samples, tensor.Shape{8, 32, 32}, tensor.CPU)
//	    xhat := backend.FFT(x, 2) // batch of 8 two-dimensional spectra
//	}
//
// # Supported Data Types
//
//   - Float32, Float64 (signals and coefficients)
//   - Complex64, Complex128 (spectra and filters)
//
// Backends compute in Float64 and Complex128; Float32 input is promoted.
//
// # Capabilities
//
// Backend is the mandatory primitive set. Optional capabilities are
// discovered with a type assertion:
//   - LocalAverager: sampling at arbitrary points (local averaging)
//   - Integrator: global moments (integral averaging)
//   - DimensionSupporter: restriction to some dimensionalities
//
// # Thread Safety
//
// Tensors are safe to read concurrently. Clone shares the buffer by
// reference counting; writers must Copy first.
package tensor
