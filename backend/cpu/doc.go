// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for scattering transforms.
//
// # Overview
//
// This package implements every scattering primitive with:
//   - Pure Go implementation (no CGO)
//   - Multidimensional FFTs built on gonum's fourier package
//   - Batch axes processed in parallel across cores
//   - Local averaging (point sampling) and integral averaging
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scatter/backend/cpu"
//	    "github.com/born-ml/scatter/scattering"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    scat, err := scattering.New(backend, scattering.DefaultConfig(2))
//	    ...
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// own output and does not share mutable state.
package cpu
