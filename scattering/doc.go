// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scattering computes wavelet scattering transforms of 1D, 2D and
// 3D signals.
//
// # Overview
//
// A scattering transform cascades wavelet filtering, a complex modulus and
// low-pass averaging. Coefficients of order 0, 1 and 2 are returned stacked
// along one axis in canonical path order:
//   - 1D: Morlet wavelets with Q wavelets per octave
//   - 2D: oriented Morlet wavelets with L orientations
//   - 3D: solid harmonic wavelets of degree 0..L
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scatter/backend/cpu"
//	    "github.com/born-ml/scatter/scattering"
//	    "github.com/born-ml/scatter/tensor"
//	)
//
//	func main() {
//	    cfg := scattering.DefaultConfig(2)
//	    cfg.Shape = []int{32, 32}
//
//	    scat, err := scattering.New(cpu.New(), cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    x, _ := tensor.FromFloat64(image, tensor.Shape{32, 32}, tensor.CPU)
//	    res, err := scat.Scatter(x)
//	    // res.Stacked has shape [217, 4, 4]
//	}
//
// # Averaging
//
// Method selects how each modulus is reduced:
//   - MethodStandard: low-pass at scale J, subsampled by 2^J
//   - MethodLocal: low-pass sampled at Config.Points (needs tensor.LocalAverager)
//   - MethodIntegral: sum of |U|^p for Config.IntegralPowers (needs tensor.Integrator)
//
// # Persistence
//
// Results, filter banks and signals are stored as SafeTensors files with a
// SHA-256 checksum of the data section in the header metadata.
//
// # Thread Safety
//
// A Scattering object is immutable after New; Scatter may be called from
// many goroutines at once.
package scattering
