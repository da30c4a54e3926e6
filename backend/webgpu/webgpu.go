//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated scattering.
//
// Filter multiplication and the modulus nonlinearities run as WGSL compute
// shaders in single precision; transforms and resampling stay on the CPU.
// Local averaging is not available on this backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/scatter/backend/webgpu"
//	    "github.com/born-ml/scatter/scattering"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    scat, err := scattering.New(gpu, scattering.DefaultConfig(2))
//	    ...
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/scatter/internal/backend/webgpu"
	"github.com/born-ml/scatter/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var (
	_ tensor.Backend    = (*Backend)(nil)
	_ tensor.Integrator = (*Backend)(nil)
)

// New creates a new WebGPU backend.
//
// Call Release() when done to free GPU resources.
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// Example:
//
//	var backend tensor.Backend = cpu.New()
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    backend = gpu
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
