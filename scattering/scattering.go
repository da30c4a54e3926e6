// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package scattering

import (
	"github.com/born-ml/scatter/internal/filters"
	"github.com/born-ml/scatter/internal/scattering"
	"github.com/born-ml/scatter/tensor"
)

// Scattering is a configured transform bound to a backend.
type Scattering = scattering.Scattering

// Config holds the parameters of a scattering transform.
type Config = scattering.Config

// Method names an averaging policy.
type Method = scattering.Method

// Averaging policies.
const (
	MethodStandard = scattering.MethodStandard
	MethodLocal    = scattering.MethodLocal
	MethodIntegral = scattering.MethodIntegral
)

// Result holds the stacked coefficients of one Scatter call.
type Result = scattering.Result

// Path identifies one coefficient channel; Step is one filter along it.
type (
	Path = scattering.Path
	Step = scattering.Step
)

// Geometry is the shape-level part of a Config.
type Geometry = filters.Geometry

// Bank is a precomputed filter bank.
type Bank = filters.Bank

// Errors returned by New and Scatter.
var (
	ErrConfig     = scattering.ErrConfig
	ErrCapability = scattering.ErrCapability
	ErrShape      = scattering.ErrShape
	ErrType       = scattering.ErrType
)

// ConfigError details a rejected configuration field.
type ConfigError = scattering.ConfigError

// DefaultConfig returns the defaults for a dimensionality.
//
// Example:
//
//	cfg := scattering.DefaultConfig(1)
//	cfg.Shape = []int{1024}
//	cfg.J = 6
func DefaultConfig(dim int) Config {
	return scattering.DefaultConfig(dim)
}

// New validates cfg, builds the filter bank and returns a transform bound to
// backend.
func New(backend tensor.Backend, cfg Config) (*Scattering, error) {
	return scattering.New(backend, cfg)
}

// Paths returns every path of a geometry in canonical order.
func Paths(g Geometry) []Path {
	return scattering.Paths(g)
}

// CountPaths returns the number of paths of exactly the given order.
func CountPaths(g Geometry, order int) int {
	return scattering.CountPaths(g, order)
}

// ParseMethod resolves an averaging policy name.
func ParseMethod(name string) (Method, error) {
	return scattering.ParseMethod(name)
}

// ParsePadMode resolves a padding mode name.
func ParsePadMode(name string) (tensor.PadMode, error) {
	return scattering.ParsePadMode(name)
}
