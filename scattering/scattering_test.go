// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package scattering_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scatter/backend/cpu"
	"github.com/born-ml/scatter/scattering"
	"github.com/born-ml/scatter/tensor"
)

func TestPublicAPI_Scatter2D(t *testing.T) {
	cfg := scattering.DefaultConfig(2)
	cfg.Shape = []int{32, 32}

	scat, err := scattering.New(cpu.New(), cfg)
	require.NoError(t, err)

	x, err := tensor.Zeros(tensor.Shape{32, 32}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	res, err := scat.Scatter(x)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{217, 4, 4}, res.Stacked.Shape())
	assert.Equal(t, 217, res.NumPaths())
	assert.Equal(t, 24, scattering.CountPaths(cfg.Geometry(), 1))
	assert.Equal(t, 192, scattering.CountPaths(cfg.Geometry(), 2))
	assert.Len(t, scattering.Paths(cfg.Geometry()), 217)
}

func TestPublicAPI_ErrorsAreMatchable(t *testing.T) {
	cfg := scattering.DefaultConfig(2)
	cfg.Shape = []int{32, 32}
	cfg.J = 6

	_, err := scattering.New(cpu.New(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scattering.ErrConfig))

	var cerr *scattering.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "J", cerr.Field)
}

func TestPublicAPI_SaveLoadResult(t *testing.T) {
	cfg := scattering.DefaultConfig(1)
	cfg.Shape = []int{64}

	scat, err := scattering.New(cpu.New(), cfg)
	require.NoError(t, err)

	data := make([]float64, 64)
	data[32] = 1
	x, err := tensor.FromFloat64(data, tensor.Shape{64}, tensor.CPU)
	require.NoError(t, err)
	res, err := scat.Scatter(x)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "result.safetensors")
	require.NoError(t, scattering.SaveResult(path, res, map[string]string{"source": "impulse"}))

	loaded, err := scattering.LoadResult(path)
	require.NoError(t, err)
	assert.Equal(t, res.Paths, loaded.Paths)
	assert.Equal(t, res.Stacked.Shape(), loaded.Stacked.Shape())
	assert.InDeltaSlice(t, res.Stacked.AsFloat64(), loaded.Stacked.AsFloat64(), 0)
}

func TestPublicAPI_SaveLoadSignal(t *testing.T) {
	x, err := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "signal.safetensors")
	require.NoError(t, scattering.SaveSignal(path, x))

	loaded, err := scattering.LoadSignal(path, "")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, loaded.AsFloat64())
}
