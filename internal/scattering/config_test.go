package scattering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scatter/internal/tensor"
)

func TestDefaultConfig(t *testing.T) {
	c1 := DefaultConfig(1)
	assert.InDelta(t, 0.1, c1.Sigma0, 1e-12)
	assert.Equal(t, 1, c1.L)
	assert.False(t, c1.RotationCovariant)

	c2 := DefaultConfig(2)
	assert.InDelta(t, 0.8, c2.Sigma0, 1e-12)
	assert.Equal(t, 8, c2.L)
	assert.Equal(t, MethodStandard, c2.Method)
	assert.Equal(t, tensor.PadZero, c2.PadMode)

	c3 := DefaultConfig(3)
	assert.InDelta(t, 1.0, c3.Sigma0, 1e-12)
	assert.True(t, c3.RotationCovariant)
	assert.Equal(t, []float64{0.5, 1, 2}, c3.IntegralPowers)
}

func TestConfigValidate(t *testing.T) {
	base := func() Config {
		c := DefaultConfig(2)
		c.Shape = []int{32, 32}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"J too large", func(c *Config) { c.J = 6 }, "smallest dimension"},
		{"bad dim", func(c *Config) { c.Dim = 4; c.Shape = []int{4, 4, 4, 4} }, "not supported"},
		{"bad sigma", func(c *Config) { c.Sigma0 = 0 }, "positive"},
		{"nan sigma", func(c *Config) { c.Sigma0 = math.NaN() }, "positive"},
		{"unknown method", func(c *Config) { c.Method = "median" }, "not supported"},
		{"local without points", func(c *Config) { c.Method = MethodLocal }, "at least one point"},
		{"local wrong rank", func(c *Config) { c.Method = MethodLocal; c.Points = [][]int{{1}} }, "coordinates"},
		{"local outside", func(c *Config) { c.Method = MethodLocal; c.Points = [][]int{{1, 32}} }, "outside"},
		{"local valid", func(c *Config) { c.Method = MethodLocal; c.Points = [][]int{{0, 0}, {31, 31}} }, ""},
		{"integral no powers", func(c *Config) { c.Method = MethodIntegral; c.IntegralPowers = nil }, "exponent"},
		{"integral negative", func(c *Config) { c.Method = MethodIntegral; c.IntegralPowers = []float64{-1} }, "positive"},
		{"bad pad", func(c *Config) { c.PadMode = tensor.PadMode(7) }, "padding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, name := range []string{"standard", "local", "integral"} {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, Method(name), m)
	}
	_, err := ParseMethod("max")
	assert.ErrorIs(t, err, ErrConfig)

	mode, err := ParsePadMode("reflect")
	require.NoError(t, err)
	assert.Equal(t, tensor.PadReflect, mode)
	mode, err = ParsePadMode("")
	require.NoError(t, err)
	assert.Equal(t, tensor.PadZero, mode)
	_, err = ParsePadMode("wrap")
	assert.ErrorIs(t, err, ErrConfig)
}
