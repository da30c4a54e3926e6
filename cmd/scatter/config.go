package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/scatter/scattering"
)

// fileConfig is the YAML form of a scattering configuration. Unset fields
// keep the defaults of the chosen dimensionality.
type fileConfig struct {
	Dim               int       `yaml:"dim"`
	Shape             []int     `yaml:"shape"`
	J                 *int      `yaml:"J"`
	L                 *int      `yaml:"L"`
	MaxOrder          *int      `yaml:"max_order"`
	Sigma0            *float64  `yaml:"sigma0"`
	RotationCovariant *bool     `yaml:"rotation_covariant"`
	Method            string    `yaml:"method"`
	Points            [][]int   `yaml:"points"`
	IntegralPowers    []float64 `yaml:"integral_powers"`
	PadMode           string    `yaml:"pad_mode"`
	Backend           string    `yaml:"backend"`
}

// loadFileConfig reads a YAML configuration file.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

// commonFlags are the geometry flags shared by every subcommand.
type commonFlags struct {
	config   string
	dim      int
	shape    string
	j        int
	l        int
	order    int
	sigma0   float64
	method   string
	points   string
	pad      string
	backend  string
	verbose  bool
	explicit map[string]bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "YAML configuration file")
	fs.IntVar(&c.dim, "dim", 2, "signal dimensionality (1, 2 or 3)")
	fs.StringVar(&c.shape, "shape", "", "comma separated spatial shape, e.g. 64,64")
	fs.IntVar(&c.j, "J", 0, "number of octaves")
	fs.IntVar(&c.l, "L", 0, "orientations (2D), wavelets per octave (1D) or max degree (3D)")
	fs.IntVar(&c.order, "order", 2, "maximum scattering order (1 or 2)")
	fs.Float64Var(&c.sigma0, "sigma0", 0, "base bandwidth of the filters")
	fs.StringVar(&c.method, "method", "standard", "averaging: standard, local or integral")
	fs.StringVar(&c.points, "points", "", "local averaging points, e.g. 0,0;8,8")
	fs.StringVar(&c.pad, "pad", "zero", "padding mode: zero or reflect")
	fs.StringVar(&c.backend, "backend", "cpu", "compute backend: cpu or webgpu")
	fs.BoolVar(&c.verbose, "v", false, "verbose (debug) logging")
}

// markExplicit records which flags were set on the command line.
func (c *commonFlags) markExplicit(fs *flag.FlagSet) {
	c.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicit[f.Name] = true })
}

func (c *commonFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolve merges defaults, the config file and explicit flags, in that order.
func (c *commonFlags) resolve(logger *slog.Logger) (scattering.Config, string, error) {
	var fc *fileConfig
	if c.config != "" {
		var err error
		if fc, err = loadFileConfig(c.config); err != nil {
			return scattering.Config{}, "", err
		}
	}

	dim := c.dim
	if fc != nil && fc.Dim != 0 && !c.explicit["dim"] {
		dim = fc.Dim
	}
	cfg := scattering.DefaultConfig(dim)
	cfg.Logger = logger
	backend := c.backend

	if fc != nil {
		if err := fc.apply(&cfg); err != nil {
			return cfg, "", err
		}
		if fc.Backend != "" && !c.explicit["backend"] {
			backend = fc.Backend
		}
	}
	if backend == "" {
		backend = "cpu"
	}
	if err := c.apply(&cfg); err != nil {
		return cfg, "", err
	}
	if len(cfg.Shape) == 0 {
		return cfg, "", fmt.Errorf("a signal shape is required (-shape or config)")
	}
	return cfg, backend, nil
}

func (fc *fileConfig) apply(cfg *scattering.Config) error {
	if fc.Shape != nil {
		cfg.Shape = fc.Shape
	}
	if fc.J != nil {
		cfg.J = *fc.J
	}
	if fc.L != nil {
		cfg.L = *fc.L
	}
	if fc.MaxOrder != nil {
		cfg.MaxOrder = *fc.MaxOrder
	}
	if fc.Sigma0 != nil {
		cfg.Sigma0 = *fc.Sigma0
	}
	if fc.RotationCovariant != nil {
		cfg.RotationCovariant = *fc.RotationCovariant
	}
	if fc.Method != "" {
		m, err := scattering.ParseMethod(fc.Method)
		if err != nil {
			return err
		}
		cfg.Method = m
	}
	if fc.Points != nil {
		cfg.Points = fc.Points
	}
	if fc.IntegralPowers != nil {
		cfg.IntegralPowers = fc.IntegralPowers
	}
	if fc.PadMode != "" {
		mode, err := scattering.ParsePadMode(fc.PadMode)
		if err != nil {
			return err
		}
		cfg.PadMode = mode
	}
	return nil
}

func (c *commonFlags) apply(cfg *scattering.Config) error {
	if c.explicit["shape"] {
		shape, err := parseInts(c.shape)
		if err != nil {
			return fmt.Errorf("invalid -shape: %w", err)
		}
		cfg.Shape = shape
	}
	if c.explicit["J"] {
		cfg.J = c.j
	}
	if c.explicit["L"] {
		cfg.L = c.l
	}
	if c.explicit["order"] {
		cfg.MaxOrder = c.order
	}
	if c.explicit["sigma0"] {
		cfg.Sigma0 = c.sigma0
	}
	if c.explicit["method"] {
		m, err := scattering.ParseMethod(c.method)
		if err != nil {
			return err
		}
		cfg.Method = m
	}
	if c.explicit["points"] {
		var points [][]int
		for _, p := range strings.Split(c.points, ";") {
			coords, err := parseInts(p)
			if err != nil {
				return fmt.Errorf("invalid -points: %w", err)
			}
			points = append(points, coords)
		}
		cfg.Points = points
	}
	if c.explicit["pad"] {
		mode, err := scattering.ParsePadMode(c.pad)
		if err != nil {
			return err
		}
		cfg.PadMode = mode
	}
	return nil
}

// parseInts parses a comma separated list of integers.
func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
