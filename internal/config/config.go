package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/san-kum/rkloop/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultField      = "rotation"
	DefaultIntegrator = "rk4"
	DefaultDt         = 0.02
	DefaultN          = 5000
	DefaultEStop      = 0.01
	DefaultErr        = 1e-3
	DefaultLim        = 4.0
	DefaultNSkip      = 10
	DefaultMu         = 2.0
	DefaultMap        = "logistic"
	DefaultR          = 3.1
	DefaultMapX0      = 0.1
	DefaultMapN       = 100
)

// Config carries every knob of a run. The trajectory keys drive the ODE
// simulator; the map keys drive iterate and cobweb.
type Config struct {
	Field      string      `yaml:"field"`
	Integrator string      `yaml:"integrator"`
	Adaptive   bool        `yaml:"adaptive"`
	Dt         float64     `yaml:"dt"`
	N          int         `yaml:"n"`
	EStop      float64     `yaml:"e_stop"`
	Err        float64     `yaml:"err"`
	X0         []float64   `yaml:"x0"`
	XLim       []float64   `yaml:"xlim"`
	YLim       []float64   `yaml:"ylim"`
	NSkip      int         `yaml:"n_skip"`
	Mu         float64     `yaml:"mu"`
	Matrix     [][]float64 `yaml:"matrix,omitempty"`
	// Params overrides named field parameters, e.g. rho for lorenz.
	Params map[string]float64 `yaml:"params,omitempty"`

	Map string `yaml:"map"`
	// R is the map parameter: growth rate for logistic, slope for tent.
	R     float64   `yaml:"r"`
	MapX0 float64   `yaml:"map_x0"`
	MapN  int       `yaml:"map_n"`
	Lims  []float64 `yaml:"lims"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:      DefaultField,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		N:          DefaultN,
		EStop:      DefaultEStop,
		Err:        DefaultErr,
		X0:         []float64{1, 0},
		XLim:       []float64{-DefaultLim, DefaultLim},
		YLim:       []float64{-DefaultLim, DefaultLim},
		NSkip:      DefaultNSkip,
		Mu:         DefaultMu,
		Map:        DefaultMap,
		R:          DefaultR,
		MapX0:      DefaultMapX0,
		MapN:       DefaultMapN,
		Lims:       []float64{0, 1},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the numeric ranges the simulators rely on.
func (c *Config) Validate() error {
	switch {
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrPrecondition, c.Dt)
	case c.N < 1:
		return fmt.Errorf("%w: n must be at least 1, got %d", dynamo.ErrPrecondition, c.N)
	case c.Adaptive && !(c.Err > 0):
		return fmt.Errorf("%w: err must be positive for adaptive runs, got %g", dynamo.ErrPrecondition, c.Err)
	case len(c.X0) == 0:
		return fmt.Errorf("%w: x0 is empty", dynamo.ErrPrecondition)
	case c.NSkip < 1:
		return fmt.Errorf("%w: n_skip must be at least 1, got %d", dynamo.ErrPrecondition, c.NSkip)
	case c.MapN < 1:
		return fmt.Errorf("%w: map_n must be at least 1, got %d", dynamo.ErrPrecondition, c.MapN)
	}
	for name, lim := range map[string][]float64{"xlim": c.XLim, "ylim": c.YLim, "lims": c.Lims} {
		if len(lim) != 2 || !(lim[0] < lim[1]) {
			return fmt.Errorf("%w: %s must be an increasing pair, got %v", dynamo.ErrPrecondition, name, lim)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can tweak presets safely.
func (c *Config) Clone() *Config {
	out := *c
	out.X0 = slices.Clone(c.X0)
	out.XLim = slices.Clone(c.XLim)
	out.YLim = slices.Clone(c.YLim)
	out.Lims = slices.Clone(c.Lims)
	out.Params = maps.Clone(c.Params)
	if c.Matrix != nil {
		out.Matrix = make([][]float64, len(c.Matrix))
		for i, row := range c.Matrix {
			out.Matrix[i] = slices.Clone(row)
		}
	}
	return &out
}

func (c *Config) GetInitState() []float64 {
	return slices.Clone(c.X0)
}
