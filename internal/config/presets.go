package config

import "sort"

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// Presets are keyed by field or map name.
var Presets = map[string]map[string]*Config{
	"rotation": {
		"circle": preset(func(c *Config) {}),
		"wide": preset(func(c *Config) {
			c.X0 = []float64{3, 0}
			c.EStop = 0.05
		}),
		"adaptive": preset(func(c *Config) {
			c.Adaptive = true
			c.Err = 1e-6
			c.Dt = 0.1
			c.EStop = 0.05
		}),
	},
	"linear": {
		"spiral": preset(func(c *Config) {
			c.Field = "linear"
			c.Matrix = [][]float64{{-0.1, -1}, {1, -0.1}}
			c.X0 = []float64{3, 0}
		}),
		"saddle": preset(func(c *Config) {
			c.Field = "linear"
			c.Matrix = [][]float64{{1, 0}, {0, -1}}
			c.X0 = []float64{1, 3}
			c.N = 300
		}),
	},
	"vanderpol": {
		"limit_cycle": preset(func(c *Config) {
			c.Field = "vanderpol"
			c.X0 = []float64{0, 1}
			c.EStop = 0.002
		}),
		"relaxation": preset(func(c *Config) {
			c.Field = "vanderpol"
			c.Mu = 5
			c.Dt = 0.01
			c.N = 8000
			c.X0 = []float64{0, 1}
			c.EStop = 0.001
			c.YLim = []float64{-10, 10}
		}),
	},
	"pendulum": {
		"swing": preset(func(c *Config) {
			c.Field = "pendulum"
		}),
		"symplectic": preset(func(c *Config) {
			c.Field = "pendulum"
			c.Integrator = "verlet"
		}),
		"high": preset(func(c *Config) {
			c.Field = "pendulum"
			c.X0 = []float64{2.5, 0}
			c.YLim = []float64{-8, 8}
		}),
	},
	"duffing": {
		"double_well": preset(func(c *Config) {
			c.Field = "duffing"
			c.X0 = []float64{1.5, 0}
			c.XLim = []float64{-2, 2}
			c.YLim = []float64{-2, 2}
		}),
		"single_well": preset(func(c *Config) {
			c.Field = "duffing"
			c.X0 = []float64{1, 0.5}
			c.XLim = []float64{-2, 2}
			c.YLim = []float64{-2, 2}
		}),
	},
	"lorenz": {
		"chaos": preset(func(c *Config) {
			c.Field = "lorenz"
			c.Dt = 0.01
			c.N = 3000
			c.X0 = []float64{1, 1, 1}
			c.XLim = []float64{-25, 25}
			c.YLim = []float64{-30, 30}
		}),
		"fixed_point": preset(func(c *Config) {
			c.Field = "lorenz"
			c.Dt = 0.01
			c.N = 3000
			c.X0 = []float64{1, 1, 1}
			c.Params = map[string]float64{"rho": 10}
			c.XLim = []float64{-10, 10}
			c.YLim = []float64{-10, 10}
		}),
	},
	"logistic": {
		"period2": preset(func(c *Config) {}),
		"period4": preset(func(c *Config) { c.R = 3.5 }),
		"chaos": preset(func(c *Config) {
			c.R = 3.9
			c.MapN = 200
		}),
	},
	"tent": {
		"chaos": preset(func(c *Config) {
			c.Map = "tent"
			c.R = 1.99
			c.MapX0 = 0.2
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name, preset string) *Config {
	group, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg, ok := group[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(name string) []string {
	group, ok := Presets[name]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for n := range group {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Groups lists every field or map that has presets.
func Groups() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
