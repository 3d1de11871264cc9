package main

import (
	"fmt"
	"strconv"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/spf13/cobra"
)

// loadBase applies the preset and config file layers. Precedence is
// defaults < preset < config file < flags.
func loadBase(group string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(group, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(group))
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func resolveTrajectory(cmd *cobra.Command, args []string) (*config.Config, error) {
	group := config.DefaultField
	if len(args) > 0 {
		group = args[0]
	}
	cfg, err := loadBase(group)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Field = args[0]
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("n") {
		cfg.N = numPoints
	}
	if f.Changed("e-stop") {
		cfg.EStop = eStop
	}
	if f.Changed("err") {
		cfg.Err = errTol
	}
	if f.Changed("adaptive") || adaptive {
		cfg.Adaptive = adaptive
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("x0") {
		cfg.X0 = x0
	}
	if f.Changed("mu") {
		cfg.Mu = mu
	}
	if f.Changed("xlim") {
		cfg.XLim = xlim
	}
	if f.Changed("ylim") {
		cfg.YLim = ylim
	}
	if f.Changed("n-skip") {
		cfg.NSkip = nSkip
	}
	if f.Changed("param") {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for name, raw := range params {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", name, err)
			}
			cfg.Params[name] = v
		}
	}
	return cfg, cfg.Validate()
}

func resolveMap(cmd *cobra.Command, args []string) (*config.Config, error) {
	group := config.DefaultMap
	if len(args) > 0 {
		group = args[0]
	}
	cfg, err := loadBase(group)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Map = args[0]
	}

	f := cmd.Flags()
	if f.Changed("r") {
		cfg.R = mapParam
	}
	if f.Changed("x0") {
		cfg.MapX0 = mapX0
	}
	if f.Changed("n") {
		cfg.MapN = mapN
	}
	if f.Changed("lims") {
		cfg.Lims = lims
	}
	return cfg, cfg.Validate()
}
