package experiment

import (
	"context"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/iterative"
	"github.com/san-kum/rkloop/internal/proximity"
	"github.com/san-kum/rkloop/internal/sim"
)

// Experiment binds a validated config to a field and a stepper.
type Experiment struct {
	cfg       *config.Config
	params    dynamo.Params
	simulator *sim.Simulator
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	field, params, err := reg.GetField(cfg.Field, cfg)
	if err != nil {
		return nil, err
	}
	stepper, err := reg.GetStepper(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return &Experiment{
		cfg:       cfg,
		params:    params,
		simulator: sim.New(field, stepper),
	}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:        e.cfg.Dt,
		N:         e.cfg.N,
		EStop:     e.cfg.EStop,
		Tolerance: e.cfg.Err,
	}
}

// Run simulates from the configured initial state.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.RunFrom(ctx, e.cfg.GetInitState())
}

// RunFrom simulates from x0, using the adaptive controller when the config
// asks for it.
func (e *Experiment) RunFrom(ctx context.Context, x0 dynamo.State) (*sim.Result, error) {
	if e.cfg.Adaptive {
		return e.simulator.RunAdaptive(ctx, x0, e.params, e.SimConfig())
	}
	return e.simulator.Run(ctx, x0, e.params, e.SimConfig())
}

// RunMany simulates from every initial state in turn.
func (e *Experiment) RunMany(ctx context.Context, x0s []dynamo.State) ([]*sim.Result, error) {
	return sim.NewBatch(e.simulator, e.cfg.Adaptive).Run(ctx, x0s, e.params, e.SimConfig())
}

// Profile runs the trajectory and returns its closure-distance profile.
func (e *Experiment) Profile(ctx context.Context) (*sim.Result, []float64, error) {
	res, err := e.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	prof, err := proximity.Profile(res.States)
	if err != nil {
		return nil, nil, err
	}
	return res, prof, nil
}

// MapRun is an orbit of the configured 1-D map.
type MapRun struct {
	Map    iterative.Map
	Orbit  []float64
	Cobweb []iterative.Point
}

func RunMap(cfg *config.Config, reg *Registry) (*MapRun, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f, err := reg.GetMap(cfg.Map, cfg.R)
	if err != nil {
		return nil, err
	}
	orbit, err := iterative.Iterate(f, cfg.MapX0, cfg.MapN)
	if err != nil {
		return nil, err
	}
	pts, err := iterative.Cobweb(orbit)
	if err != nil {
		return nil, err
	}
	return &MapRun{Map: f, Orbit: orbit, Cobweb: pts}, nil
}
