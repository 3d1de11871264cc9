package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/integrators"
	"github.com/san-kum/rkloop/internal/proximity"
)

var inf = math.Inf(1)

// Simulator drives a stepper over a vector field and stops once the
// trajectory closes on itself. It holds no per-run state.
type Simulator struct {
	field     dynamo.Field
	stepper   dynamo.Stepper
	observers []Observer
}

func New(field dynamo.Field, stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		field:     field,
		stepper:   stepper,
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates with a fixed step. After each step the new point is
// compared against every earlier point; if the distance is <= cfg.EStop
// the trajectory is truncated right after it.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, p dynamo.Params, cfg Config) (*Result, error) {
	if err := s.validateConfig(x0, cfg, false); err != nil {
		return nil, err
	}

	result := newResult(cfg.N)
	crit := proximity.Criterion{EStop: cfg.EStop}

	x := x0.Clone()
	t := 0.0
	s.record(result, x, t)

	for n := 1; n < cfg.N; n++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, err := s.stepper.Step(s.field, x, t, cfg.Dt, p)
		if err != nil {
			return nil, err
		}
		if !next.IsValid() {
			return nil, &dynamo.SimulationError{Step: n, Time: t + cfg.Dt, State: next, Wrapped: dynamo.ErrInvalidState}
		}

		x = next
		t += cfg.Dt
		if done, err := s.advance(result, crit, x, t); done || err != nil {
			return result, err
		}
	}

	return result, nil
}

// RunAdaptive follows Run but lets the adaptive controller pick each step.
// cfg.Dt seeds the first trial. A controller failure aborts the run.
func (s *Simulator) RunAdaptive(ctx context.Context, x0 dynamo.State, p dynamo.Params, cfg Config) (*Result, error) {
	if err := s.validateConfig(x0, cfg, true); err != nil {
		return nil, err
	}

	controller := integrators.NewAdaptiveWith(s.stepper)
	result := newResult(cfg.N)
	crit := proximity.Criterion{EStop: cfg.EStop}

	x := x0.Clone()
	t, dt := 0.0, cfg.Dt
	s.record(result, x, t)

	for n := 1; n < cfg.N; n++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, tNext, dtNext, err := controller.Step(s.field, x, t, dt, cfg.Tolerance, p)
		if err != nil {
			if errors.Is(err, dynamo.ErrAdaptiveStep) || errors.Is(err, dynamo.ErrInvalidState) || errors.Is(err, dynamo.ErrPrecondition) {
				return nil, &dynamo.SimulationError{Step: n, Time: t, State: x.Clone(), Wrapped: err}
			}
			return nil, err
		}

		x, t, dt = next, tNext, dtNext
		if done, err := s.advance(result, crit, x, t); done || err != nil {
			return result, err
		}
	}

	return result, nil
}

// advance stores the newest point and applies the closure test against
// everything stored before it.
func (s *Simulator) advance(result *Result, crit proximity.Criterion, x dynamo.State, t float64) (bool, error) {
	n := len(result.States)
	s.record(result, x, t)
	result.StepsTaken++

	closed, d, err := crit.Closed(x, result.States[:n])
	if err != nil {
		return true, err
	}
	if d < result.MinDist {
		result.MinDist = d
	}
	if closed {
		result.Closed = true
		result.ClosedAt = n
		return true, nil
	}
	return false, nil
}

func (s *Simulator) record(result *Result, x dynamo.State, t float64) {
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) validateConfig(x0 dynamo.State, cfg Config, adaptive bool) error {
	if len(x0) == 0 {
		return fmt.Errorf("%w: initial state is empty", dynamo.ErrPrecondition)
	}
	if !x0.IsValid() {
		return fmt.Errorf("%w: initial state %v", dynamo.ErrInvalidState, x0)
	}
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrPrecondition, cfg.Dt)
	}
	if cfg.N < 1 {
		return fmt.Errorf("%w: point count must be at least 1, got %d", dynamo.ErrPrecondition, cfg.N)
	}
	if adaptive && !(cfg.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", dynamo.ErrPrecondition)
	}
	return nil
}
