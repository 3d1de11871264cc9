package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rkloop/internal/dynamo"
)

func TestAdaptive_StepSizeBounds(t *testing.T) {
	a := NewAdaptive()

	tests := []struct {
		name string
		dt   float64
		tol  float64
	}{
		{"tiny step loose tol", 1e-3, 1e-3},
		{"default step", 0.02, 1e-3},
		{"default step tight tol", 0.02, 1e-10},
		{"large step", 0.5, 1e-6},
		{"huge step", 2.0, 1e-8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, tNew, dtNew, err := a.Step(rotation, dynamo.State{1, 0}, 0, tt.dt, tt.tol, nil)
			if err != nil {
				t.Fatalf("step failed: %v", err)
			}
			if !x.IsValid() {
				t.Fatal("accepted state is invalid")
			}

			used := tNew
			if used <= 0 || used > tt.dt*(1+1e-12) {
				t.Fatalf("accepted dt %g outside (0, %g]", used, tt.dt)
			}
			lo, hi := used/DefaultSafe2, used*DefaultSafe2
			if dtNew < lo*(1-1e-12) || dtNew > hi*(1+1e-12) {
				t.Errorf("dt_new=%g outside [%g, %g]", dtNew, lo, hi)
			}
		})
	}
}

func TestAdaptive_AcceptedStepsStayWithinTolerance(t *testing.T) {
	a := NewAdaptive()
	tol := 1e-6
	x := dynamo.State{1, 0}
	tm, dt := 0.0, 0.1

	for i := 0; i < 200; i++ {
		prev, tPrev := x, tm
		var err error
		x, tm, dt, err = a.Step(rotation, x, tm, dt, tol, nil)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		if dt <= 0 {
			t.Fatalf("step %d proposed non-positive dt %g", i, dt)
		}

		used := tm - tPrev
		half, _ := a.stepper.Step(rotation, prev, tPrev, used/2, nil)
		small, _ := a.stepper.Step(rotation, half, tPrev+used/2, used/2, nil)
		big, _ := a.stepper.Step(rotation, prev, tPrev, used, nil)
		if r := errorRatio(small, big, tol); r >= 1+1e-9 {
			t.Fatalf("step %d accepted with error ratio %g", i, r)
		}
	}

	if math.Abs(x.Norm()-1) > 1e-4 {
		t.Errorf("norm drifted to %f", x.Norm())
	}
}

func TestAdaptive_ZeroStateGrowsStep(t *testing.T) {
	a := NewAdaptive()
	x, tNew, dtNew, err := a.Step(rotation, dynamo.State{0, 0}, 1.0, 0.1, 1e-6, nil)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if x[0] != 0 || x[1] != 0 {
		t.Errorf("expected zero state, got %v", x)
	}
	if math.Abs(tNew-1.1) > 1e-12 {
		t.Errorf("expected t=1.1, got %g", tNew)
	}
	if math.Abs(dtNew-0.4) > 1e-12 {
		t.Errorf("expected dt clamped to 4*dt=0.4, got %g", dtNew)
	}
}

func TestAdaptive_Failure(t *testing.T) {
	// Each trial issues 12 derivative calls. The field grows by Safe2 per
	// trial, which cancels the maximum shrink of dt, so the half-step and
	// full-step estimates never get closer.
	calls := 0
	f := func(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
		v := float64(calls) * math.Pow(DefaultSafe2, float64(calls/12))
		calls++
		return dynamo.State{v}, nil
	}

	a := NewAdaptive()
	_, tNew, _, err := a.Step(f, dynamo.State{0}, 2.0, 0.1, 1e-6, nil)

	if !errors.Is(err, dynamo.ErrAdaptiveStep) {
		t.Fatalf("expected ErrAdaptiveStep, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %T", err)
	}
	if stepErr.Tries != DefaultMaxTry {
		t.Errorf("expected %d tries, got %d", DefaultMaxTry, stepErr.Tries)
	}
	if calls != DefaultMaxTry*12 {
		t.Errorf("expected %d derivative calls, got %d", DefaultMaxTry*12, calls)
	}
	if tNew != 2.0 {
		t.Errorf("time advanced on failure: %g", tNew)
	}
}

func TestAdaptive_Preconditions(t *testing.T) {
	a := NewAdaptive()
	tests := []struct {
		name    string
		dt, tol float64
	}{
		{"zero dt", 0, 1e-3},
		{"negative dt", -0.1, 1e-3},
		{"nan dt", math.NaN(), 1e-3},
		{"zero tol", 0.1, 0},
		{"negative tol", 0.1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := a.Step(rotation, dynamo.State{1, 0}, 0, tt.dt, tt.tol, nil)
			if !errors.Is(err, dynamo.ErrPrecondition) {
				t.Errorf("expected ErrPrecondition, got %v", err)
			}
		})
	}
}

func TestAdaptive_InvalidState(t *testing.T) {
	f := func(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
		return dynamo.State{math.NaN()}, nil
	}
	_, _, _, err := NewAdaptive().Step(f, dynamo.State{1}, 0, 0.1, 1e-3, nil)
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestAdaptive_FieldErrorUnchanged(t *testing.T) {
	boom := errors.New("bad field")
	f := func(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
		return nil, boom
	}
	_, _, _, err := NewAdaptive().Step(f, dynamo.State{1}, 0, 0.1, 1e-3, nil)
	if err != boom {
		t.Errorf("expected field error unchanged, got %v", err)
	}
}
