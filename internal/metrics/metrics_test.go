package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/integrators"
	"github.com/san-kum/rkloop/internal/physics"
	"github.com/san-kum/rkloop/internal/sim"
)

func TestNormDrift(t *testing.T) {
	m := NewNormDrift()

	m.OnStep(dynamo.State{3, 4}, 0)
	m.OnStep(dynamo.State{0, 5.5}, 1)
	m.OnStep(dynamo.State{5, 0}, 2)

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected drift 0.1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestNormDrift_ZeroStart(t *testing.T) {
	m := NewNormDrift()
	m.OnStep(dynamo.State{0, 0}, 0)
	m.OnStep(dynamo.State{1, 0}, 1)
	if m.Value() != 0 {
		t.Errorf("drift from the origin is undefined, got %f", m.Value())
	}
}

func TestPathLength(t *testing.T) {
	m := NewPathLength()
	for i, x := range []dynamo.State{{0, 0}, {3, 4}, {3, 0}} {
		m.OnStep(x, float64(i))
	}
	if m.Value() != 9 {
		t.Errorf("expected length 9, got %f", m.Value())
	}

	m.Reset()
	m.OnStep(dynamo.State{1, 1}, 0)
	if m.Value() != 0 {
		t.Error("single point has zero length")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(2)
	if m.Value() != 1 {
		t.Errorf("expected 1 before any sample, got %f", m.Value())
	}

	m.OnStep(dynamo.State{1, 1}, 0)
	m.OnStep(dynamo.State{1, -3}, 1)
	m.OnStep(dynamo.State{0.5, 0}, 2)
	m.OnStep(dynamo.State{5, 5}, 3)

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	if at, ok := m.Escape(); !ok || at != 1 {
		t.Errorf("expected escape at t=1, got %v (%v)", at, ok)
	}

	m.Reset()
	if _, ok := m.Escape(); ok || m.Value() != 1 {
		t.Error("reset should clear the escape and the count")
	}
}

func TestCollect(t *testing.T) {
	d, s := NewNormDrift(), NewStability(1)
	got := Collect(d, s)
	if len(got) != 2 || got["norm_drift"] != 0 || got["stability"] != 1 {
		t.Errorf("unexpected values: %v", got)
	}
}

func TestMetricsAsObservers(t *testing.T) {
	drift, length := NewNormDrift(), NewPathLength()

	s := sim.New(physics.Rotation, integrators.NewRK4())
	s.AddObserver(drift)
	s.AddObserver(length)

	cfg := sim.Config{Dt: 0.02, N: 315, EStop: -1}
	if _, err := s.Run(context.Background(), dynamo.State{1, 0}, nil, cfg); err != nil {
		t.Fatal(err)
	}

	if drift.Value() > 1e-6 {
		t.Errorf("rk4 rotation drifted by %e", drift.Value())
	}
	if math.Abs(length.Value()-2*math.Pi) > 0.01 {
		t.Errorf("expected one revolution of length 2pi, got %f", length.Value())
	}
}
