package sim

import "github.com/san-kum/rkloop/internal/dynamo"

type Observer interface {
	OnStep(x dynamo.State, t float64)
}

// Config controls one trajectory run.
type Config struct {
	Dt float64
	N  int
	// EStop is the closure threshold; negative disables early stopping.
	EStop float64
	// Tolerance is the relative error target for RunAdaptive.
	Tolerance float64
}

func DefaultConfig() Config {
	return Config{
		Dt:        0.02,
		N:         5000,
		EStop:     0.01,
		Tolerance: 1e-3,
	}
}

// Result is a finished trajectory. States and Times have equal length, at
// most Config.N. When Closed is set the last point is the one that came
// within EStop of an earlier point and ClosedAt is its index.
type Result struct {
	States     []dynamo.State
	Times      []float64
	Closed     bool
	ClosedAt   int
	MinDist    float64
	StepsTaken int
}

func newResult(n int) *Result {
	return &Result{
		States:   make([]dynamo.State, 0, n),
		Times:    make([]float64, 0, n),
		ClosedAt: -1,
		MinDist:  inf,
	}
}

func (r *Result) Len() int { return len(r.States) }

// Column extracts component i of every state. Components missing from a
// state, or a negative i, read as zero.
func (r *Result) Column(i int) []float64 {
	out := make([]float64, len(r.States))
	for n, x := range r.States {
		if i >= 0 && i < len(x) {
			out[n] = x[i]
		}
	}
	return out
}
