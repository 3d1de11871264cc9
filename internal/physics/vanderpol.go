package physics

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// VanDerPolParams holds the damping strength of the oscillator.
type VanDerPolParams struct {
	Mu float64 `yaml:"mu"`
}

func DefaultVanDerPol() VanDerPolParams {
	return VanDerPolParams{Mu: 2.0}
}

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
//
// Every orbit except the origin is attracted to a single limit cycle.
func VanDerPol(state dynamo.State, p dynamo.Params) (dynamo.State, error) {
	if len(state) != 2 {
		return nil, fmt.Errorf("%w: van der pol is planar, state has %d components", dynamo.ErrDimensionMismatch, len(state))
	}
	var mu float64
	switch v := p.(type) {
	case VanDerPolParams:
		mu = v.Mu
	case *VanDerPolParams:
		mu = v.Mu
	case nil:
		mu = DefaultVanDerPol().Mu
	default:
		return nil, fmt.Errorf("%w: van der pol needs VanDerPolParams, got %T", dynamo.ErrPrecondition, p)
	}

	x, y := state[0], state[1]

	dx := y
	dy := mu*(1-x*x)*y - x

	return dynamo.State{dx, dy}, nil
}
