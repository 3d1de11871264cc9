package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
)

type PendulumParams struct {
	Length  float64
	Gravity float64
	Damping float64
}

// NewPendulum is frictionless, so every swing below the top is a closed
// orbit.
func NewPendulum() *PendulumParams {
	return &PendulumParams{
		Length:  1.0,
		Gravity: 9.81,
	}
}

// Energy per unit mass; conserved when Damping is zero.
func (p *PendulumParams) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	return 0.5*v*v + p.Gravity*p.Length*(1.0-math.Cos(x[0]))
}

func (p *PendulumParams) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"gravity": p.Gravity,
		"damping": p.Damping,
	}
}

func (p *PendulumParams) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if !(value > 0) {
			return fmt.Errorf("%w: pendulum length must be positive, got %g", dynamo.ErrPrecondition, value)
		}
		p.Length = value
	case "gravity":
		p.Gravity = value
	case "damping":
		p.Damping = value
	default:
		return unknownParam("pendulum", name)
	}
	return nil
}

// Pendulum is the field of a point pendulum with state [theta, omega]:
//
//	dθ/dt = ω
//	dω/dt = -c ω - (g/L) sin θ
func Pendulum(x dynamo.State, p dynamo.Params) (dynamo.State, error) {
	if err := planar("pendulum", x); err != nil {
		return nil, err
	}
	pp, ok := p.(*PendulumParams)
	if !ok {
		return nil, fmt.Errorf("%w: pendulum needs *PendulumParams, got %T", dynamo.ErrPrecondition, p)
	}
	theta, omega := x[0], x[1]
	alpha := -pp.Damping*omega - pp.Gravity/pp.Length*math.Sin(theta)
	return dynamo.State{omega, alpha}, nil
}
