package physics

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

type LorenzParams struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *LorenzParams { return &LorenzParams{10.0, 28.0, 8.0 / 3.0} }

func (l *LorenzParams) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *LorenzParams) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return unknownParam("lorenz", n)
	}
	return nil
}

// Lorenz is the three-dimensional convection model. With the default
// parameters orbits are chaotic and never close; below rho ≈ 24.74 they
// settle onto a fixed point.
func Lorenz(s dynamo.State, p dynamo.Params) (dynamo.State, error) {
	if len(s) != 3 {
		return nil, fmt.Errorf("%w: lorenz needs 3 components, got %d", dynamo.ErrDimensionMismatch, len(s))
	}
	l, ok := p.(*LorenzParams)
	if !ok {
		return nil, fmt.Errorf("%w: lorenz needs *LorenzParams, got %T", dynamo.ErrPrecondition, p)
	}
	return dynamo.State{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}, nil
}
