package physics

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// DuffingParams describes the unforced oscillator x'' = -δx' - αx - βx³.
type DuffingParams struct {
	Alpha, Beta, Delta float64
}

// NewDuffing is the undamped double well with minima at x = ±1.
func NewDuffing() *DuffingParams {
	return &DuffingParams{Alpha: -1.0, Beta: 1.0}
}

func (d *DuffingParams) Energy(s dynamo.State) float64 {
	x, v := s[0], s[1]
	return 0.5*v*v + 0.5*d.Alpha*x*x + 0.25*d.Beta*x*x*x*x
}

func (d *DuffingParams) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta}
}

func (d *DuffingParams) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	default:
		return unknownParam("duffing", n)
	}
	return nil
}

func Duffing(s dynamo.State, p dynamo.Params) (dynamo.State, error) {
	if err := planar("duffing", s); err != nil {
		return nil, err
	}
	d, ok := p.(*DuffingParams)
	if !ok {
		return nil, fmt.Errorf("%w: duffing needs *DuffingParams, got %T", dynamo.ErrPrecondition, p)
	}
	x, v := s[0], s[1]
	return dynamo.State{v, -d.Delta*v - d.Alpha*x - d.Beta*x*x*x}, nil
}
