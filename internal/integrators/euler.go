package integrators

import "github.com/san-kum/rkloop/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, x dynamo.State, t, dt float64, p dynamo.Params) (dynamo.State, error) {
	dx, err := derive(f, x, p)
	if err != nil {
		return nil, err
	}
	return x.AddScaled(dt, dx), nil
}
