package integrators

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// RK4 is the classical fourth-order Runge-Kutta stepper. It keeps no
// scratch space between calls, so one value may be shared across runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, x dynamo.State, t, dt float64, p dynamo.Params) (dynamo.State, error) {
	n := len(x)
	scratch := make(dynamo.State, n)

	k1, err := derive(f, x, p)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2, err := derive(f, scratch, p)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3, err := derive(f, scratch, p)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*k3[i]
	}
	k4, err := derive(f, scratch, p)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result, nil
}

// derive evaluates f and checks that the derivative matches the state
// dimension. Errors from f itself are passed through untouched.
func derive(f dynamo.Field, x dynamo.State, p dynamo.Params) (dynamo.State, error) {
	dx, err := f(x, p)
	if err != nil {
		return nil, err
	}
	if len(dx) != len(x) {
		return nil, fmt.Errorf("%w: derivative has %d components, state has %d", dynamo.ErrDimensionMismatch, len(dx), len(x))
	}
	return dx, nil
}
