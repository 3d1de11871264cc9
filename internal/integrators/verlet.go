package integrators

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Verlet is the velocity Verlet stepper for separable fields whose state is
// [q..., v...]: the first half of the derivative may depend only on v and
// the second half only on q. It is symplectic, so conserved quantities
// oscillate instead of drifting, at second-order accuracy.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(f dynamo.Field, x dynamo.State, t, dt float64, p dynamo.Params) (dynamo.State, error) {
	n := len(x)
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: verlet needs [q, v] pairs, state has %d components", dynamo.ErrDimensionMismatch, n)
	}
	half := n / 2
	halfDt := 0.5 * dt

	dx, err := derive(f, x, p)
	if err != nil {
		return nil, err
	}

	// kick
	scratch := x.Clone()
	for i := 0; i < half; i++ {
		scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	// drift
	dx, err = derive(f, scratch, p)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		scratch[i] = x[i] + dx[i]*dt
	}

	// kick
	dx, err = derive(f, scratch, p)
	if err != nil {
		return nil, err
	}
	result := scratch.Clone()
	for i := 0; i < half; i++ {
		result[half+i] = scratch[half+i] + dx[half+i]*halfDt
	}

	return result, nil
}
