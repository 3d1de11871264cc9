package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
)

const (
	DefaultSafe1  = 0.9
	DefaultSafe2  = 4.0
	DefaultMaxTry = 100
)

// epsilon is the float64 machine epsilon; it keeps the error ratio finite
// when both trial states are exactly zero.
var epsilon = math.Nextafter(1.0, 2.0) - 1.0

// Adaptive is an error-controlled step-doubling controller. Each trial
// compares two half steps against one full step of the wrapped stepper and
// rescales dt from the measured error ratio.
type Adaptive struct {
	Safe1  float64
	Safe2  float64
	MaxTry int

	stepper dynamo.Stepper
}

func NewAdaptive() *Adaptive {
	return NewAdaptiveWith(NewRK4())
}

func NewAdaptiveWith(stepper dynamo.Stepper) *Adaptive {
	return &Adaptive{
		Safe1:   DefaultSafe1,
		Safe2:   DefaultSafe2,
		MaxTry:  DefaultMaxTry,
		stepper: stepper,
	}
}

// StepError reports that no trial met the tolerance within MaxTry attempts.
type StepError struct {
	Tries int
	Time  float64
	Dt    float64
	Ratio float64
}

func (e *StepError) Error() string {
	return fmt.Sprintf("adaptive runge-kutta routine failed after %d tries (t=%.4f, dt=%.3e, error ratio=%.3e)",
		e.Tries, e.Time, e.Dt, e.Ratio)
}

func (e *StepError) Unwrap() error {
	return dynamo.ErrAdaptiveStep
}

// Step advances x by one accepted step. It returns the new state, the new
// time and the step size proposed for the next call.
func (a *Adaptive) Step(f dynamo.Field, x dynamo.State, t, dt, tol float64, p dynamo.Params) (dynamo.State, float64, float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, t, dt, fmt.Errorf("%w: step size must be positive and finite, got %g", dynamo.ErrPrecondition, dt)
	}
	if !(tol > 0) {
		return nil, t, dt, fmt.Errorf("%w: error tolerance must be positive, got %g", dynamo.ErrPrecondition, tol)
	}

	ratio := math.Inf(1)
	for try := 0; try < a.MaxTry; try++ {
		half := dt / 2
		xTemp, err := a.stepper.Step(f, x, t, half, p)
		if err != nil {
			return nil, t, dt, err
		}
		xSmall, err := a.stepper.Step(f, xTemp, t+half, half, p)
		if err != nil {
			return nil, t, dt, err
		}
		xBig, err := a.stepper.Step(f, x, t, dt, p)
		if err != nil {
			return nil, t, dt, err
		}
		if !xSmall.IsValid() || !xBig.IsValid() {
			return nil, t, dt, fmt.Errorf("%w: adaptive trial at t=%.4f with dt=%.3e", dynamo.ErrInvalidState, t, dt)
		}

		ratio = errorRatio(xSmall, xBig, tol)

		dtOld := dt
		dt = a.propose(dtOld, ratio)

		if ratio < 1 {
			return xSmall, t + dtOld, dt, nil
		}
	}

	return nil, t, dt, &StepError{Tries: a.MaxTry, Time: t, Dt: dt, Ratio: ratio}
}

// propose rescales dt from the error ratio, clamped to [dt/Safe2, Safe2*dt].
func (a *Adaptive) propose(dt, ratio float64) float64 {
	next := a.Safe1 * dt * math.Pow(ratio, -0.2)
	next = math.Max(next, dt/a.Safe2)
	return math.Min(next, a.Safe2*dt)
}

func errorRatio(small, big dynamo.State, tol float64) float64 {
	worst := 0.0
	for i := range small {
		scale := tol * (math.Abs(small[i]) + math.Abs(big[i])) / 2
		worst = math.Max(worst, math.Abs(small[i]-big[i])/(scale+epsilon))
	}
	return worst
}
