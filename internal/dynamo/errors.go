package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration and termination operations.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrAdaptiveStep indicates the adaptive controller ran out of retries.
	ErrAdaptiveStep = errors.New("dynamo: adaptive runge-kutta step failed to converge")

	// ErrPrecondition indicates a caller error such as an empty input.
	ErrPrecondition = errors.New("dynamo: precondition violated")

	// ErrEmptyHistory indicates a proximity query without prior points.
	ErrEmptyHistory = fmt.Errorf("%w: empty history", ErrPrecondition)

	// ErrEmptySequence indicates a zero-length map sequence.
	ErrEmptySequence = fmt.Errorf("%w: empty sequence", ErrPrecondition)

	// ErrDimensionMismatch indicates mismatched state/parameter dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and parameters")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
