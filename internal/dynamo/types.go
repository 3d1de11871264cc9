package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// AddScaled returns s + alpha*d as a new state.
func (s State) AddScaled(alpha float64, d State) State {
	result := s.Clone()
	floats.AddScaled(result, alpha, d)
	return result
}

// Params is the caller-defined parameter object handed unchanged to every
// derivative evaluation. Integrators never look inside it.
type Params = any

// Field returns dx/dt at x. It must be pure: integrators call it at
// intermediate points that never appear in the trajectory.
type Field func(x State, p Params) (State, error)

// Stepper advances a state by one fixed increment.
type Stepper interface {
	Step(f Field, x State, t, dt float64, p Params) (State, error)
}

// Point is a 2-D sample handed to rendering adapters.
type Point struct {
	X, Y float64
}
