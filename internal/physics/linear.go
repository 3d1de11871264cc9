package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Linear is the field dx/dt = A x. The Params value must be a mat.Matrix
// whose column count matches the state dimension.
func Linear(x dynamo.State, p dynamo.Params) (dynamo.State, error) {
	a, ok := p.(mat.Matrix)
	if !ok {
		return nil, fmt.Errorf("%w: linear field needs a mat.Matrix, got %T", dynamo.ErrPrecondition, p)
	}
	r, c := a.Dims()
	if c != len(x) {
		return nil, fmt.Errorf("%w: matrix is %dx%d, state has %d components", dynamo.ErrDimensionMismatch, r, c, len(x))
	}
	dx := mat.NewVecDense(r, nil)
	dx.MulVec(a, mat.NewVecDense(len(x), x))
	return dynamo.State(dx.RawVector().Data), nil
}

// RotationMatrix is the generator of rotations at angular speed omega.
func RotationMatrix(omega float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		0, -omega,
		omega, 0,
	})
}

// MatrixFromRows builds a square parameter matrix from config rows.
func MatrixFromRows(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty matrix", dynamo.ErrPrecondition)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", dynamo.ErrDimensionMismatch, i, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data), nil
}

// Rotation is the unit-speed rotation (-y, x). Orbits are circles about the
// origin with period 2π.
func Rotation(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
	if len(x) != 2 {
		return nil, fmt.Errorf("%w: rotation is planar, state has %d components", dynamo.ErrDimensionMismatch, len(x))
	}
	return dynamo.State{-x[1], x[0]}, nil
}

// RotationPeriod is the time for one revolution of Rotation.
const RotationPeriod = 2 * math.Pi
