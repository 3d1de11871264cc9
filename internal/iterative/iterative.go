// Package iterative iterates one-dimensional maps and builds cobweb
// diagrams from the resulting sequences.
package iterative

import (
	"fmt"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Map is a scalar iteration x -> f(x). It must be pure.
type Map func(x float64) (float64, error)

type Point = dynamo.Point

// Logistic returns r*x*(1-x).
func Logistic(r float64) Map {
	return func(x float64) (float64, error) {
		return r * x * (1 - x), nil
	}
}

// Tent returns mu*min(x, 1-x).
func Tent(mu float64) Map {
	return func(x float64) (float64, error) {
		return mu * min(x, 1-x), nil
	}
}

// Iterate returns the first n values of the orbit of x0 under f.
func Iterate(f Map, x0 float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least one iterate, got %d", dynamo.ErrEmptySequence, n)
	}
	x := make([]float64, n)
	x[0] = x0
	for i := 1; i < n; i++ {
		v, err := f(x[i-1])
		if err != nil {
			return nil, err
		}
		x[i] = v
	}
	return x, nil
}

// Cobweb turns an orbit into the alternating vertical and horizontal
// segment endpoints of a cobweb diagram. The result has 2*len(x)-1 points
// and the first point sits on the x axis.
func Cobweb(x []float64) ([]Point, error) {
	if len(x) == 0 {
		return nil, dynamo.ErrEmptySequence
	}
	pts := make([]Point, 2*len(x)-1)
	for i, v := range x {
		pts[2*i].X = v
		if i+1 < len(x) {
			pts[2*i+1] = Point{X: v, Y: x[i+1]}
			pts[2*i+2].Y = x[i+1]
		}
	}
	return pts, nil
}

// Curve samples f at n evenly spaced points across [lo, hi].
func Curve(f Map, lo, hi float64, n int) ([]Point, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: curve needs at least two samples, got %d", dynamo.ErrPrecondition, n)
	}
	pts := make([]Point, n)
	step := (hi - lo) / float64(n-1)
	for i := range pts {
		x := lo + float64(i)*step
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		pts[i] = Point{X: x, Y: y}
	}
	return pts, nil
}

// Diagonal is the line y = x across [lo, hi].
func Diagonal(lo, hi float64) []Point {
	return []Point{{X: lo, Y: lo}, {X: hi, Y: hi}}
}
