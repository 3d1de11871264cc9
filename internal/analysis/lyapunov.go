package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/iterative"
)

const derivativeStep = 1e-7

// MapLyapunov estimates the Lyapunov exponent of a 1-D map as the orbit
// average of ln|f'(x)|, with f' from central differences. The first
// transient iterates are discarded. A positive value indicates chaos.
func MapLyapunov(f iterative.Map, x0 float64, transient, n int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: need at least one iterate", dynamo.ErrPrecondition)
	}
	if transient < 0 {
		return 0, fmt.Errorf("%w: transient must not be negative, got %d", dynamo.ErrPrecondition, transient)
	}
	orbit, err := iterative.Iterate(f, x0, transient+n)
	if err != nil {
		return 0, err
	}

	sumLog := 0.0
	count := 0
	for _, x := range orbit[transient:] {
		hi, err := f(x + derivativeStep)
		if err != nil {
			return 0, err
		}
		lo, err := f(x - derivativeStep)
		if err != nil {
			return 0, err
		}
		d := math.Abs(hi-lo) / (2 * derivativeStep)
		if d > 0 {
			sumLog += math.Log(d)
			count++
		}
	}
	if count == 0 {
		return math.Inf(-1), nil
	}
	return sumLog / float64(count), nil
}
