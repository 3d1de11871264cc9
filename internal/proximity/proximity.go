// Package proximity measures how close a trajectory comes to its own past.
//
// A periodic orbit returns to a neighbourhood of an earlier point, so the
// minimum distance from the newest point to all previous points doubles as
// a closure test. [MinDistance] answers that for one point, [Profile]
// computes it for every index of a finished trajectory and [Criterion]
// turns it into a stop/continue decision. Each query is O(n) in the length
// of the history, O(N²) over a whole trajectory.
package proximity

import (
	"fmt"
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// MinDistance returns the Euclidean distance from point to the nearest
// vector in history. history must hold at least one point.
func MinDistance(point dynamo.State, history []dynamo.State) (float64, error) {
	if len(history) == 0 {
		return 0, dynamo.ErrEmptyHistory
	}
	return nearest(point, history)
}

// Profile returns, for every index n >= 1, the distance from traj[n] to the
// nearest of traj[0..n-1]. Index 0 has no history and is left at zero.
func Profile(traj []dynamo.State) ([]float64, error) {
	if len(traj) == 0 {
		return nil, dynamo.ErrEmptySequence
	}
	out := make([]float64, len(traj))
	for n := 1; n < len(traj); n++ {
		d, err := nearest(traj[n], traj[:n])
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", n, err)
		}
		out[n] = d
	}
	return out, nil
}

// Criterion is the closure test applied after every simulation step.
type Criterion struct {
	// EStop is the inclusive distance threshold. A negative value never
	// fires since distances are non-negative.
	EStop float64
}

// Closed reports whether point lies within EStop of any history vector,
// together with the measured minimum distance.
func (c Criterion) Closed(point dynamo.State, history []dynamo.State) (bool, float64, error) {
	d, err := MinDistance(point, history)
	if err != nil {
		return false, 0, err
	}
	return d <= c.EStop, d, nil
}

func nearest(point dynamo.State, history []dynamo.State) (float64, error) {
	best := math.Inf(1)
	for _, h := range history {
		if len(h) != len(point) {
			return 0, fmt.Errorf("%w: point has %d components, history entry has %d", dynamo.ErrDimensionMismatch, len(point), len(h))
		}
		if d := floats.Distance(point, h, 2); d < best {
			best = d
		}
	}
	return best, nil
}
