package metrics

import (
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Stability reports how much of a trajectory stays inside the plotting
// window. A point counts as inside when every component lies within the
// view radius; the first time a point leaves is kept as the escape time.
type Stability struct {
	radius  float64
	inside  int
	total   int
	escaped bool
	escape  float64
}

// NewStability bounds points by radius, usually the half-width of the view.
func NewStability(radius float64) *Stability {
	return &Stability{radius: radius}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) OnStep(x dynamo.State, t float64) {
	s.total++
	if within(x, s.radius) {
		s.inside++
		return
	}
	if !s.escaped {
		s.escaped, s.escape = true, t
	}
}

func within(x dynamo.State, r float64) bool {
	for _, v := range x {
		if math.Abs(v) > r {
			return false
		}
	}
	return true
}

// Value is the fraction of points inside the window, 1 before any point.
func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.inside) / float64(s.total)
}

// Escape returns the time of the first point outside the window.
func (s *Stability) Escape() (float64, bool) { return s.escape, s.escaped }

func (s *Stability) Reset() { *s = Stability{radius: s.radius} }
