package sim

import "github.com/san-kum/rkloop/internal/dynamo"

// FrameIndices returns the index of the last point shown in each animation
// frame when revealing n points skip at a time: skip-1, 2*skip-1, ... with
// the final entry clamped to n-1.
func FrameIndices(n, skip int) []int {
	if n <= 0 {
		return nil
	}
	if skip < 1 {
		skip = 1
	}
	frames := (n + skip - 1) / skip
	out := make([]int, frames)
	for i := range out {
		out[i] = min((i+1)*skip-1, n-1)
	}
	return out
}

// PointStream hands out the 2-D projection of a trajectory one point at a
// time. It is finite and cannot be rewound.
type PointStream struct {
	states []dynamo.State
	xi, yi int
	pos    int
}

// NewPointStream projects components xi and yi of every stored state.
func NewPointStream(res *Result, xi, yi int) *PointStream {
	return &PointStream{states: res.States, xi: xi, yi: yi}
}

func (s *PointStream) Next() (dynamo.Point, bool) {
	if s.pos >= len(s.states) {
		return dynamo.Point{}, false
	}
	x := s.states[s.pos]
	s.pos++
	return project(x, s.xi, s.yi), true
}

// Take returns up to n further points.
func (s *PointStream) Take(n int) []dynamo.Point {
	if n <= 0 {
		return nil
	}
	out := make([]dynamo.Point, 0, min(n, s.Remaining()))
	for len(out) < n {
		p, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

func (s *PointStream) Remaining() int { return len(s.states) - s.pos }

func project(x dynamo.State, xi, yi int) dynamo.Point {
	var p dynamo.Point
	if xi >= 0 && xi < len(x) {
		p.X = x[xi]
	}
	if yi >= 0 && yi < len(x) {
		p.Y = x[yi]
	}
	return p
}
