// Package metrics accumulates per-step statistics while a trajectory is
// integrated. Every metric is a sim.Observer.
package metrics

import (
	"math"

	"github.com/san-kum/rkloop/internal/dynamo"
)

type Metric interface {
	Name() string
	OnStep(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Collect reads the current value of every metric.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// NormDrift tracks the largest relative change of |x| from the first
// observed state. Rotations conserve the norm, so for them this measures
// integrator error.
type NormDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewNormDrift() *NormDrift { return &NormDrift{} }

func (n *NormDrift) Name() string { return "norm_drift" }

func (n *NormDrift) OnStep(x dynamo.State, t float64) {
	norm := x.Norm()
	if n.samples == 0 {
		n.initial = norm
	}
	n.samples++

	if n.initial != 0 {
		drift := math.Abs(norm-n.initial) / n.initial
		n.maxDrift = math.Max(n.maxDrift, drift)
	}
}

func (n *NormDrift) Value() float64 { return n.maxDrift }

func (n *NormDrift) Reset() {
	n.initial = 0
	n.maxDrift = 0
	n.samples = 0
}

// PathLength sums the Euclidean distance between consecutive states.
type PathLength struct {
	prev   dynamo.State
	length float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) OnStep(x dynamo.State, t float64) {
	if p.prev != nil && len(p.prev) == len(x) {
		p.length += x.Sub(p.prev).Norm()
	}
	p.prev = x.Clone()
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.prev = nil
	p.length = 0
}
