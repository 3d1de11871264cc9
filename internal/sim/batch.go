package sim

import (
	"context"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Batch runs one field from several initial states, one after another.
// Observers of the base simulator see every run.
type Batch struct {
	base     *Simulator
	adaptive bool
}

func NewBatch(s *Simulator, adaptive bool) *Batch {
	return &Batch{base: s, adaptive: adaptive}
}

// Run returns one result per initial state, in input order, and stops at
// the first failing run.
func (b *Batch) Run(ctx context.Context, x0s []dynamo.State, p dynamo.Params, cfg Config) ([]*Result, error) {
	run := b.base.Run
	if b.adaptive {
		run = b.base.RunAdaptive
	}

	results := make([]*Result, 0, len(x0s))
	for _, x0 := range x0s {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := run(ctx, x0, p, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
