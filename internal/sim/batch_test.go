package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/integrators"
	"github.com/san-kum/rkloop/internal/sim"
)

var _ = Describe("Batch", func() {
	var (
		ctx context.Context
		cfg sim.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = sim.DefaultConfig()
	})

	It("returns results in input order", func() {
		b := sim.NewBatch(sim.New(rotation, integrators.NewRK4()), false)
		x0s := []dynamo.State{{1, 0}, {2, 0}, {0, 1}}

		results, err := b.Run(ctx, x0s, nil, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, res := range results {
			Expect(res.States[0]).To(Equal(x0s[i]))
			Expect(res.Closed).To(BeTrue())
			Expect(res.ClosedAt).To(Equal(314))
		}
	})

	It("matches single runs", func() {
		s := sim.New(rotation, integrators.NewRK4())
		results, err := sim.NewBatch(s, false).Run(ctx, []dynamo.State{{1.5, 0}}, nil, cfg)
		Expect(err).NotTo(HaveOccurred())

		want, err := s.Run(ctx, dynamo.State{1.5, 0}, nil, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(results[0].States).To(Equal(want.States))
	})

	It("uses the adaptive controller when asked", func() {
		b := sim.NewBatch(sim.New(still, integrators.NewRK4()), true)
		results, err := b.Run(ctx, []dynamo.State{{1, 1}, {2, 2}}, nil, cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, res := range results {
			Expect(res.Closed).To(BeTrue())
			Expect(res.Len()).To(Equal(2))
		}
	})

	It("keeps the runs finished before a failure", func() {
		b := sim.NewBatch(sim.New(rotation, integrators.NewRK4()), false)
		results, err := b.Run(ctx, []dynamo.State{{1, 0}, {}, {2, 0}}, nil, cfg)
		Expect(err).To(MatchError(dynamo.ErrPrecondition))
		Expect(results).To(HaveLen(1))
	})

	It("shares observers across runs", func() {
		cfg.N = 5
		cfg.EStop = -1
		s := sim.New(rotation, integrators.NewRK4())
		c := &counter{}
		s.AddObserver(c)

		_, err := sim.NewBatch(s, false).Run(ctx, []dynamo.State{{1, 0}, {2, 0}}, nil, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.calls).To(Equal(10))
	})

	It("stops on a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		results, err := sim.NewBatch(sim.New(rotation, integrators.NewRK4()), false).Run(cancelled, []dynamo.State{{1, 0}}, nil, cfg)
		Expect(err).To(MatchError(context.Canceled))
		Expect(results).To(BeEmpty())
	})
})
