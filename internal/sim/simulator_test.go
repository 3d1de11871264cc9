package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/integrators"
	"github.com/san-kum/rkloop/internal/sim"
)

func rotation(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
	return dynamo.State{-x[1], x[0]}, nil
}

func still(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
	return make(dynamo.State, len(x)), nil
}

// scripted ignores the field and replays a fixed list of states.
type scripted struct {
	states []dynamo.State
	next   int
}

func (s *scripted) Step(_ dynamo.Field, _ dynamo.State, _, _ float64, _ dynamo.Params) (dynamo.State, error) {
	x := s.states[s.next]
	s.next++
	return x.Clone(), nil
}

// unitJump moves x by one for any positive dt, so halving never agrees
// with the full step until dt reaches zero.
type unitJump struct{}

func (unitJump) Step(_ dynamo.Field, x dynamo.State, _, dt float64, _ dynamo.Params) (dynamo.State, error) {
	if dt > 0 {
		return x.Add(dynamo.State{1}), nil
	}
	return x.Clone(), nil
}

type counter struct {
	calls int
	times []float64
}

func (c *counter) OnStep(_ dynamo.State, t float64) {
	c.calls++
	c.times = append(c.times, t)
}

var _ = Describe("Simulator", func() {
	var (
		ctx context.Context
		cfg sim.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = sim.DefaultConfig()
	})

	Describe("Run", func() {
		It("closes the unit circle after one revolution", func() {
			s := sim.New(rotation, integrators.NewRK4())
			res, err := s.Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Closed).To(BeTrue())
			Expect(res.ClosedAt).To(Equal(314))
			Expect(res.Len()).To(Equal(315))
			Expect(res.Times).To(HaveLen(315))
			Expect(res.MinDist).To(BeNumerically("<=", cfg.EStop))
			Expect(res.StepsTaken).To(Equal(314))

			xs := res.Column(0)
			Expect(xs).To(HaveLen(315))
			Expect(xs[0]).To(Equal(1.0))
			Expect(res.Column(5)[10]).To(Equal(0.0))
		})

		It("conserves the norm over a full run when closure is disabled", func() {
			cfg.EStop = -1
			s := sim.New(rotation, integrators.NewRK4())
			res, err := s.Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Closed).To(BeFalse())
			Expect(res.ClosedAt).To(Equal(-1))
			Expect(res.Len()).To(Equal(cfg.N))
			for _, x := range res.States {
				Expect(x.Norm()).To(BeNumerically("~", 1, 1e-6))
			}
		})

		It("spaces times by exactly dt", func() {
			cfg.EStop = -1
			cfg.N = 50
			res, err := sim.New(rotation, integrators.NewRK4()).Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Times[0]).To(Equal(0.0))
			for i := 1; i < len(res.Times); i++ {
				Expect(res.Times[i] - res.Times[i-1]).To(BeNumerically("~", cfg.Dt, 1e-12))
			}
		})

		It("truncates right after an injected repeat", func() {
			stepper := &scripted{states: []dynamo.State{
				{1, 0}, {2, 0}, {3, 0}, {1, 0}, {4, 0}, {5, 0},
			}}
			res, err := sim.New(rotation, stepper).Run(ctx, dynamo.State{0, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Closed).To(BeTrue())
			Expect(res.ClosedAt).To(Equal(4))
			Expect(res.Len()).To(Equal(5))
			Expect(res.States[4]).To(Equal(dynamo.State{1, 0}))
			Expect(res.MinDist).To(Equal(0.0))
		})

		It("stops at the first step for a fixed point", func() {
			res, err := sim.New(still, integrators.NewRK4()).Run(ctx, dynamo.State{0.5, 0.5}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.ClosedAt).To(Equal(1))
			Expect(res.Len()).To(Equal(2))
		})

		It("returns only the initial point when N is 1", func() {
			cfg.N = 1
			res, err := sim.New(rotation, integrators.NewRK4()).Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Len()).To(Equal(1))
			Expect(res.Closed).To(BeFalse())
			Expect(math.IsInf(res.MinDist, 1)).To(BeTrue())
		})

		It("does not alias the caller's initial state", func() {
			x0 := dynamo.State{1, 0}
			res, err := sim.New(rotation, integrators.NewRK4()).Run(ctx, x0, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			res.States[0][0] = 42
			Expect(x0[0]).To(Equal(1.0))
		})

		It("returns field errors unchanged", func() {
			boom := errors.New("field exploded")
			f := func(dynamo.State, dynamo.Params) (dynamo.State, error) { return nil, boom }

			res, err := sim.New(f, integrators.NewRK4()).Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).To(BeIdenticalTo(boom))
			Expect(res).To(BeNil())
		})

		It("reports a non-finite state with its step", func() {
			f := func(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
				return dynamo.State{math.Inf(1)}, nil
			}
			_, err := sim.New(f, integrators.NewRK4()).Run(ctx, dynamo.State{1}, nil, cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidState))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(1))
		})

		It("notifies observers of every stored point", func() {
			cfg.EStop = -1
			cfg.N = 10
			obs := &counter{}
			s := sim.New(rotation, integrators.NewRK4())
			s.AddObserver(obs)

			_, err := s.Run(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(obs.calls).To(Equal(10))
			Expect(obs.times[0]).To(Equal(0.0))
		})

		It("stops on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := sim.New(rotation, integrators.NewRK4()).Run(cctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Len()).To(Equal(1))
		})

		DescribeTable("rejects bad configuration",
			func(x0 dynamo.State, mutate func(*sim.Config)) {
				mutate(&cfg)
				_, err := sim.New(rotation, integrators.NewRK4()).Run(ctx, x0, nil, cfg)
				Expect(err).To(HaveOccurred())
			},
			Entry("zero dt", dynamo.State{1, 0}, func(c *sim.Config) { c.Dt = 0 }),
			Entry("negative dt", dynamo.State{1, 0}, func(c *sim.Config) { c.Dt = -0.1 }),
			Entry("zero points", dynamo.State{1, 0}, func(c *sim.Config) { c.N = 0 }),
			Entry("empty state", dynamo.State{}, func(c *sim.Config) {}),
			Entry("nan state", dynamo.State{math.NaN(), 0}, func(c *sim.Config) {}),
		)
	})

	Describe("RunAdaptive", func() {
		It("keeps the orbit on the circle with error control", func() {
			cfg.Tolerance = 1e-8
			cfg.EStop = -1
			cfg.N = 200
			res, err := sim.New(rotation, integrators.NewRK4()).RunAdaptive(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Len()).To(Equal(200))
			Expect(res.States[res.Len()-1].Norm()).To(BeNumerically("~", 1, 1e-4))
			for i := 1; i < len(res.Times); i++ {
				Expect(res.Times[i]).To(BeNumerically(">", res.Times[i-1]))
			}
		})

		It("applies the closure test to adaptive steps", func() {
			res, err := sim.New(still, integrators.NewRK4()).RunAdaptive(ctx, dynamo.State{1, 1}, nil, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Closed).To(BeTrue())
			Expect(res.Len()).To(Equal(2))
			Expect(res.Times[1]).To(BeNumerically("~", cfg.Dt, 1e-15))
		})

		It("wraps a controller failure with the failing step", func() {
			calls := 0
			grow := func(x dynamo.State, _ dynamo.Params) (dynamo.State, error) {
				v := float64(calls) * math.Pow(integrators.DefaultSafe2, float64(calls/12))
				calls++
				return dynamo.State{v}, nil
			}

			cfg.Tolerance = 1e-6
			res, err := sim.New(grow, integrators.NewRK4()).RunAdaptive(ctx, dynamo.State{0}, nil, cfg)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrAdaptiveStep))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(1))
			Expect(simErr.Time).To(Equal(0.0))

			var stepErr *integrators.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Tries).To(Equal(integrators.DefaultMaxTry))
		})

		It("wraps a step size that shrinks to nothing", func() {
			cfg.Dt = 1e-322
			cfg.EStop = -1
			res, err := sim.New(still, unitJump{}).RunAdaptive(ctx, dynamo.State{1}, nil, cfg)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrPrecondition))

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(2))
			Expect(simErr.State).To(Equal(dynamo.State{1}))
		})

		It("requires a positive tolerance", func() {
			cfg.Tolerance = 0
			_, err := sim.New(rotation, integrators.NewRK4()).RunAdaptive(ctx, dynamo.State{1, 0}, nil, cfg)
			Expect(err).To(MatchError(dynamo.ErrPrecondition))
		})
	})
})
