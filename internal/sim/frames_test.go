package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/sim"
)

var _ = Describe("FrameIndices", func() {
	DescribeTable("frame ends",
		func(n, skip int, want []int) {
			Expect(sim.FrameIndices(n, skip)).To(Equal(want))
		},
		Entry("partial last frame", 25, 10, []int{9, 19, 24}),
		Entry("exact multiple", 20, 10, []int{9, 19}),
		Entry("skip larger than n", 3, 10, []int{2}),
		Entry("skip of one", 3, 1, []int{0, 1, 2}),
		Entry("non-positive skip treated as one", 2, 0, []int{0, 1}),
	)

	It("is empty for an empty trajectory", func() {
		Expect(sim.FrameIndices(0, 10)).To(BeEmpty())
	})
})

var _ = Describe("PointStream", func() {
	var res *sim.Result

	BeforeEach(func() {
		res = &sim.Result{States: []dynamo.State{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}}
	})

	It("projects the chosen components", func() {
		s := sim.NewPointStream(res, 2, 0)
		p, ok := s.Next()
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(dynamo.Point{X: 3, Y: 1}))
	})

	It("reads components outside the state as zero", func() {
		s := sim.NewPointStream(res, -1, 3)
		p, ok := s.Next()
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(dynamo.Point{}))
		Expect(res.Column(-1)).To(Equal([]float64{0, 0, 0}))
		Expect(res.Column(3)).To(Equal([]float64{0, 0, 0}))
	})

	It("is finite and does not restart", func() {
		s := sim.NewPointStream(res, 0, 1)
		Expect(s.Take(2)).To(HaveLen(2))
		Expect(s.Remaining()).To(Equal(1))
		Expect(s.Take(5)).To(Equal([]dynamo.Point{{X: 7, Y: 8}}))

		_, ok := s.Next()
		Expect(ok).To(BeFalse())
		Expect(s.Take(1)).To(BeEmpty())
	})
})
