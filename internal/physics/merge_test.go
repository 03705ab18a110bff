package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/suikasim/internal/physics"
)

var _ = Describe("StepCollisions", func() {
	var p physics.Params

	BeforeEach(func() {
		p = physics.DefaultParams()
	})

	DescribeTable("equal tiers below the terminal tier merge into the next tier",
		func(level int) {
			r := p.Radius(level)
			a := p.NewBall(p.Width/2-r/2, 800, level)
			b := p.NewBall(p.Width/2+r/2, 800, level)

			out, rep := physics.StepCollisions([]*physics.Ball{a, b}, p)

			Expect(out).To(HaveLen(1))
			Expect(out[0].Level).To(Equal(level + 1))
			Expect(out[0].X).To(BeNumerically("~", p.Width/2, 1e-9))
			Expect(out[0].Y).To(BeNumerically("~", 800, 1e-9))
			Expect(out).NotTo(ContainElement(a))
			Expect(out).NotTo(ContainElement(b))
			Expect(rep.ScoreDelta).To(Equal(10 << (level + 1)))
		},
		Entry("tier 0", 0),
		Entry("tier 4", 4),
		Entry("tier 9", 9),
	)

	It("never merges or removes terminal-tier balls", func() {
		a := p.NewBall(450, 800, physics.MaxLevel)
		b := p.NewBall(550, 800, physics.MaxLevel)

		out, rep := physics.StepCollisions([]*physics.Ball{a, b}, p)

		Expect(out).To(ConsistOf(a, b))
		Expect(rep.Merges).To(BeEmpty())
		Expect(rep.ScoreDelta).To(BeZero())
	})

	It("keeps score deltas non-negative and purges every consumed ball", func() {
		rng := rand.New(rand.NewSource(7))
		for round := 0; round < 50; round++ {
			balls := make([]*physics.Ball, 0, 12)
			for i := 0; i < 12; i++ {
				b := p.NewBall(rng.Float64()*p.Width, rng.Float64()*p.Height, rng.Intn(4))
				b.VX = rng.Float64()*10 - 5
				b.VY = rng.Float64()*10 - 5
				balls = append(balls, b)
			}

			out, rep := physics.StepCollisions(balls, p)

			Expect(rep.ScoreDelta).To(BeNumerically(">=", 0))
			sum := 0
			for _, m := range rep.Merges {
				sum += physics.MergePoints(m.Level)
			}
			Expect(rep.ScoreDelta).To(Equal(sum))
			Expect(out).To(HaveLen(12 - len(rep.Merges)))
			for _, b := range out {
				Expect(b).NotTo(BeNil())
				Expect(b.Consumed).To(BeFalse())
			}
		}
	})

	Context("when a ball already merged this pass", func() {
		var balls []*physics.Ball

		BeforeEach(func() {
			balls = []*physics.Ball{
				p.NewBall(400, 700, 0),
				p.NewBall(450, 700, 0),
				p.NewBall(500, 700, 0),
			}
		})

		It("does not merge it twice", func() {
			out, rep := physics.StepCollisions(balls, p)
			Expect(rep.Merges).To(HaveLen(1))
			Expect(out).To(HaveLen(2))
		})

		It("leaves the third ball alone when consumed balls are inert", func() {
			p.ConsumedInert = true
			third := balls[2]
			physics.StepCollisions(balls, p)
			Expect(third.X).To(Equal(500.0))
		})
	})
})
