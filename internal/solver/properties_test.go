package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/solver"
)

var springSteel = beam.Params{E: 206.8e9, I: 5.09e-12, L: 0.508, P: 2.224, C: 3.97e-4}

func solveAll(p beam.Params, lc beam.LoadCase) map[beam.Model]beam.Result {
	out := make(map[beam.Model]beam.Result, len(beam.Models))
	for _, m := range beam.Models {
		r, err := solver.Solve(m, p, lc)
		Expect(err).NotTo(HaveOccurred())
		out[m] = r
	}
	return out
}

var _ = Describe("cantilever models", func() {
	DescribeTable("no load leaves the beam straight",
		func(e, i float64) {
			p := beam.Params{E: e, I: i, L: 0.75}
			for m, r := range solveAll(p, beam.PureForce) {
				Expect(r.TipX).To(BeNumerically("~", p.L, 1e-12), m.String())
				Expect(r.TipY).To(BeZero(), m.String())
				Expect(r.TipAngle).To(BeZero(), m.String())
				for _, pt := range r.Points {
					Expect(pt.Y).To(BeZero(), m.String())
				}
			}
		},
		Entry("steel", 200e9, 1e-8),
		Entry("polymer", 2.5e9, 3e-10),
		Entry("stiff", 400e9, 1e-4),
	)

	It("returns the empty sentinel for zero stiffness", func() {
		p := springSteel
		p.I = 0
		for m, r := range solveAll(p, beam.PureForce) {
			Expect(r.Points).To(BeEmpty(), m.String())
			Expect([]float64{r.TipX, r.TipY, r.TipAngle, r.MaxStress}).To(HaveEach(BeZero()), m.String())
		}
	})

	It("produces the documented polyline sizes", func() {
		got := solveAll(springSteel, beam.PureForce)
		Expect(got[beam.Linear].Points).To(HaveLen(51))
		Expect(len(got[beam.Nonlinear].Points)).To(BeNumerically("<=", 101))
		Expect(got[beam.PRB1R].Points).To(HaveLen(3))
		Expect(got[beam.PRB3R].Points).To(HaveLen(5))
	})

	It("is deterministic", func() {
		p := springSteel
		p.NP, p.M0 = -1.2, 0.05
		first := solveAll(p, beam.CombinedForce)
		second := solveAll(p, beam.CombinedForce)
		for m := range first {
			Expect(second[m].Points).To(Equal(first[m].Points), m.String())
			Expect(math.Float64bits(second[m].TipAngle)).To(Equal(math.Float64bits(first[m].TipAngle)))
		}
	})

	Describe("linear closed form", func() {
		It("matches PL^3/3EI and PL^2/2EI", func() {
			p := beam.Params{E: 200e9, I: 1e-8, L: 1, P: 1}
			r := solver.Linear(p)
			Expect(r.TipY).To(BeNumerically("~", 1.0/(3*200e9*1e-8), 1e-15))
			Expect(r.TipAngle).To(BeNumerically("~", 2.5e-4, 1e-15))
		})
	})

	Describe("small deflection", func() {
		It("agrees with the linear model within 1%", func() {
			p := beam.Params{E: 206.8e9, I: 5.09e-12, L: 0.508, P: 0.05}
			lin, nl := solver.Linear(p), solver.Nonlinear(p)
			Expect(lin.TipY / p.L).To(BeNumerically("<", 0.01))
			Expect(math.Abs(nl.TipY-lin.TipY) / lin.TipY).To(BeNumerically("<", 0.01))
			Expect(math.Abs(nl.TipAngle-lin.TipAngle) / lin.TipAngle).To(BeNumerically("<", 0.01))
		})
	})

	Describe("elastica", func() {
		It("preserves arc length", func() {
			r := solver.Nonlinear(springSteel)
			Expect(beam.ChordLength(r.Points)).To(BeNumerically("~", springSteel.L, springSteel.L*1e-3))
		})
	})

	Describe("PRB-1R combined load", func() {
		It("keeps gamma in range across the load-ratio sweep", func() {
			for n := -10.0; n <= 10.0; n += 0.25 {
				p := springSteel
				p.NP = n * p.P
				d := solver.PRB1R(p, beam.CombinedForce).Diagnostics.(beam.PRB1RDiagnostics)
				Expect(d.Gamma).To(BeNumerically(">=", 0.70))
				Expect(d.Gamma).To(BeNumerically("<=", 0.95))
			}
		})
	})

	Describe("PRB-3R constants", func() {
		It("has link ratios summing to one", func() {
			r := solver.LinkRatios
			Expect(r[0] + r[1] + r[2] + r[3]).To(Equal(1.0))
		})
	})

	Describe("spring steel scenario", func() {
		var got map[beam.Model]beam.Result

		BeforeEach(func() {
			got = solveAll(springSteel, beam.PureForce)
		})

		It("keeps every model within the same order of magnitude", func() {
			ref := got[beam.Linear].TipY
			Expect(ref).To(BeNumerically("~", 0.0923, 1e-3))
			for m, r := range got {
				Expect(r.TipY).To(BeNumerically(">", ref/10), m.String())
				Expect(r.TipY).To(BeNumerically("<", ref*10), m.String())
			}
		})

		It("shows the elastica stiffening at moderate deflection", func() {
			lin, nl := got[beam.Linear].TipY, got[beam.Nonlinear].TipY
			diff := (lin - nl) / lin
			Expect(diff).To(BeNumerically(">", 0.005))
			Expect(diff).To(BeNumerically("<", 0.15))
		})
	})
})
