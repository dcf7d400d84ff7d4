package solver

import (
	"math"

	"github.com/san-kum/beamlab/internal/beam"
)

const (
	RelaxIterations = 150
	relaxFactor     = 0.1
	relaxTolerance  = 1e-8
)

// Su link-length ratios g0..g3 and joint stiffness coefficients.
var (
	LinkRatios = [4]float64{0.10, 0.35, 0.40, 0.15}
	JointCoeff = [3]float64{3.51, 2.99, 2.58}
)

// chain returns the origin, the three joints and the tip for rotations t.
func chain(l float64, t [3]float64) [5]beam.Point {
	var pts [5]beam.Point
	pts[1] = beam.Point{X: LinkRatios[0] * l}
	angle := 0.0
	for i := 0; i < 3; i++ {
		angle += t[i]
		seg := LinkRatios[i+1] * l
		pts[i+2] = beam.Point{
			X: pts[i+1].X + seg*math.Cos(angle),
			Y: pts[i+1].Y + seg*math.Sin(angle),
		}
	}
	return pts
}

// PRB3R models the beam as four rigid links with torsional springs at the
// three internal joints. Joint rotations relax toward the load moment
// divided by joint stiffness for a fixed number of sweeps.
func PRB3R(p beam.Params) beam.Result {
	ei := p.EI()
	if ei == 0 {
		return beam.Empty(beam.PRB3R)
	}

	var k [3]float64
	for i, c := range JointCoeff {
		k[i] = c * ei / p.L
	}

	var t [3]float64
	var lastStep float64
	for iter := 0; iter < RelaxIterations; iter++ {
		pts := chain(p.L, t)
		tip := pts[4]

		var target [3]float64
		for i := 0; i < 3; i++ {
			j := pts[i+1]
			m := p.P*(tip.X-j.X) + p.NP*(tip.Y-j.Y) + p.M0
			target[i] = m / k[i]
		}

		lastStep = 0
		for i := 0; i < 3; i++ {
			step := relaxFactor * (target[i] - t[i])
			t[i] += step
			lastStep = math.Max(lastStep, math.Abs(step))
		}
	}

	pts := chain(p.L, t)
	res := beam.NewResult(beam.PRB3R)
	res.Points = pts[:]
	res.TipX, res.TipY = pts[4].X, pts[4].Y
	res.TipAngle = t[0] + t[1] + t[2]
	res.Diagnostics = beam.PRB3RDiagnostics{
		Ratios:       LinkRatios,
		Coefficients: JointCoeff,
		K:            k,
	}
	res.Convergence = &beam.Convergence{
		Iterations: RelaxIterations,
		Residual:   lastStep,
		Converged:  lastStep < relaxTolerance,
	}
	return res
}
