package solver

import (
	"math"

	"github.com/san-kum/beamlab/internal/beam"
)

// LinearStations is the number of equally spaced samples in a Linear result.
const LinearStations = 51

// Linear superposes the small-deflection tip force and tip moment solutions.
// The tip never moves horizontally.
func Linear(p beam.Params) beam.Result {
	ei := p.EI()
	if ei == 0 {
		return beam.Empty(beam.Linear)
	}

	res := beam.NewResult(beam.Linear)
	res.Points = make([]beam.Point, LinearStations)
	for i := range res.Points {
		x := p.L * float64(i) / float64(LinearStations-1)
		res.Points[i] = beam.Point{X: x, Y: linearDeflection(p, ei, x)}
	}

	res.TipX = p.L
	res.TipY = linearDeflection(p, ei, p.L)
	res.TipAngle = p.P*p.L*p.L/(2*ei) + p.M0*p.L/ei
	res.MaxStress = math.Abs(p.P*p.L+p.M0) * p.C / p.I
	return res
}

func linearDeflection(p beam.Params, ei, x float64) float64 {
	return p.P*x*x/(6*ei)*(3*p.L-x) + p.M0*x*x/(2*ei)
}
