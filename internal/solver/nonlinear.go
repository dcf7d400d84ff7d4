package solver

import (
	"math"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/integrators"
	"github.com/san-kum/beamlab/internal/ode"
)

const (
	ElasticaSteps      = 100
	ShootingIterations = 15
	ShootingTolerance  = 1e-6 // m
	shootingDamping    = 0.5
)

// elastica is the inextensible beam parametrized by arc length s with state
// (x, y, theta). Loads act at the fixed lab-frame point (a, b).
type elastica struct {
	ei, p, np, m0 float64
	a, b          float64
}

func (e *elastica) moment(x, y float64) float64 {
	return e.p*(e.a-x) + e.np*(e.b-y) + e.m0
}

func (e *elastica) Derive(x ode.State, s float64) ode.State {
	return ode.State{
		math.Cos(x[2]),
		math.Sin(x[2]),
		e.moment(x[0], x[1]) / e.ei,
	}
}

func (e *elastica) Dim() int { return 3 }

// Nonlinear solves the large-deflection elastica under dead tip loads. The
// unknown loaded tip position is found by damped fixed-point shooting.
func Nonlinear(p beam.Params) beam.Result {
	ei := p.EI()
	if ei == 0 {
		return beam.Empty(beam.Nonlinear)
	}

	sys := &elastica{ei: ei, p: p.P, np: p.NP, m0: p.M0, a: p.L}
	rk := integrators.NewRK4()
	x0 := ode.State{0, 0, 0}

	var traj []ode.State
	conv := &beam.Convergence{}
	// (a, b) used for the returned trajectory
	var loadA, loadB float64

	for iter := 1; iter <= ShootingIterations; iter++ {
		traj = integrators.Integrate(rk, sys, x0, 0, p.L, ElasticaSteps)
		loadA, loadB = sys.a, sys.b

		tip := traj[len(traj)-1]
		rx, ry := tip[0]-sys.a, tip[1]-sys.b

		conv.Iterations = iter
		conv.Residual = math.Max(math.Abs(rx), math.Abs(ry))
		if math.Abs(rx) < ShootingTolerance && math.Abs(ry) < ShootingTolerance {
			conv.Converged = true
			break
		}

		sys.a += shootingDamping * rx
		sys.b += shootingDamping * ry
	}

	res := beam.NewResult(beam.Nonlinear)
	res.Points = make([]beam.Point, len(traj))
	for i, st := range traj {
		res.Points[i] = beam.Point{X: st[0], Y: st[1]}
	}

	tip := traj[len(traj)-1]
	res.TipX, res.TipY, res.TipAngle = tip[0], tip[1], tip[2]

	// the root carries the largest moment arm of the converged load point
	root := p.P*loadA + p.NP*loadB + p.M0
	res.MaxStress = math.Abs(root) * p.C / p.I
	res.Convergence = conv
	return res
}
