package solver

import (
	"math"

	"github.com/san-kum/beamlab/internal/beam"
)

const (
	NewtonIterations = 30
	NewtonTolerance  = 1e-8
	newtonDamping    = 0.8
)

// PRB-1R empirical constants per load case.
const (
	ForceGamma  = 0.8517
	ForceKTheta = 2.6706
	ForceCTheta = 1.2407

	CombinedKTheta   = 2.65
	CombinedCTheta   = 1.24
	CombinedGammaMin = 0.70
	CombinedGammaMax = 0.95

	MomentGamma  = 0.7346
	MomentKTheta = 1.5164
	MomentCTheta = 1.0
)

// combinedBreak splits the two linear fits of gamma over n = nP/P.
const combinedBreak = -1.83

// CombinedGamma returns the characteristic radius for load ratio n,
// clamped to [CombinedGammaMin, CombinedGammaMax].
func CombinedGamma(n float64) float64 {
	var g float64
	if n > combinedBreak {
		g = 0.852144 - 0.0182867*n
	} else {
		g = 0.912364 + 0.0145928*n
	}
	return math.Min(CombinedGammaMax, math.Max(CombinedGammaMin, g))
}

// LoadRatio returns nP/P, or 0 when P is zero.
func LoadRatio(p beam.Params) float64 {
	if p.P == 0 {
		return 0
	}
	return p.NP / p.P
}

// PRB1RConstants returns gamma, K_theta and c_theta for a load case.
func PRB1RConstants(lc beam.LoadCase, p beam.Params) (gamma, kTheta, cTheta float64) {
	switch lc {
	case beam.CombinedForce:
		return CombinedGamma(LoadRatio(p)), CombinedKTheta, CombinedCTheta
	case beam.PureMoment:
		return MomentGamma, MomentKTheta, MomentCTheta
	default:
		return ForceGamma, ForceKTheta, ForceCTheta
	}
}

// PRB1R models the beam as a rigid stub of length (1-gamma)L and a rigid
// link of length gamma*L joined by one torsional spring. The pivot angle
// balances spring and load moments.
func PRB1R(p beam.Params, lc beam.LoadCase) beam.Result {
	ei := p.EI()
	if ei == 0 {
		return beam.Empty(beam.PRB1R)
	}

	gamma, kTheta, cTheta := PRB1RConstants(lc, p)
	k := gamma * kTheta * ei / p.L
	r := gamma * p.L

	residual := func(th float64) float64 {
		return k*th - (p.P*r*math.Cos(th) + p.NP*r*math.Sin(th) + p.M0)
	}
	slope := func(th float64) float64 {
		return k + p.P*r*math.Sin(th) - p.NP*r*math.Cos(th)
	}

	theta := 0.0
	conv := &beam.Convergence{}
	for iter := 1; iter <= NewtonIterations; iter++ {
		conv.Iterations = iter
		d := slope(theta)
		if d == 0 {
			break
		}
		step := newtonDamping * residual(theta) / d
		theta -= step
		if math.Abs(step) < NewtonTolerance {
			conv.Converged = true
			break
		}
	}
	conv.Residual = math.Abs(residual(theta))

	pivot := beam.Point{X: p.L * (1 - gamma)}
	tip := beam.Point{X: pivot.X + r*math.Cos(theta), Y: r * math.Sin(theta)}

	res := beam.NewResult(beam.PRB1R)
	res.Points = []beam.Point{{}, pivot, tip}
	res.TipX, res.TipY = tip.X, tip.Y
	res.TipAngle = cTheta * theta
	res.Diagnostics = beam.PRB1RDiagnostics{
		LoadCase: lc,
		Gamma:    gamma,
		KTheta:   kTheta,
		CTheta:   cTheta,
		K:        k,
	}
	res.Convergence = conv
	return res
}
