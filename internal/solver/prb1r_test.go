package solver

import (
	"math"
	"testing"

	"github.com/san-kum/beamlab/internal/beam"
)

func TestCombinedGamma_Clamped(t *testing.T) {
	for n := -10.0; n <= 10.0; n += 0.01 {
		g := CombinedGamma(n)
		if g < CombinedGammaMin || g > CombinedGammaMax {
			t.Fatalf("CombinedGamma(%v) = %v, outside [%v, %v]", n, g, CombinedGammaMin, CombinedGammaMax)
		}
	}
}

func TestCombinedGamma_Branches(t *testing.T) {
	tests := []struct {
		n    float64
		want float64
	}{
		{0, 0.852144},
		{-1.83, 0.852144 - 0.0182867*(-1.83)},
		{-1.831, 0.912364 + 0.0145928*(-1.831)},
		{-3, 0.912364 + 0.0145928*(-3)},
	}
	for _, tt := range tests {
		if got := CombinedGamma(tt.n); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("CombinedGamma(%v) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCombinedGamma_NearlyContinuousAtBreak(t *testing.T) {
	lo := CombinedGamma(combinedBreak)
	hi := CombinedGamma(combinedBreak + 1e-9)
	if math.Abs(lo-hi) > 1e-4 {
		t.Errorf("gamma jumps at n=%v: %v vs %v", combinedBreak, lo, hi)
	}
}

func TestLoadRatio_ZeroForce(t *testing.T) {
	p := beam.Params{P: 0, NP: 5}
	if got := LoadRatio(p); got != 0 {
		t.Errorf("LoadRatio with P=0 = %v, want 0", got)
	}
	p.P = 2
	if got := LoadRatio(p); got != 2.5 {
		t.Errorf("LoadRatio = %v, want 2.5", got)
	}
}

func TestPRB1RConstants(t *testing.T) {
	p := steelBar()
	tests := []struct {
		lc                  beam.LoadCase
		gamma, kTheta, cThe float64
	}{
		{beam.PureForce, 0.8517, 2.6706, 1.2407},
		{beam.PureMoment, 0.7346, 1.5164, 1.0},
		{beam.CombinedForce, CombinedGamma(0), 2.65, 1.24},
	}
	for _, tt := range tests {
		g, k, c := PRB1RConstants(tt.lc, p)
		if g != tt.gamma || k != tt.kTheta || c != tt.cThe {
			t.Errorf("%v: got (%v, %v, %v), want (%v, %v, %v)", tt.lc, g, k, c, tt.gamma, tt.kTheta, tt.cThe)
		}
	}
}

func TestPRB1R_PureMoment(t *testing.T) {
	p := steelBar()
	p.P = 0
	p.M0 = 0.3
	r := PRB1R(p, beam.PureMoment)

	d, ok := r.Diagnostics.(beam.PRB1RDiagnostics)
	if !ok {
		t.Fatalf("diagnostics = %T, want PRB1RDiagnostics", r.Diagnostics)
	}
	wantK := MomentGamma * MomentKTheta * p.EI() / p.L
	if relErr(d.K, wantK) > 1e-12 {
		t.Errorf("K = %v, want %v", d.K, wantK)
	}

	// spring balance is linear: theta = M0 / K
	theta := p.M0 / wantK
	if relErr(r.TipAngle, MomentCTheta*theta) > 1e-4 {
		t.Errorf("TipAngle = %v, want %v", r.TipAngle, MomentCTheta*theta)
	}
	if !r.Convergence.Converged {
		t.Errorf("expected convergence: %+v", r.Convergence)
	}
}

func TestPRB1R_Geometry(t *testing.T) {
	p := beam.Params{E: 206.8e9, I: 5.09e-12, L: 0.508, P: 2.224}
	r := PRB1R(p, beam.PureForce)

	if len(r.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(r.Points))
	}
	pivot := r.Points[1]
	if math.Abs(pivot.X-p.L*(1-ForceGamma)) > 1e-15 || pivot.Y != 0 {
		t.Errorf("pivot = %v, want (%v, 0)", pivot, p.L*(1-ForceGamma))
	}

	// the rigid link keeps its length gamma*L
	link := math.Hypot(r.TipX-pivot.X, r.TipY-pivot.Y)
	if relErr(link, ForceGamma*p.L) > 1e-12 {
		t.Errorf("link length = %v, want %v", link, ForceGamma*p.L)
	}

	// tip angle is the corrected pivot rotation
	theta := math.Atan2(r.TipY-pivot.Y, r.TipX-pivot.X)
	if relErr(r.TipAngle, ForceCTheta*theta) > 1e-9 {
		t.Errorf("TipAngle = %v, want c_theta*theta = %v", r.TipAngle, ForceCTheta*theta)
	}

	// equilibrium holds at the returned angle
	d := r.Diagnostics.(beam.PRB1RDiagnostics)
	gl := d.Gamma * p.L
	if f := d.K*theta - p.P*gl*math.Cos(theta); math.Abs(f) > 1e-6 {
		t.Errorf("moment residual = %g", f)
	}
}

func TestPRB1R_CombinedUsesLoadRatio(t *testing.T) {
	p := steelBar()
	p.NP = -3 // n = -3, below the break
	r := PRB1R(p, beam.CombinedForce)
	d := r.Diagnostics.(beam.PRB1RDiagnostics)
	if d.Gamma != CombinedGamma(-3) {
		t.Errorf("gamma = %v, want %v", d.Gamma, CombinedGamma(-3))
	}
	if d.LoadCase != beam.CombinedForce {
		t.Errorf("load case = %v, want combined", d.LoadCase)
	}
}

func TestPRB1R_ZeroStiffness(t *testing.T) {
	p := steelBar()
	p.I = 0
	if r := PRB1R(p, beam.PureForce); !r.IsEmpty() {
		t.Errorf("expected empty result, got %+v", r)
	}
}
