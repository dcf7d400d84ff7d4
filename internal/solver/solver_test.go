package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/beamlab/internal/beam"
)

func TestSolve_UnknownModel(t *testing.T) {
	_, err := Solve(beam.Model(9), steelBar(), beam.PureForce)
	if !errors.Is(err, beam.ErrUnknownModel) {
		t.Errorf("Solve(9) error = %v, want ErrUnknownModel", err)
	}
}

func TestSolve_Dispatch(t *testing.T) {
	for _, m := range beam.Models {
		r, err := Solve(m, steelBar(), beam.PureForce)
		if err != nil {
			t.Fatalf("Solve(%v): %v", m, err)
		}
		if r.Model != m || r.Label != m.Style().Label || r.Color != m.Style().Color {
			t.Errorf("Solve(%v) metadata = %v/%q/%q", m, r.Model, r.Label, r.Color)
		}
	}
}

func TestCompare_PreservesOrder(t *testing.T) {
	models := []beam.Model{beam.PRB3R, beam.Linear, beam.Nonlinear, beam.PRB1R}
	results, err := Compare(context.Background(), steelBar(), models, beam.PureForce)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(results) != len(models) {
		t.Fatalf("results = %d, want %d", len(results), len(models))
	}
	for i, m := range models {
		if results[i].Model != m {
			t.Errorf("results[%d] = %v, want %v", i, results[i].Model, m)
		}
	}
}

func TestCompare_MatchesSequential(t *testing.T) {
	p := beam.Params{E: 206.8e9, I: 5.09e-12, L: 0.508, P: 2.224, NP: 0.5, M0: 0.01}
	results, err := Compare(context.Background(), p, beam.Models, beam.CombinedForce)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	for _, got := range results {
		want, _ := Solve(got.Model, p, beam.CombinedForce)
		if got.TipX != want.TipX || got.TipY != want.TipY || got.TipAngle != want.TipAngle {
			t.Errorf("%v: concurrent %v,%v differs from sequential %v,%v", got.Model, got.TipX, got.TipY, want.TipX, want.TipY)
		}
	}
}

func TestCompare_UnknownModel(t *testing.T) {
	_, err := Compare(context.Background(), steelBar(), []beam.Model{beam.Linear, beam.Model(7)}, beam.PureForce)
	if !errors.Is(err, beam.ErrUnknownModel) {
		t.Errorf("Compare error = %v, want ErrUnknownModel", err)
	}
}

func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compare(ctx, steelBar(), beam.Models, beam.PureForce); !errors.Is(err, context.Canceled) {
		t.Errorf("Compare error = %v, want context.Canceled", err)
	}
}

func TestFindAndRelativeTipError(t *testing.T) {
	results := []beam.Result{Linear(steelBar()), Nonlinear(steelBar())}

	lin, ok := Find(results, beam.Linear)
	if !ok {
		t.Fatal("Find(linear) failed")
	}
	if _, ok := Find(results, beam.PRB3R); ok {
		t.Error("Find(prb3r) should fail")
	}

	nl, _ := Find(results, beam.Nonlinear)
	if e := RelativeTipError(nl, lin); e > 0.01 || e < -0.01 {
		t.Errorf("RelativeTipError = %v", e)
	}
	if e := RelativeTipError(nl, beam.Result{}); e != 0 {
		t.Errorf("RelativeTipError against zero = %v, want 0", e)
	}
}
