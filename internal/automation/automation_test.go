package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
)

var base = beam.Params{E: 200e9, I: 1e-8, L: 1, C: 0.005}

func TestRunSweep_LinearIsProportional(t *testing.T) {
	s := &Sweep{
		Base:   base,
		Param:  SweepP,
		Min:    0,
		Max:    4,
		Steps:  5,
		Models: []beam.Model{beam.Linear, beam.PRB3R},
	}

	pts, err := RunSweep(context.Background(), s)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(pts) != 5 {
		t.Fatalf("points = %d, want 5", len(pts))
	}
	if pts[0].Value != 0 || pts[4].Value != 4 {
		t.Errorf("sweep range = [%v, %v], want [0, 4]", pts[0].Value, pts[4].Value)
	}

	lin := Curve(pts, 0)
	if lin[0] != 0 {
		t.Errorf("zero load should give zero deflection, got %v", lin[0])
	}
	for i := 1; i < len(lin); i++ {
		want := lin[1] * float64(i)
		if d := lin[i] - want; d > 1e-15 || d < -1e-15 {
			t.Errorf("linear curve not proportional at %d: %g vs %g", i, lin[i], want)
		}
	}

	prb := Curve(pts, 1)
	for i := 1; i < len(prb); i++ {
		if prb[i] <= prb[i-1] {
			t.Errorf("PRB-3R curve should increase with load: %v", prb)
		}
	}
}

func TestRunSweep_Moment(t *testing.T) {
	s := &Sweep{Base: base, Param: SweepM0, Min: -1, Max: 1, Steps: 3, Models: []beam.Model{beam.Nonlinear}}
	pts, err := RunSweep(context.Background(), s)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if pts[0].Tips[0].Y >= 0 || pts[2].Tips[0].Y <= 0 {
		t.Errorf("moment sign not reflected in deflection: %+v", pts)
	}
}

func TestRunSweep_OnStep(t *testing.T) {
	var values []float64
	s := &Sweep{
		Base:   base,
		Param:  SweepNP,
		Min:    -1,
		Max:    1,
		Steps:  3,
		Models: []beam.Model{beam.PRB1R, beam.Linear},
		OnStep: func(v float64, results []beam.Result) {
			values = append(values, v)
			if len(results) != 2 || results[0].Model != beam.PRB1R {
				t.Errorf("step %v results = %+v", v, results)
			}
		},
	}
	if _, err := RunSweep(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	if len(values) != 3 || values[0] != -1 || values[2] != 1 {
		t.Errorf("observed values = %v", values)
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []struct {
		name string
		s    Sweep
	}{
		{"one step", Sweep{Base: base, Param: SweepP, Steps: 1, Models: beam.Models}},
		{"no models", Sweep{Base: base, Param: SweepP, Steps: 3}},
		{"bad param", Sweep{Base: base, Param: "E", Steps: 3, Models: beam.Models}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RunSweep(context.Background(), &tt.s); !errors.Is(err, ErrBadSweep) {
				t.Errorf("expected ErrBadSweep, got %v", err)
			}
		})
	}
}

const scenarioYAML = `name: flexures
description: two load cases
steps:
  - name: light
    models: [linear, prb1r]
    loads:
      p: 0.5
  - name: moment
    load_case: moment
    models: [nonlinear]
    loads:
      p: 0
      m0: 0.1
`

func TestScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "flexures" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[0].Beam.E == 0 {
		t.Error("steps should inherit default beam values")
	}

	out, err := RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("results = %d, want 2", len(out))
	}
	if len(out[0].Results) != 2 || out[0].Results[1].Model != beam.PRB1R {
		t.Errorf("step 1 results = %+v", out[0].Results)
	}
	if out[1].LoadCase != beam.PureMoment || out[1].Results[0].TipY <= 0 {
		t.Errorf("step 2 = %+v", out[1])
	}
}

func TestScenario_BadStep(t *testing.T) {
	sc := &Scenario{Steps: []config.Config{*config.DefaultConfig()}}
	sc.Steps[0].Models = []string{"fem"}

	_, err := RunScenario(context.Background(), sc)
	if !errors.Is(err, beam.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}
