package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/units"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	r, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("default config does not resolve: %v", err)
	}
	if len(r.Models) != 4 {
		t.Errorf("expected all models, got %v", r.Models)
	}
	if r.LoadCase != beam.PureForce {
		t.Errorf("expected force load case, got %v", r.LoadCase)
	}
	if r.Params.I <= 0 || r.Params.C <= 0 || r.Params.A <= 0 {
		t.Errorf("section values not derived: %+v", r.Params)
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("name: tip\nloads:\n  m0: 0.25\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Name != "tip" || cfg.Loads.M0 != 0.25 {
		t.Errorf("values not applied: %+v", cfg)
	}
	if cfg.Beam.E != DefaultE || cfg.Loads.P != DefaultP {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	cfg, _ := GetPreset("polymer-flexure")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Beam != cfg.Beam || got.Loads != cfg.Loads || got.LoadCase != cfg.LoadCase {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadOnto_KeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loads.yaml")
	if err := os.WriteFile(path, []byte("loads:\n  np: -0.05\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, _ := GetPreset("polymer-flexure")

	if err := LoadOnto(path, cfg); err != nil {
		t.Fatalf("load onto: %v", err)
	}
	if cfg.Loads.NP != -0.05 {
		t.Errorf("NP = %v, want -0.05", cfg.Loads.NP)
	}
	if cfg.Name != "polymer-flexure" || cfg.Loads.P != 0.15 || cfg.Beam.E != 2.4e9 {
		t.Errorf("base values lost: %+v", cfg)
	}
}

func TestParams_Imperial(t *testing.T) {
	cfg, err := GetPreset("spring-steel")
	if err != nil {
		t.Fatal(err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"E", p.E, 206.8e9},
		{"L", p.L, 0.508},
		{"P", p.P, 2.224},
		{"I", p.I, 5.09e-12},
		{"c", p.C, 3.97e-4},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want)/c.want > 2e-3 {
			t.Errorf("%s = %g, want ~%g", c.name, c.got, c.want)
		}
	}
}

func TestParams_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Beam.Length = 0
	if _, err := cfg.Params(); !errors.Is(err, beam.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Units = "furlongs"
	if _, err := cfg.Params(); !errors.Is(err, units.ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestSelectedModels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models = nil
	models, err := cfg.SelectedModels()
	if err != nil || len(models) != len(beam.Models) {
		t.Errorf("empty list should select all models, got %v, %v", models, err)
	}

	cfg.Models = []string{"prb3r", "bogus"}
	if _, err := cfg.SelectedModels(); !errors.Is(err, beam.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("steel-bar")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	cfg.Models[0] = "changed"
	again, _ := GetPreset("steel-bar")
	if again.Models[0] == "changed" {
		t.Error("GetPreset should return an independent copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, n := range names {
		cfg, _ := GetPreset(n)
		if _, err := cfg.Resolve(); err != nil {
			t.Errorf("preset %s does not resolve: %v", n, err)
		}
	}
}
