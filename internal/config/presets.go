package config

import (
	"fmt"
	"sort"
)

var allModels = []string{"linear", "nonlinear", "prb1r", "prb3r"}

var Presets = map[string]*Config{
	// 1.25 x 1/32 in spring steel strip, 20 in long, 0.5 lbf at the tip
	"spring-steel": {
		Name: "spring-steel", Units: "imperial", LoadCase: "force", Models: allModels,
		Beam:  BeamConfig{E: 30e6, Width: 1.25, Height: 0.03125, I: 1.2228e-5, Length: 20},
		Loads: LoadsConfig{P: 0.5},
	},
	"steel-bar": {
		Name: "steel-bar", Units: "si", LoadCase: "force", Models: allModels,
		Beam:  BeamConfig{E: 200e9, I: 1e-8, C: 0.005, Length: 1},
		Loads: LoadsConfig{P: 1},
	},
	"polymer-flexure": {
		Name: "polymer-flexure", Units: "si", LoadCase: "combined", Models: allModels,
		Beam:  BeamConfig{E: 2.4e9, Width: 0.01, Height: 0.001, Length: 0.08},
		Loads: LoadsConfig{P: 0.15, NP: -0.1},
	},
	"end-moment": {
		Name: "end-moment", Units: "si", LoadCase: "moment", Models: allModels,
		Beam:  BeamConfig{E: 70e9, Width: 0.02, Height: 0.0015, Length: 0.3},
		Loads: LoadsConfig{M0: 0.4},
	},
	"unloaded": {
		Name: "unloaded", Units: "si", LoadCase: "force", Models: allModels,
		Beam: BeamConfig{E: DefaultE, Width: DefaultWidth, Height: DefaultHeight, Length: DefaultLength},
	},
}

// GetPreset returns a copy of the named preset so callers may edit it.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := *p
	cfg.Models = append([]string(nil), p.Models...)
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
