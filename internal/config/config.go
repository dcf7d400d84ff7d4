package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/units"
	"gopkg.in/yaml.v3"
)

const (
	DefaultE      = 200e9
	DefaultWidth  = 0.02
	DefaultHeight = 0.002
	DefaultLength = 0.5
	DefaultP      = 1.0
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Config is one load case as written in a YAML file, in the units named by Units.
type Config struct {
	Name     string      `yaml:"name"`
	Units    string      `yaml:"units"`
	LoadCase string      `yaml:"load_case"`
	Models   []string    `yaml:"models"`
	Beam     BeamConfig  `yaml:"beam"`
	Loads    LoadsConfig `yaml:"loads"`
}

// BeamConfig gives either a rectangular section (width, height) or an
// explicit I. Zero c and area fall back to the rectangle's values.
type BeamConfig struct {
	E      float64 `yaml:"e"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	I      float64 `yaml:"i"`
	C      float64 `yaml:"c"`
	Area   float64 `yaml:"area"`
	Length float64 `yaml:"length"`
}

type LoadsConfig struct {
	P  float64 `yaml:"p"`
	NP float64 `yaml:"np"`
	M0 float64 `yaml:"m0"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Units:    "si",
		LoadCase: "force",
		Models:   []string{"linear", "nonlinear", "prb1r", "prb3r"},
		Beam: BeamConfig{
			E:      DefaultE,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Length: DefaultLength,
		},
		Loads: LoadsConfig{P: DefaultP},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOnto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnto decodes the YAML file over cfg, keeping fields the file omits.
func LoadOnto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Parse decodes YAML on top of DefaultConfig.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) System() (units.System, error) {
	return units.ParseSystem(c.Units)
}

// Params converts the file's values to SI and validates them.
func (c *Config) Params() (beam.Params, error) {
	sys, err := c.System()
	if err != nil {
		return beam.Params{}, err
	}

	section := beam.Rectangle{Width: sys.Length(c.Beam.Width), Height: sys.Length(c.Beam.Height)}

	p := beam.Params{
		E:  sys.Modulus(c.Beam.E),
		I:  section.Inertia(),
		L:  sys.Length(c.Beam.Length),
		P:  sys.Force(c.Loads.P),
		NP: sys.Force(c.Loads.NP),
		M0: sys.Moment(c.Loads.M0),
		C:  section.Extreme(),
		A:  section.Area(),
	}
	if c.Beam.I > 0 {
		p.I = sys.Inertia(c.Beam.I)
	}
	if c.Beam.C > 0 {
		p.C = sys.Length(c.Beam.C)
	}
	if c.Beam.Area > 0 {
		p.A = sys.Area(c.Beam.Area)
	}

	if err := p.Validate(); err != nil {
		return beam.Params{}, fmt.Errorf("config %s: %w", c.Name, err)
	}
	return p, nil
}

// SelectedModels parses Models; an empty list selects every model.
func (c *Config) SelectedModels() ([]beam.Model, error) {
	if len(c.Models) == 0 {
		return beam.Models, nil
	}
	return beam.ParseModels(c.Models)
}

func (c *Config) SelectedLoadCase() (beam.LoadCase, error) {
	return beam.ParseLoadCase(c.LoadCase)
}

// Resolved is a config reduced to solver inputs.
type Resolved struct {
	Name     string
	System   units.System
	Params   beam.Params
	Models   []beam.Model
	LoadCase beam.LoadCase
}

func (c *Config) Resolve() (*Resolved, error) {
	sys, err := c.System()
	if err != nil {
		return nil, err
	}
	p, err := c.Params()
	if err != nil {
		return nil, err
	}
	models, err := c.SelectedModels()
	if err != nil {
		return nil, err
	}
	lc, err := c.SelectedLoadCase()
	if err != nil {
		return nil, err
	}
	return &Resolved{Name: c.Name, System: sys, Params: p, Models: models, LoadCase: lc}, nil
}
