package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
	"github.com/san-kum/beamlab/internal/solver"
	"gopkg.in/yaml.v3"
)

var ErrBadSweep = errors.New("automation: invalid sweep")

// Scenario is a named batch of load cases solved one after another.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Steps       []config.Config `yaml:"steps"`
}

// StepResult is the comparison produced by one scenario step.
type StepResult struct {
	Name     string
	Params   beam.Params
	LoadCase beam.LoadCase
	Results  []beam.Result
}

// LoadScenario loads a scenario from a YAML file. Each step starts from
// config.DefaultConfig, so omitted fields keep their defaults.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sc := &Scenario{Name: raw.Name, Description: raw.Description}
	for i := range raw.Steps {
		cfg := config.DefaultConfig()
		if err := raw.Steps[i].Decode(cfg); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		sc.Steps = append(sc.Steps, *cfg)
	}
	return sc, nil
}

// RunScenario executes all steps in order.
func RunScenario(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	out := make([]StepResult, 0, len(sc.Steps))

	for i := range sc.Steps {
		r, err := sc.Steps[i].Resolve()
		if err != nil {
			return out, fmt.Errorf("step %d: %w", i+1, err)
		}

		results, err := solver.Compare(ctx, r.Params, r.Models, r.LoadCase)
		if err != nil {
			return out, fmt.Errorf("step %d run: %w", i+1, err)
		}

		name := r.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		out = append(out, StepResult{Name: name, Params: r.Params, LoadCase: r.LoadCase, Results: results})
	}

	return out, nil
}

// SweepParam names the load that a sweep varies.
type SweepParam string

const (
	SweepP  SweepParam = "p"
	SweepNP SweepParam = "np"
	SweepM0 SweepParam = "m0"
)

// Sweep varies one tip load over [Min, Max] in Steps equal increments. Loads
// are SI.
type Sweep struct {
	Base     beam.Params
	Param    SweepParam
	Min      float64
	Max      float64
	Steps    int
	Models   []beam.Model
	LoadCase beam.LoadCase

	// OnStep, when set, receives the full comparison at every sweep value.
	OnStep func(value float64, results []beam.Result)
}

// TipState is one model's tip at one sweep value.
type TipState struct {
	X, Y, Angle float64
}

// SweepPoint holds every model's tip at one load value, in Sweep.Models order.
type SweepPoint struct {
	Value float64
	Tips  []TipState
}

func (s *Sweep) apply(v float64) (beam.Params, error) {
	p := s.Base
	switch s.Param {
	case SweepP:
		p.P = v
	case SweepNP:
		p.NP = v
	case SweepM0:
		p.M0 = v
	default:
		return p, fmt.Errorf("%w: unknown parameter %q", ErrBadSweep, s.Param)
	}
	return p, nil
}

// RunSweep solves the selected models at every sweep value, giving
// force-deflection curves.
func RunSweep(ctx context.Context, s *Sweep) ([]SweepPoint, error) {
	if s.Steps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 steps, got %d", ErrBadSweep, s.Steps)
	}
	if len(s.Models) == 0 {
		return nil, fmt.Errorf("%w: no models selected", ErrBadSweep)
	}

	step := (s.Max - s.Min) / float64(s.Steps-1)
	out := make([]SweepPoint, 0, s.Steps)

	for i := 0; i < s.Steps; i++ {
		v := s.Min + float64(i)*step
		p, err := s.apply(v)
		if err != nil {
			return nil, err
		}

		results, err := solver.Compare(ctx, p, s.Models, s.LoadCase)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", s.Param, v, err)
		}

		if s.OnStep != nil {
			s.OnStep(v, results)
		}

		pt := SweepPoint{Value: v, Tips: make([]TipState, len(results))}
		for j, r := range results {
			pt.Tips[j] = TipState{X: r.TipX, Y: r.TipY, Angle: r.TipAngle}
		}
		out = append(out, pt)
	}

	return out, nil
}

// Curve extracts model j's tip deflection across a sweep.
func Curve(points []SweepPoint, j int) []float64 {
	ys := make([]float64, len(points))
	for i, pt := range points {
		if j < len(pt.Tips) {
			ys[i] = pt.Tips[j].Y
		}
	}
	return ys
}
