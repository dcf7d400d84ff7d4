package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/solver"
	"github.com/san-kum/beamlab/internal/units"
)

// scaleStep is the multiplicative step for quantities that must stay positive.
const scaleStep = 1.1

type slider struct {
	name  string
	field func(p *beam.Params) *float64
	step  float64 // additive; 0 means multiplicative
}

// Explorer is a Bubble Tea model that re-solves every model whenever a
// load or beam property changes.
type Explorer struct {
	initial   beam.Params
	initialLC beam.LoadCase
	params    beam.Params
	lc        beam.LoadCase
	models    []beam.Model
	sys       units.System
	sliders   []slider
	cursor    int
	results   []beam.Result
	err       error
	width     int
	height    int
}

// NewExplorer starts from p. Load sliders step by a tenth of the initial
// value, or by a load that bends the beam about 1% of L when it starts at 0.
func NewExplorer(p beam.Params, lc beam.LoadCase, models []beam.Model, sys units.System) *Explorer {
	if len(models) == 0 {
		models = beam.Models
	}
	ei, l := p.EI(), p.L
	forceStep := loadStep(p.P, 0.03*ei/(l*l))
	e := &Explorer{
		initial:   p,
		initialLC: lc,
		params:    p,
		lc:        lc,
		models:    models,
		sys:       sys,
		width:     80,
		height:    24,
		sliders: []slider{
			{name: "P", field: func(p *beam.Params) *float64 { return &p.P }, step: forceStep},
			{name: "nP", field: func(p *beam.Params) *float64 { return &p.NP }, step: loadStep(p.NP, forceStep)},
			{name: "M0", field: func(p *beam.Params) *float64 { return &p.M0 }, step: loadStep(p.M0, 0.02*ei/l)},
			{name: "L", field: func(p *beam.Params) *float64 { return &p.L }},
			{name: "E", field: func(p *beam.Params) *float64 { return &p.E }},
		},
	}
	e.solve()
	return e
}

func loadStep(v, fallback float64) float64 {
	if v != 0 {
		return math.Abs(v) / 10
	}
	if fallback > 0 && !math.IsInf(fallback, 0) {
		return fallback
	}
	return 1
}

func (e *Explorer) solve() {
	e.results, e.err = solver.Compare(context.Background(), e.params, e.models, e.lc)
}

// Params returns the current inputs.
func (e *Explorer) Params() beam.Params { return e.params }

func (e *Explorer) LoadCase() beam.LoadCase { return e.lc }

func (e *Explorer) Results() []beam.Result { return e.results }

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	}
	return e, nil
}

func (e *Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return e, tea.Quit
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.sliders)-1 {
			e.cursor++
		}
	case "left", "h":
		e.adjust(-1)
	case "right":
		e.adjust(1)
	case "l":
		e.lc = (e.lc + 1) % 3
		e.solve()
	case "r":
		e.params, e.lc = e.initial, e.initialLC
		e.solve()
	}
	return e, nil
}

func (e *Explorer) adjust(dir float64) {
	s := e.sliders[e.cursor]
	v := s.field(&e.params)
	if s.step == 0 {
		if dir > 0 {
			*v *= scaleStep
		} else {
			*v /= scaleStep
		}
	} else {
		*v += dir * s.step
		// keep float drift from leaving a residual load near zero
		if math.Abs(*v) < s.step*1e-9 {
			*v = 0
		}
	}
	e.solve()
}

func (e *Explorer) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("beamlab explorer") + "  " + Subtle.Render("load case: "+e.lc.String()) + "\n\n")

	for i, s := range e.sliders {
		v := *s.field(&e.params)
		line := fmt.Sprintf("%-3s %12.5g", s.name, v)
		if i == e.cursor {
			b.WriteString(NeonGlow.Render("▸ "+line) + "  " + Gauge(e.fraction(i), 20) + "\n")
		} else {
			b.WriteString("  " + MetricLabel.Render(line) + "\n")
		}
	}
	b.WriteString("\n")

	if e.err != nil {
		b.WriteString(Warning.Render(e.err.Error()) + "\n")
	}

	canvasW := max(e.width-4, 20)
	canvasH := max(e.height/3, 6)
	c := NewCanvas(canvasW, canvasH)
	c.DrawShapes(e.results)
	b.WriteString(GlassPanel.Render(strings.TrimRight(c.String(), "\n")) + "\n")

	b.WriteString(SummaryTable(e.results, e.sys) + "\n")
	b.WriteString(KeyHint.Render("↑/↓ select  ←/→ adjust  l load case  r reset  q quit"))
	return b.String()
}

// fraction places slider i relative to its initial value on a 0..2x scale.
func (e *Explorer) fraction(i int) float64 {
	s := e.sliders[i]
	v := *s.field(&e.params)
	v0 := *s.field(&e.initial)
	if v0 == 0 {
		if s.step == 0 {
			return 0
		}
		return 0.5 + v/(20*s.step)
	}
	return v / (2 * v0)
}
