package beam

import (
	"encoding/json"
	"math"
)

// Point is a planar coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is one model's prediction of the deflected shape.
type Result struct {
	Model     Model   `json:"model"`
	Points    []Point `json:"points"`
	TipX      float64 `json:"tip_x"`
	TipY      float64 `json:"tip_y"`
	TipAngle  float64 `json:"tip_angle"`  // radians
	MaxStress float64 `json:"max_stress"` // Pa, 0 when not computed
	Label     string  `json:"label"`
	Color     string  `json:"color"`

	Diagnostics Diagnostics  `json:"diagnostics,omitempty"`
	Convergence *Convergence `json:"convergence,omitempty"`
}

// UnmarshalJSON restores Diagnostics to the concrete type of the result's
// model family.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	var aux struct {
		plain
		Diagnostics json.RawMessage `json:"diagnostics,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Result(aux.plain)

	if len(aux.Diagnostics) == 0 || string(aux.Diagnostics) == "null" {
		return nil
	}
	switch r.Model {
	case PRB1R:
		var d PRB1RDiagnostics
		if err := json.Unmarshal(aux.Diagnostics, &d); err != nil {
			return err
		}
		r.Diagnostics = d
	case PRB3R:
		var d PRB3RDiagnostics
		if err := json.Unmarshal(aux.Diagnostics, &d); err != nil {
			return err
		}
		r.Diagnostics = d
	}
	return nil
}

// NewResult returns a Result carrying m's presentation metadata.
func NewResult(m Model) Result {
	s := m.Style()
	return Result{Model: m, Label: s.Label, Color: s.Color}
}

// Empty is the zero-stiffness sentinel: no points and zero tip state.
func Empty(m Model) Result {
	r := NewResult(m)
	r.Points = []Point{}
	return r
}

// IsEmpty reports whether r is the degenerate sentinel.
func (r Result) IsEmpty() bool {
	return len(r.Points) == 0
}

// Convergence records how an iterative model ended. It never changes the
// returned shape; non-converged results are still best-effort answers.
type Convergence struct {
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
	Converged  bool    `json:"converged"`
}

// ChordLength sums the straight segments of a polyline.
func ChordLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}

// Straight samples n equally spaced points along the undeformed axis.
func Straight(l float64, n int) []Point {
	pts := make([]Point, n)
	if n == 1 {
		return pts
	}
	for i := range pts {
		pts[i].X = l * float64(i) / float64(n-1)
	}
	return pts
}
