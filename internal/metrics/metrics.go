// Package metrics scores model results against a reference model, usually
// the elastica, and accumulates the worst case over many solves.
package metrics

import (
	"math"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/solver"
)

// ShapeSamples is the number of arc-length stations compared by ShapeDeviation.
const ShapeSamples = 21

// Metric observes (result, reference) pairs and reports the worst score seen.
type Metric interface {
	Name() string
	Observe(r, ref beam.Result)
	Value() float64
	Reset()
}

// TipError is the largest |relative tip deflection error|.
type TipError struct {
	worst float64
}

func NewTipError() *TipError { return &TipError{} }

func (e *TipError) Name() string { return "tip_error" }

func (e *TipError) Observe(r, ref beam.Result) {
	e.worst = math.Max(e.worst, math.Abs(solver.RelativeTipError(r, ref)))
}

func (e *TipError) Value() float64 { return e.worst }

func (e *TipError) Reset() { e.worst = 0 }

// ShapeDeviation is the largest RMS distance between the two shapes sampled
// at equal arc-length fractions, as a fraction of the reference length.
type ShapeDeviation struct {
	worst float64
}

func NewShapeDeviation() *ShapeDeviation { return &ShapeDeviation{} }

func (s *ShapeDeviation) Name() string { return "shape_rms" }

func (s *ShapeDeviation) Observe(r, ref beam.Result) {
	total := beam.ChordLength(ref.Points)
	if total == 0 || len(r.Points) < 2 {
		return
	}
	a := ArcResample(r.Points, ShapeSamples)
	b := ArcResample(ref.Points, ShapeSamples)

	sum := 0.0
	for i := range a {
		d := math.Hypot(a[i].X-b[i].X, a[i].Y-b[i].Y)
		sum += d * d
	}
	rms := math.Sqrt(sum/float64(len(a))) / total
	s.worst = math.Max(s.worst, rms)
}

func (s *ShapeDeviation) Value() float64 { return s.worst }

func (s *ShapeDeviation) Reset() { s.worst = 0 }

// LengthDrift is the largest relative difference in polyline length. The
// small-deflection model stretches the beam; rigid-link chains cannot.
type LengthDrift struct {
	worst float64
}

func NewLengthDrift() *LengthDrift { return &LengthDrift{} }

func (l *LengthDrift) Name() string { return "length_drift" }

func (l *LengthDrift) Observe(r, ref beam.Result) {
	want := beam.ChordLength(ref.Points)
	if want == 0 {
		return
	}
	l.worst = math.Max(l.worst, math.Abs(beam.ChordLength(r.Points)-want)/want)
}

func (l *LengthDrift) Value() float64 { return l.worst }

func (l *LengthDrift) Reset() { l.worst = 0 }

// ArcResample places n points at equal arc-length fractions along pts.
func ArcResample(pts []beam.Point, n int) []beam.Point {
	out := make([]beam.Point, n)
	if len(pts) == 0 || n == 0 {
		return out
	}
	if len(pts) == 1 || n == 1 {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	total := cum[len(cum)-1]

	seg := 1
	for k := range out {
		s := total * float64(k) / float64(n-1)
		for seg < len(pts)-1 && cum[seg] < s {
			seg++
		}
		a, b := pts[seg-1], pts[seg]
		span := cum[seg] - cum[seg-1]
		t := 0.0
		if span > 0 {
			t = (s - cum[seg-1]) / span
		}
		out[k] = beam.Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	}
	return out
}
