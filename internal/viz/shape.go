package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/units"
)

var seriesColors = map[beam.Model]asciigraph.AnsiColor{
	beam.Linear:    asciigraph.Blue,
	beam.Nonlinear: asciigraph.Red,
	beam.PRB1R:     asciigraph.Green,
	beam.PRB3R:     asciigraph.Yellow,
}

// Resample evaluates a polyline at n equally spaced x positions in [0, xMax].
// Positions the shape never reaches are NaN, which asciigraph leaves blank.
func Resample(pts []beam.Point, xMax float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := xMax * float64(i) / float64(max(n-1, 1))
		out[i] = interpolate(pts, x)
	}
	return out
}

func interpolate(pts []beam.Point, x float64) float64 {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		if x < lo || x > hi {
			continue
		}
		if hi == lo {
			return a.Y
		}
		t := (x - a.X) / (b.X - a.X)
		return a.Y + t*(b.Y-a.Y)
	}
	return math.NaN()
}

// PlotShapes overlays every non-empty result on one asciigraph chart,
// scaled to the display units of sys.
func PlotShapes(results []beam.Result, sys units.System, width, height int) string {
	if width < 2 || height < 1 {
		return ""
	}
	xMax := 0.0
	var drawn []beam.Result
	for _, r := range results {
		if r.IsEmpty() {
			continue
		}
		drawn = append(drawn, r)
		for _, p := range r.Points {
			xMax = max(xMax, p.X)
		}
	}
	if len(drawn) == 0 || xMax == 0 {
		return ""
	}

	data := make([][]float64, len(drawn))
	colors := make([]asciigraph.AnsiColor, len(drawn))
	legend := make([]string, len(drawn))
	for i, r := range drawn {
		ys := Resample(r.Points, xMax, width)
		for j := range ys {
			ys[j] = sys.LengthFrom(ys[j])
		}
		data[i] = ys
		colors[i] = seriesColors[r.Model]
		legend[i] = ModelStyle(r.Model).Render("━ " + r.Label)
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("y (%s) over x = 0..%.4g %s", sys.LengthUnit(), sys.LengthFrom(xMax), sys.LengthUnit())),
	)
	return graph + "\n" + strings.Join(legend, "  ")
}
