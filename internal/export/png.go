package export

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/san-kum/beamlab/internal/beam"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// hexColor parses "#rrggbb"; anything else is black.
func hexColor(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.Black
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Plot builds a gonum plot of the deflected shapes.
func Plot(results []beam.Result, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for _, r := range results {
		if len(r.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(r.Points))
		for i, pt := range r.Points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Model, err)
		}
		c := hexColor(r.Color)
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = c
		p.Add(line)
		p.Legend.Add(r.Label, line)

		if r.Model.RigidLink() {
			points.Shape = draw.CircleGlyph{}
			points.Radius = vg.Points(3)
			points.Color = c
			p.Add(points)
		}
	}

	return p, nil
}

// PNG saves the shape plot to filename; the extension picks the format.
func PNG(results []beam.Result, title, filename string) error {
	p, err := Plot(results, title)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}
