package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/beamlab/internal/beam"
)

// bounds covers every point of every result, padded by 10%.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func extent(results []beam.Result) (bounds, bool) {
	var b bounds
	found := false
	for _, r := range results {
		for _, p := range r.Points {
			if !found {
				b = bounds{p.X, p.X, p.Y, p.Y}
				found = true
				continue
			}
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}
	if !found {
		return b, false
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = rangeX / 4
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

// SVG draws every result on one canvas. Continuum models are drawn as
// paths; rigid-link models as straight segments with joint markers. The y
// axis is flipped so upward deflection points up on screen.
func SVG(results []beam.Result, width, height int) string {
	b, ok := extent(results)
	if !ok {
		return ""
	}

	sx := func(x float64) float64 { return (x - b.minX) / (b.maxX - b.minX) * float64(width) }
	sy := func(y float64) float64 { return float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#999999" stroke-dasharray="4 3"/>
`, width, height, width, height, sx(0), sy(0), sx(b.maxX), sy(0)))

	for _, r := range results {
		if len(r.Points) < 2 {
			continue
		}

		sb.WriteString(fmt.Sprintf(`<g id="%s">`+"\n", r.Model))
		if r.Model.RigidLink() {
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="2" points="`, r.Color))
			for i, p := range r.Points {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", sx(p.X), sy(p.Y)))
			}
			sb.WriteString(`"/>` + "\n")
			for _, p := range r.Points {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", sx(p.X), sy(p.Y), r.Color))
			}
		} else {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, r.Color))
			for i, p := range r.Points {
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", sx(p.X), sy(p.Y)))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", sx(p.X), sy(p.Y)))
				}
			}
			sb.WriteString(`"/>` + "\n")
		}
		sb.WriteString(fmt.Sprintf(`<title>%s</title>`+"\n</g>\n", r.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
