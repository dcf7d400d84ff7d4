package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/san-kum/beamlab/internal/beam"
)

// Report renders a one-page comparison: inputs, tip table and shape sketch.
func Report(w io.Writer, title string, results []beam.Result, p beam.Params) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("E = %.4g Pa   I = %.4g m^4   L = %.4g m", p.E, p.I, p.L))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("P = %.4g N   nP = %.4g N   M0 = %.4g N*m   c = %.4g m", p.P, p.NP, p.M0, p.C))
	pdf.Ln(10)

	cols := []struct {
		name  string
		width float64
	}{{"Model", 50}, {"Tip x (m)", 30}, {"Tip y (m)", 30}, {"Tip angle (rad)", 35}, {"Max stress (Pa)", 35}}

	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range results {
		cells := []string{
			r.Label,
			fmt.Sprintf("%.6g", r.TipX),
			fmt.Sprintf("%.6g", r.TipY),
			fmt.Sprintf("%.6g", r.TipAngle),
			fmt.Sprintf("%.4g", r.MaxStress),
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	sketch(pdf, results, 15, pdf.GetY()+10, 180, 90)

	return pdf.Output(w)
}

// sketch draws the shapes into the box at (x0, y0) with size w x h mm.
func sketch(pdf *gofpdf.Fpdf, results []beam.Result, x0, y0, w, h float64) {
	b, ok := extent(results)
	if !ok {
		return
	}
	px := func(x float64) float64 { return x0 + (x-b.minX)/(b.maxX-b.minX)*w }
	py := func(y float64) float64 { return y0 + h - (y-b.minY)/(b.maxY-b.minY)*h }

	pdf.SetDrawColor(180, 180, 180)
	pdf.Rect(x0, y0, w, h, "D")

	for _, r := range results {
		c := hexColor(r.Color)
		red, green, blue, _ := c.RGBA()
		pdf.SetDrawColor(int(red>>8), int(green>>8), int(blue>>8))
		pdf.SetLineWidth(0.4)
		for i := 1; i < len(r.Points); i++ {
			a, z := r.Points[i-1], r.Points[i]
			pdf.Line(px(a.X), py(a.Y), px(z.X), py(z.Y))
		}
	}
}

// PDF writes the report to filename.
func PDF(results []beam.Result, p beam.Params, title, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Report(file, title, results, p)
}
