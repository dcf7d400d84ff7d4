package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/solver"
	"github.com/san-kum/beamlab/internal/units"
)

// SummaryRows formats one row per result. The error column is relative to
// the elastica when it is part of the comparison.
func SummaryRows(results []beam.Result, sys units.System) [][]string {
	ref, hasRef := solver.Find(results, beam.Nonlinear)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.IsEmpty() {
			rows = append(rows, []string{r.Label, "-", "-", "-", "-", "-", "zero stiffness"})
			continue
		}

		stress := "-"
		if r.MaxStress > 0 {
			stress = fmt.Sprintf("%.4g", sys.StressFrom(r.MaxStress))
		}
		rel := "-"
		if hasRef && !ref.IsEmpty() && r.Model != beam.Nonlinear {
			rel = fmt.Sprintf("%+.2f%%", 100*solver.RelativeTipError(r, ref))
		}
		note := ""
		if c := r.Convergence; c != nil {
			note = fmt.Sprintf("%d it", c.Iterations)
			if !c.Converged {
				note += fmt.Sprintf(", resid %.1e", c.Residual)
			}
		}

		rows = append(rows, []string{
			r.Label,
			fmt.Sprintf("%.5g", sys.LengthFrom(r.TipX)),
			fmt.Sprintf("%.5g", sys.LengthFrom(r.TipY)),
			fmt.Sprintf("%.4f", r.TipAngle),
			stress,
			rel,
			note,
		})
	}
	return rows
}

// SummaryTable renders the comparison with model labels in their plot color.
func SummaryTable(results []beam.Result, sys units.System) string {
	lu, su := sys.LengthUnit(), sys.StressUnit()
	headers := []string{"model", "tip x (" + lu + ")", "tip y (" + lu + ")", "angle (rad)", "stress (" + su + ")", "vs elastica", "solver"}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(SummaryRows(results, sys)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(MetricLabel).Bold(true)
			case col == 0 && row < len(results):
				return base.Inherit(ModelStyle(results[row].Model))
			case col == 6:
				return base.Inherit(Subtle)
			}
			return base
		})
	return t.Render()
}
