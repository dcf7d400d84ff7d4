package export

import (
	"fmt"

	"github.com/san-kum/beamlab/internal/beam"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "summary"

// Workbook builds a summary sheet plus one sheet of points per model.
func Workbook(results []beam.Result, p beam.Params) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	inputs := [][]any{
		{"E (Pa)", p.E}, {"I (m^4)", p.I}, {"L (m)", p.L},
		{"P (N)", p.P}, {"nP (N)", p.NP}, {"M0 (N*m)", p.M0},
		{"c (m)", p.C}, {"A (m^2)", p.A},
	}
	for i, row := range inputs {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	header := []any{"model", "label", "tip x (m)", "tip y (m)", "tip angle (rad)", "max stress (Pa)", "points"}
	start := len(inputs) + 2
	cell, _ := excelize.CoordinatesToCellName(1, start)
	if err := f.SetSheetRow(summarySheet, cell, &header); err != nil {
		return nil, err
	}

	for i, r := range results {
		row := []any{r.Model.String(), r.Label, r.TipX, r.TipY, r.TipAngle, r.MaxStress, len(r.Points)}
		cell, _ := excelize.CoordinatesToCellName(1, start+i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}

		sheet := r.Model.String()
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, "A1", &[]any{"x (m)", "y (m)"}); err != nil {
			return nil, err
		}
		for j, pt := range r.Points {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			if err := f.SetSheetRow(sheet, cell, &[]any{pt.X, pt.Y}); err != nil {
				return nil, fmt.Errorf("%s row %d: %w", sheet, j, err)
			}
		}
	}

	return f, nil
}

// XLSX writes the workbook to filename.
func XLSX(results []beam.Result, p beam.Params, filename string) error {
	f, err := Workbook(results, p)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(filename)
}
