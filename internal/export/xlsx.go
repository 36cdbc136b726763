package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/quilting/internal/model"
)

// LayoutSheet is the worksheet name used by ExportExcel.
const LayoutSheet = "Layout"

var excelHeader = []interface{}{"Label", "Shape", "X", "Y", "Rotation", "Cells", "Buttons"}

// ExportExcel writes the layout placements as a workbook with one row per
// placement. Its header matches what importer.ImportExcel recognises, so a
// workbook round-trips. A second sheet records the board summary.
func ExportExcel(path string, layout model.Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LayoutSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(LayoutSheet, "A1", &excelHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, p := range layout.Placements {
		row := []interface{}{
			p.Label,
			p.Shape.String(),
			p.X,
			p.Y,
			p.Rotation.Degrees(),
			p.Shape.Cells(),
			p.Shape.Buttons(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LayoutSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Name", layout.Name},
		{"Width", layout.Width},
		{"Height", layout.Height},
		{"Patches", len(layout.Placements)},
		{"Covered Cells", layout.CoveredCells()},
		{"Coverage %", fmt.Sprintf("%.1f", layout.Coverage())},
		{"Buttons", layout.Buttons()},
	}
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return f.SaveAs(path)
}
