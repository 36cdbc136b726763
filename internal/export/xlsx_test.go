package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/quilting/internal/importer"
)

func TestExportExcel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	layout := buildTestLayout()

	if err := ExportExcel(path, layout); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	result := importer.ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected import errors: %v", result.Errors)
	}
	if len(result.Placements) != len(layout.Placements) {
		t.Fatalf("expected %d placements, got %d", len(layout.Placements), len(result.Placements))
	}
	for i, want := range layout.Placements {
		got := result.Placements[i]
		if got.Label != want.Label || got.Shape != want.Shape || got.X != want.X ||
			got.Y != want.Y || got.Rotation != want.Rotation {
			t.Errorf("row %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestExportExcel_Summary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	if err := ExportExcel(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != LayoutSheet {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	v, err := f.GetCellValue("Summary", "B4")
	if err != nil {
		t.Fatal(err)
	}
	if v != "3" {
		t.Errorf("expected 3 patches in summary, got %q", v)
	}
}
