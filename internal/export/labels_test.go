package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/quilting/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := ExportLabels(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportLabels(path, model.NewLayout("empty")); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	l := model.Layout{Name: "Wide", Width: 80, Height: 1}
	for i := 0; i < 35; i++ {
		l.Placements = append(l.Placements, model.Placement{
			Label: "Strip", Shape: model.ShapeStart, X: i * 2, Y: 0,
		})
	}
	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportLabels(path, l); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestLayout())
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	if labels[2].Label != "Patch 10" {
		t.Errorf("expected natural order with Patch 10 last, got %q", labels[2].Label)
	}

	long := labels[2]
	if long.Shape != "LongI" || long.Rotation != 90 {
		t.Errorf("unexpected shape data: %+v", long)
	}
	if long.Cells != 4 || long.Buttons != 1 {
		t.Errorf("expected 4 cells and 1 button, got %d and %d", long.Cells, long.Buttons)
	}
	if long.Layout != "Test Board" {
		t.Errorf("expected layout name, got %q", long.Layout)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := CollectLabelInfos(buildTestLayout())[1]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != info {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, info)
	}
}
