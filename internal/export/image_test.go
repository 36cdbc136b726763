package export

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/quilting/internal/model"
)

func TestRenderImage_Size(t *testing.T) {
	img, err := RenderImage(buildTestLayout(), 10)
	if err != nil {
		t.Fatalf("RenderImage returned error: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 91 || b.Dy() != 91 {
		t.Errorf("expected 91x91 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderImage_CellColours(t *testing.T) {
	img, err := RenderImage(buildTestLayout(), 10)
	if err != nil {
		t.Fatalf("RenderImage returned error: %v", err)
	}

	// Start covers cells (0,0) and (1,0), the bottom row of the image.
	bg := model.ShapeStart.Pattern().BG
	want := color.NRGBA{bg.R, bg.G, bg.B, 255}
	if got := img.NRGBAAt(5, 85); got != want {
		t.Errorf("expected Start colour at cell (0,0), got %v", got)
	}

	// Cell (5,8) is empty.
	if got := img.NRGBAAt(55, 5); got != imageBackground {
		t.Errorf("expected background at empty cell, got %v", got)
	}
}

func TestRenderImage_Errors(t *testing.T) {
	if _, err := RenderImage(buildTestLayout(), 1); err == nil {
		t.Error("expected error for tiny cell size")
	}

	l := model.NewLayout("overlap")
	l.Placements = []model.Placement{
		{Shape: model.ShapeStart, X: 0, Y: 0},
		{Shape: model.ShapeStart, X: 1, Y: 0},
	}
	if _, err := RenderImage(l, 10); err == nil {
		t.Error("expected error for an overlapping layout")
	}
}

func TestRenderImage_OutlineBetweenSameLabels(t *testing.T) {
	l := model.NewLayout("twins")
	l.Placements = []model.Placement{
		{ID: "t1", Label: "X", Shape: model.ShapeStart, X: 0, Y: 0},
		{ID: "t2", Label: "X", Shape: model.ShapeStart, X: 2, Y: 0},
	}
	img, err := RenderImage(l, 10)
	if err != nil {
		t.Fatalf("RenderImage returned error: %v", err)
	}

	// x=20 is the shared edge of cells (1,0) and (2,0).
	if got := img.NRGBAAt(20, 85); got != imageOutline {
		t.Errorf("expected outline between patches, got %v", got)
	}
	// x=10 runs through the first patch.
	if got := img.NRGBAAt(10, 85); got != imageGridLine {
		t.Errorf("expected grid line inside a patch, got %v", got)
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.png")
	if err := ExportPNG(path, buildTestLayout(), 16); err != nil {
		t.Fatalf("ExportPNG returned error: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("cannot read back png: %v", err)
	}
	if img.Bounds().Dx() != 9*16+1 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}
