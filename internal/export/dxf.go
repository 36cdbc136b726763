package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/importer"
	"github.com/piwi3910/quilting/internal/model"
)

// LayerBoard holds the board outline.
const LayerBoard = "BOARD"

// ExportDXF writes the layout as LINE entities scaled by cellSize drawing
// units per cell. The board outline goes on the BOARD layer and each
// patch outline, edge by edge in ring order, on the layer named by
// importer.ShapeLayer for its shape, so shapes with the same outline
// survive importer.ImportDXF.
func ExportDXF(path string, layout model.Layout, cellSize float64) error {
	if cellSize <= 0 {
		cellSize = 1
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return fmt.Errorf("invalid board size %dx%d", layout.Width, layout.Height)
	}

	d := dxf.NewDrawing()

	writeRing := func(poly geom.Polygon) error {
		for _, e := range poly.Edges() {
			if _, err := d.Line(e.A.X*cellSize, e.A.Y*cellSize, 0, e.B.X*cellSize, e.B.Y*cellSize, 0); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := d.AddLayer(LayerBoard, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerBoard, err)
	}
	bounds := geom.NewRect(float64(layout.Width), float64(layout.Height))
	if err := writeRing(bounds.Polygon()); err != nil {
		return fmt.Errorf("failed to write board outline: %w", err)
	}

	layers := map[string]bool{}
	for _, p := range layout.Placements {
		if !p.Shape.Valid() {
			return fmt.Errorf("placement %q has invalid shape", p.Label)
		}
		layer := importer.ShapeLayer(p.Shape)
		if layers[layer] {
			if err := d.ChangeLayer(layer); err != nil {
				return fmt.Errorf("failed to switch to layer %s: %w", layer, err)
			}
		} else {
			if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", layer, err)
			}
			layers[layer] = true
		}
		if err := writeRing(p.Geometry()); err != nil {
			return fmt.Errorf("failed to write %q: %w", p.Label, err)
		}
	}

	return d.SaveAs(path)
}
