// Package export writes layouts to PDF reports, QR label sheets, PNG
// snapshots, DXF drawings and Excel workbooks.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/maruel/natural"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 30.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one page per layout with the board drawn to scale,
// followed by a summary page. unplaced lists patches an automated fill
// could not place; it may be empty.
func ExportPDF(path string, layouts []model.Layout, unplaced []model.Patch, settings model.FillSettings) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, layout := range layouts {
		if layout.Width <= 0 || layout.Height <= 0 {
			return fmt.Errorf("layout %d has invalid size %dx%d", i+1, layout.Width, layout.Height)
		}
		pdf.AddPage()
		renderLayoutPage(pdf, layout, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, layouts, unplaced, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws a single board on the current page. Board y runs
// up, page y runs down, so rows are flipped.
func renderLayoutPage(pdf *fpdf.Fpdf, layout model.Layout, pageNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Board %d: %s (%d x %d)", pageNum, layout.Name, layout.Width, layout.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Patches: %d | Covered: %d of %d cells | Coverage: %.1f%% | Buttons: %d",
		len(layout.Placements), layout.CoveredCells(), layout.TotalCells(), layout.Coverage(), layout.Buttons())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(layout.Width), drawHeight/float64(layout.Height))
	canvasW := float64(layout.Width) * scale
	canvasH := float64(layout.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(p geom.Point) fpdf.PointType {
		return fpdf.PointType{X: offsetX + p.X*scale, Y: offsetY + (float64(layout.Height)-p.Y)*scale}
	}

	// Board background and cell grid
	pdf.SetFillColor(245, 240, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetDrawColor(210, 205, 190)
	pdf.SetLineWidth(0.1)
	for x := 1; x < layout.Width; x++ {
		px := offsetX + float64(x)*scale
		pdf.Line(px, offsetY, px, offsetY+canvasH)
	}
	for y := 1; y < layout.Height; y++ {
		py := offsetY + float64(y)*scale
		pdf.Line(offsetX, py, offsetX+canvasW, py)
	}

	for _, p := range layout.Placements {
		poly := p.Geometry()
		points := make([]fpdf.PointType, 0, len(poly))
		for _, v := range poly.Vertices() {
			points = append(points, toPage(v))
		}

		tok := p.Shape.Pattern()
		pdf.SetFillColor(int(tok.BG.R), int(tok.BG.G), int(tok.BG.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.4)
		pdf.Polygon(points, "FD")

		if scale > 8 {
			cell, ok := labelCell(poly)
			if !ok {
				continue
			}
			pdf.SetFont("Helvetica", "", labelFontSize(scale))
			pdf.SetTextColor(0, 0, 0)
			corner := toPage(geom.Point{X: float64(cell.X), Y: float64(cell.Y + 1)})
			pdf.SetXY(corner.X, corner.Y)
			pdf.CellFormat(scale, scale, shortLabel(p.Label), "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, layout, offsetX, offsetY, canvasW, canvasH)
	drawPatchLegend(pdf, layout, offsetY+canvasH+6)
}

// labelCell returns the lowest, then leftmost, cell whose centre lies
// inside poly.
func labelCell(poly geom.Polygon) (geom.IntPoint, bool) {
	min, max := poly.BoundingBox()
	for y := int(math.Floor(min.Y)); float64(y) < max.Y; y++ {
		for x := int(math.Floor(min.X)); float64(x) < max.X; x++ {
			if poly.ContainsPoint(geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}) {
				return geom.Pt(x, y), true
			}
		}
	}
	return geom.IntPoint{}, false
}

// shortLabel turns "Patch 12" into "12"; other labels are kept.
func shortLabel(label string) string {
	var n int
	if _, err := fmt.Sscanf(label, "Patch %d", &n); err == nil {
		return fmt.Sprintf("%d", n)
	}
	return label
}

// drawDimensionAnnotations adds width and height labels outside the board.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, layout model.Layout, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d cells", layout.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d cells", layout.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// sortedPlacements returns the placements in natural label order.
func sortedPlacements(placements []model.Placement) []model.Placement {
	sorted := append([]model.Placement(nil), placements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return natural.Less(sorted[i].Label, sorted[j].Label)
	})
	return sorted
}

// drawPatchLegend renders a compact legend of placed patches below the board.
func drawPatchLegend(pdf *fpdf.Fpdf, layout model.Layout, startY float64) {
	if len(layout.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Patches placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range sortedPlacements(layout.Placements) {
		tok := p.Shape.Pattern()
		label := fmt.Sprintf("%s: %s @ (%d,%d)", p.Label, p.Shape, p.X, p.Y)
		if p.Rotation != model.R0 {
			label += fmt.Sprintf(" R%d", p.Rotation.Degrees())
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(int(tok.BG.R), int(tok.BG.G), int(tok.BG.B))
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, layouts []model.Layout, unplaced []model.Patch, settings model.FillSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Quilt Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	placed, covered, total, buttons := 0, 0, 0, 0
	for _, l := range layouts {
		placed += len(l.Placements)
		covered += l.CoveredCells()
		total += l.TotalCells()
		buttons += l.Buttons()
	}
	coverage := 0.0
	if total > 0 {
		coverage = float64(covered) / float64(total) * 100.0
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Boards", fmt.Sprintf("%d", len(layouts))},
		{"Patches Placed", fmt.Sprintf("%d", placed)},
		{"Overall Coverage", fmt.Sprintf("%.1f%%", coverage)},
		{"Buttons", fmt.Sprintf("%d", buttons)},
		{"Unplaced Patches", fmt.Sprintf("%d", len(unplaced))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Board Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 70, 40, 30, 40, 30}
	headers := []string{"Board", "Name", "Size", "Patches", "Coverage", "Buttons"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, l := range layouts {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			l.Name,
			fmt.Sprintf("%d x %d", l.Width, l.Height),
			fmt.Sprintf("%d", len(l.Placements)),
			fmt.Sprintf("%.1f%%", l.Coverage()),
			fmt.Sprintf("%d", l.Buttons()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Patches", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, p := range unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s (%d cells, %d buttons)", p.Shape, p.Cells(), p.Buttons())
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Fill Settings", "", 0, "L", false, 0, "")
	y += 9

	rotation := "yes"
	if !settings.AllowRotation {
		rotation = "no"
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Algorithm", string(settings.Algorithm)},
		{"Rotation", rotation},
		{"Seed", fmt.Sprintf("%d", settings.Seed)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Quilting - patch layout planner", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size suited to the cell size in mm.
func labelFontSize(cell float64) float64 {
	switch {
	case cell > 20:
		return 9
	case cell > 12:
		return 7
	default:
		return 6
	}
}
