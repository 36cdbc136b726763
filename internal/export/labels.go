package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/maruel/natural"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/quilting/internal/model"
)

// LabelInfo holds the data encoded into each patch label's QR code.
type LabelInfo struct {
	Label    string `json:"label"`
	Shape    string `json:"shape"`
	Rotation int    `json:"rotation"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Cells    int    `json:"cells"`
	Buttons  int    `json:"buttons"`
	Layout   string `json:"layout"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
	swatchSize      = 3.0  // mm
)

// ExportLabels generates a PDF of QR-coded labels, one per placed patch,
// laid out on Avery 5160 sheets (3 columns x 10 rows on US Letter).
func ExportLabels(path string, layout model.Layout) error {
	labels := CollectLabelInfos(layout)
	if len(labels) == 0 {
		return fmt.Errorf("no patches placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Colour swatch in the shape's pattern
	if shape, err := model.ParseShape(info.Shape); err == nil {
		bg := shape.Pattern().BG
		pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		pdf.Rect(textX, y+labelPadding+0.75, swatchSize, swatchSize, "F")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX+swatchSize+1, y+labelPadding)

	nameW := textW - swatchSize - 1
	name := info.Label
	if pdf.GetStringWidth(name) > nameW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > nameW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(nameW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	desc := fmt.Sprintf("%s, %d cells, %d buttons", info.Shape, info.Cells, info.Buttons)
	pdf.CellFormat(textW, 3.5, desc, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("%s @ (%d, %d)", info.Layout, info.X, info.Y)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	if info.Rotation != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Rotated %d\xb0", info.Rotation), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a layout, ordered
// naturally by label so "Patch 2" precedes "Patch 10".
func CollectLabelInfos(layout model.Layout) []LabelInfo {
	var labels []LabelInfo
	for _, p := range layout.Placements {
		labels = append(labels, LabelInfo{
			Label:    p.Label,
			Shape:    p.Shape.String(),
			Rotation: p.Rotation.Degrees(),
			X:        p.X,
			Y:        p.Y,
			Cells:    p.Shape.Cells(),
			Buttons:  p.Shape.Buttons(),
			Layout:   layout.Name,
		})
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return natural.Less(labels[i].Label, labels[j].Label)
	})
	return labels
}
