// Package importer provides CSV, Excel and DXF import of placement lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/quilting/internal/model"
)

// ImportResult holds the results of an import operation. Rows that fail to
// parse are reported in Errors and skipped; the rest are still returned.
type ImportResult struct {
	Placements []model.Placement
	Width      int // Board width found in the source, 0 if unknown
	Height     int // Board height found in the source, 0 if unknown
	Errors     []string
	Warnings   []string
}

// Layout builds a layout from the imported placements. The board size from
// the source is used when known, otherwise the default size.
func (r ImportResult) Layout(name string) model.Layout {
	l := model.NewLayout(name)
	if r.Width > 0 && r.Height > 0 {
		l.Width, l.Height = r.Width, r.Height
	}
	l.Placements = append(l.Placements, r.Placements...)
	return l
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Shape    int
	X        int
	Y        int
	Rotation int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "patch", "patch name", "description", "desc", "id"},
	"shape":    {"shape", "type", "kind", "piece", "tile", "polyomino"},
	"x":        {"x", "col", "column", "anchor x", "left"},
	"y":        {"y", "row", "anchor y", "bottom"},
	"rotation": {"rotation", "rot", "angle", "turn", "degrees", "orientation"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (Label, Shape, X, Y, Rotation) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		Shape:    -1,
		X:        -1,
		Y:        -1,
		Rotation: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				var slot *int
				switch role {
				case "label":
					slot = &mapping.Label
				case "shape":
					slot = &mapping.Shape
				case "x":
					slot = &mapping.X
				case "y":
					slot = &mapping.Y
				case "rotation":
					slot = &mapping.Rotation
				}
				if *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:    0,
			Shape:    1,
			X:        2,
			Y:        3,
			Rotation: 4,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Placement from a row using the given column mapping.
// Returns the placement, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Placement, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Patch %d", count+1)
	}

	shapeStr := getCell(row, mapping.Shape)
	if shapeStr == "" {
		return model.Placement{}, fmt.Sprintf("%s: Missing shape", rowLabel), ""
	}
	shape, err := model.ParseShape(shapeStr)
	if err != nil {
		return model.Placement{}, fmt.Sprintf("%s: Unknown shape '%s'", rowLabel, shapeStr), ""
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return model.Placement{}, fmt.Sprintf("%s: Missing x value", rowLabel), ""
	}
	x, err := strconv.Atoi(xStr)
	if err != nil {
		return model.Placement{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr), ""
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return model.Placement{}, fmt.Sprintf("%s: Missing y value", rowLabel), ""
	}
	y, err := strconv.Atoi(yStr)
	if err != nil {
		return model.Placement{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr), ""
	}

	p := model.Placement{Label: label, Shape: shape, X: x, Y: y}

	var warning string
	rotStr := getCell(row, mapping.Rotation)
	if rotStr != "" {
		rot, err := model.ParseRotation(rotStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Unknown rotation '%s', defaulting to 0", rowLabel, rotStr)
		} else {
			p.Rotation = rot
		}
	}

	return p, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports placements from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports placements from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports placements from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Shape == -1 {
			missing = append(missing, "Shape")
		}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// An unrecognized header still has a non-numeric x column.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][mapping.X])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		p, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Placements))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Placements = append(result.Placements, p)
	}

	return result
}
