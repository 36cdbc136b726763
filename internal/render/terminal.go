// Package render draws boards for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/model"
)

// Frame characters.
const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
)

// Viewer frames a board grid with a rounded border. Each cell is CellWidth
// characters wide so cells look roughly square in a terminal.
type Viewer struct {
	Color     bool   // Emit truecolor escape sequences
	CellWidth int    // Characters per cell, at least 1
	Title     string // Optional caption in the top border
}

// NewViewer returns a colour viewer with double-width cells.
func NewViewer() *Viewer {
	return &Viewer{Color: true, CellWidth: 2}
}

func (v *Viewer) cellWidth() int {
	if v.CellWidth < 1 {
		return 1
	}
	return v.CellWidth
}

// Render returns the framed grid, one line per board row, top row first.
func (v *Viewer) Render(g board.Grid) string {
	var sb strings.Builder
	inner := g.Width * v.cellWidth()

	sb.WriteString(v.topBorder(inner))
	sb.WriteByte('\n')
	for _, row := range g.Rows {
		sb.WriteString(vertical)
		for _, tok := range row {
			sb.WriteString(v.cell(tok))
		}
		sb.WriteString(vertical)
		sb.WriteByte('\n')
	}
	sb.WriteString(bottomLeft + strings.Repeat(horizontal, inner) + bottomRight)
	sb.WriteByte('\n')
	return sb.String()
}

// Write renders g to w.
func (v *Viewer) Write(w io.Writer, g board.Grid) error {
	_, err := io.WriteString(w, v.Render(g))
	return err
}

func (v *Viewer) topBorder(inner int) string {
	caption := ""
	if v.Title != "" {
		caption = horizontal + " " + v.Title + " "
	}
	if n := utf8.RuneCountInString(caption); n > 0 && n <= inner {
		return topLeft + caption + strings.Repeat(horizontal, inner-n) + topRight
	}
	return topLeft + strings.Repeat(horizontal, inner) + topRight
}

// cell draws one token: its glyph padded to the cell width on the token's
// background colour. Blank cells are spaces.
func (v *Viewer) cell(tok model.Token) string {
	w := v.cellWidth()
	if tok.IsBlank() {
		return strings.Repeat(" ", w)
	}
	text := tok.Glyph
	if n := utf8.RuneCountInString(text); n < w {
		text += strings.Repeat(" ", w-n)
	} else if n > w {
		text = string([]rune(text)[:w])
	}
	return v.paint(tok, text)
}

func (v *Viewer) paint(tok model.Token, text string) string {
	c := color.RGB(int(tok.FG.R), int(tok.FG.G), int(tok.FG.B)).
		AddBgRGB(int(tok.BG.R), int(tok.BG.G), int(tok.BG.B))
	if v.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// Legend lists each placement with its swatch, label, shape and buttons.
func (v *Viewer) Legend(placements []model.Placement) string {
	var sb strings.Builder
	for _, p := range placements {
		tok := p.Shape.Pattern()
		fmt.Fprintf(&sb, "%s %-10s %-12s %s at (%d,%d) buttons=%d\n",
			v.cell(tok), p.Label, p.Shape, p.Rotation.String()+"°", p.X, p.Y, p.Shape.Buttons())
	}
	return sb.String()
}

// Summary describes board coverage in one line.
func Summary(b *board.Board) string {
	total := b.Width() * b.Height()
	return fmt.Sprintf("%d patches, %d/%d cells covered (%.1f%%), %d buttons",
		b.Len(), b.CoveredCells(), total, float64(b.CoveredCells())/float64(total)*100.0, b.Buttons())
}
