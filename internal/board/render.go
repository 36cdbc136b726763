package board

import "github.com/piwi3910/quilting/internal/model"

// Grid is a discretized view of the board. Rows run from the top of the
// board (y = Height-1) down to y = 0.
type Grid struct {
	Width  int
	Height int
	Rows   [][]model.Token
}

// At returns the token of board cell (x, y).
func (g Grid) At(x, y int) model.Token {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return model.Token{}
	}
	return g.Rows[g.Height-1-y][x]
}

// Render samples each cell at its centre (x+0.5, y+0.5). A cell takes the
// pattern of the first placement, in commit order, whose interior contains
// the sample; points on a placement's boundary are not inside it. Cells
// covered by nothing are blank.
func (b *Board) Render() Grid {
	g := Grid{Width: b.width, Height: b.height, Rows: make([][]model.Token, b.height)}
	for y := 0; y < b.height; y++ {
		row := make([]model.Token, b.width)
		for x := 0; x < b.width; x++ {
			if e, ok := b.cellOwner(x, y); ok {
				row[x] = e.patch.Pattern()
			}
		}
		g.Rows[b.height-1-y] = row
	}
	return g
}

// Owners returns, per cell, the ID of the covering placement or "".
// Labels may repeat, IDs do not. Rows follow the same top-first order as
// Render.
func (b *Board) Owners() [][]string {
	rows := make([][]string, b.height)
	for y := 0; y < b.height; y++ {
		row := make([]string, b.width)
		for x := 0; x < b.width; x++ {
			if e, ok := b.cellOwner(x, y); ok {
				row[x] = e.id
			}
		}
		rows[b.height-1-y] = row
	}
	return rows
}
