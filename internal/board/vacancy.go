package board

import (
	"sort"

	"github.com/piwi3910/quilting/internal/geom"
)

// Vacancy is a 4-connected region of uncovered cells.
type Vacancy struct {
	Cells []geom.IntPoint // Sorted by y, then x
	Min   geom.IntPoint   // Bottom-left cell of the bounding box
	Max   geom.IntPoint   // Top-right cell of the bounding box
}

// Size returns the number of cells in the region.
func (v Vacancy) Size() int { return len(v.Cells) }

// Vacancies finds the empty regions of the board, largest first. Regions
// of equal size are ordered by their lowest, then leftmost, cell.
func (b *Board) Vacancies() []Vacancy {
	seen := make([]bool, b.width*b.height)
	idx := func(x, y int) int { return y*b.width + x }
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Occupied(x, y) {
				seen[idx(x, y)] = true
			}
		}
	}

	var vacancies []Vacancy
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if seen[idx(x, y)] {
				continue
			}
			v := Vacancy{Min: geom.Pt(x, y), Max: geom.Pt(x, y)}
			queue := []geom.IntPoint{geom.Pt(x, y)}
			seen[idx(x, y)] = true
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				v.Cells = append(v.Cells, c)
				v.Min.X = min(v.Min.X, c.X)
				v.Min.Y = min(v.Min.Y, c.Y)
				v.Max.X = max(v.Max.X, c.X)
				v.Max.Y = max(v.Max.Y, c.Y)
				for _, n := range [4]geom.IntPoint{
					geom.Pt(c.X+1, c.Y), geom.Pt(c.X-1, c.Y),
					geom.Pt(c.X, c.Y+1), geom.Pt(c.X, c.Y-1),
				} {
					if n.X < 0 || n.Y < 0 || n.X >= b.width || n.Y >= b.height || seen[idx(n.X, n.Y)] {
						continue
					}
					seen[idx(n.X, n.Y)] = true
					queue = append(queue, n)
				}
			}
			sort.Slice(v.Cells, func(i, j int) bool {
				if v.Cells[i].Y != v.Cells[j].Y {
					return v.Cells[i].Y < v.Cells[j].Y
				}
				return v.Cells[i].X < v.Cells[j].X
			})
			vacancies = append(vacancies, v)
		}
	}

	// Discovery order is already by lowest then leftmost cell.
	sort.SliceStable(vacancies, func(i, j int) bool {
		return vacancies[i].Size() > vacancies[j].Size()
	})
	return vacancies
}
