// Package board holds the board of record: validated placement of patches,
// occupancy queries, rendering to a token grid and the fit search.
package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// entry is a committed placement. It is never modified after commit.
type entry struct {
	id       string
	label    string
	anchor   geom.IntPoint
	patch    model.Patch
	geometry geom.Polygon
}

func (e *entry) record() model.Placement {
	return model.Placement{
		ID:       e.id,
		Label:    e.label,
		Shape:    e.patch.Shape,
		Rotation: e.patch.Rotation,
		X:        e.anchor.X,
		Y:        e.anchor.Y,
	}
}

// Board is a fixed-size surface holding placed patches keyed by anchor.
// Any two placements intersect in at most an edge or a point, and every
// placement lies inside [0,width]x[0,height].
//
// A Board is not safe for concurrent use; wrap it in a Guard.
type Board struct {
	width    int
	height   int
	bounds   geom.Rect
	byAnchor map[geom.IntPoint]*entry
	order    []*entry
	seq      int
}

// New creates an empty board. Both dimensions must be positive.
func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", width, height)
	}
	return &Board{
		width:    width,
		height:   height,
		bounds:   geom.NewRect(float64(width), float64(height)),
		byAnchor: make(map[geom.IntPoint]*entry),
	}, nil
}

// Default creates an empty 9x9 board.
func Default() *Board {
	b, _ := New(model.DefaultBoardWidth, model.DefaultBoardHeight)
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// Bounds returns the board rectangle.
func (b *Board) Bounds() geom.Rect { return b.bounds }

// Len returns the number of placed patches.
func (b *Board) Len() int { return len(b.order) }

// Check reports whether patch can be placed at anchor without committing.
// It applies exactly the validation Place does.
func (b *Board) Check(anchor geom.IntPoint, patch model.Patch) error {
	_, err := b.validate(anchor, patch)
	return err
}

// Place validates and commits patch at anchor. A rejected attempt returns a
// *PlacementError and leaves the board unchanged.
func (b *Board) Place(anchor geom.IntPoint, patch model.Patch) error {
	_, err := b.place(anchor, patch, "", "")
	return err
}

// PlaceRecord places patch and returns its committed record.
func (b *Board) PlaceRecord(anchor geom.IntPoint, patch model.Patch) (model.Placement, error) {
	e, err := b.place(anchor, patch, "", "")
	if err != nil {
		return model.Placement{}, err
	}
	return e.record(), nil
}

func (b *Board) place(anchor geom.IntPoint, patch model.Patch, id, label string) (*entry, error) {
	geometry, err := b.validate(anchor, patch)
	if err != nil {
		return nil, err
	}

	b.seq++
	if id == "" || b.hasID(id) {
		id = uuid.New().String()[:8]
	}
	if label == "" {
		label = fmt.Sprintf("Patch %d", b.seq)
	}
	e := &entry{
		id:       id,
		label:    label,
		anchor:   anchor,
		patch:    patch,
		geometry: geometry,
	}
	b.byAnchor[anchor] = e
	b.order = append(b.order, e)
	return e, nil
}

func (b *Board) hasID(id string) bool {
	for _, e := range b.order {
		if e.id == id {
			return true
		}
	}
	return false
}

// validate runs the bounds check, then the overlap scan in placement
// order, then the anchor uniqueness check.
func (b *Board) validate(anchor geom.IntPoint, patch model.Patch) (geom.Polygon, error) {
	geometry := patch.RelativeGeometry(anchor)
	reject := func(reason error, conflict string) error {
		return &PlacementError{
			Anchor:   anchor,
			Shape:    patch.Shape,
			Rotation: patch.Rotation,
			Reason:   reason,
			Conflict: conflict,
		}
	}

	if !b.bounds.ContainsPolygon(geometry) {
		return nil, reject(ErrOutOfBounds, "")
	}
	for _, e := range b.order {
		if geom.Intersect(e.geometry, geometry).Overlaps() {
			return nil, reject(ErrOverlap, e.id)
		}
	}
	if e, ok := b.byAnchor[anchor]; ok {
		return nil, reject(ErrAnchorTaken, e.id)
	}
	return geometry, nil
}

// At returns the placement anchored at anchor.
func (b *Board) At(anchor geom.IntPoint) (model.Placement, bool) {
	e, ok := b.byAnchor[anchor]
	if !ok {
		return model.Placement{}, false
	}
	return e.record(), true
}

// Placements returns all placements in commit order.
func (b *Board) Placements() []model.Placement {
	out := make([]model.Placement, len(b.order))
	for i, e := range b.order {
		out[i] = e.record()
	}
	return out
}

// Occupied reports whether the cell (x, y) is covered by a placement.
func (b *Board) Occupied(x, y int) bool {
	_, ok := b.cellOwner(x, y)
	return ok
}

// cellOwner returns the first placement, in commit order, whose interior
// contains the centre of cell (x, y).
func (b *Board) cellOwner(x, y int) (*entry, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return nil, false
	}
	centre := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	for _, e := range b.order {
		if e.geometry.ContainsPoint(centre) {
			return e, true
		}
	}
	return nil, false
}

// CoveredCells counts the cells whose centre lies inside a placement.
func (b *Board) CoveredCells() int {
	covered := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Occupied(x, y) {
				covered++
			}
		}
	}
	return covered
}

// FreeCells counts the uncovered cells.
func (b *Board) FreeCells() int {
	return b.width*b.height - b.CoveredCells()
}

// Buttons sums the button yield of the placed patches.
func (b *Board) Buttons() int {
	total := 0
	for _, e := range b.order {
		total += e.patch.Buttons()
	}
	return total
}

// Clone returns an independent copy of the board. Placement IDs and labels
// are preserved.
func (b *Board) Clone() *Board {
	c := &Board{
		width:    b.width,
		height:   b.height,
		bounds:   b.bounds,
		byAnchor: make(map[geom.IntPoint]*entry, len(b.byAnchor)),
		order:    make([]*entry, len(b.order)),
		seq:      b.seq,
	}
	copy(c.order, b.order)
	for k, v := range b.byAnchor {
		c.byAnchor[k] = v
	}
	return c
}

// Layout snapshots the board as a persistable record.
func (b *Board) Layout(name string) model.Layout {
	return model.Layout{
		Name:       name,
		Width:      b.width,
		Height:     b.height,
		Placements: b.Placements(),
	}
}

// Restore rebuilds a board from a layout, validating every placement in
// order. IDs and labels from the layout are kept; missing or repeated IDs
// are generated.
func Restore(layout model.Layout) (*Board, error) {
	b, err := New(layout.Width, layout.Height)
	if err != nil {
		return nil, err
	}
	for i, p := range layout.Placements {
		if !p.Shape.Valid() {
			return nil, fmt.Errorf("placement %d: invalid shape %d", i+1, int(p.Shape))
		}
		if _, err := b.place(p.Anchor(), p.Patch(), p.ID, p.Label); err != nil {
			return nil, fmt.Errorf("placement %d: %w", i+1, err)
		}
	}
	return b, nil
}
