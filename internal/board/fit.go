package board

import (
	"math"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// Fit is a legal placement found by the search: place
// patch.Rotate(Rotation) at Anchor.
type Fit struct {
	Anchor   geom.IntPoint
	Rotation model.Rotation
}

// Fit returns the first legal placement for patch without modifying the
// board. Rotations are tried R0 to R270 relative to the patch's own
// rotation; within a rotation anchors are scanned by ascending y, then
// ascending x. The bool is false when no rotation fits anywhere.
func (b *Board) Fit(patch model.Patch) (Fit, bool) {
	var found Fit
	ok := false
	b.search(patch, model.Rotations(), func(f Fit) bool {
		found, ok = f, true
		return false
	})
	return found, ok
}

// FitRotations is Fit restricted to the given rotations, tried in order.
func (b *Board) FitRotations(patch model.Patch, rotations []model.Rotation) (Fit, bool) {
	var found Fit
	ok := false
	b.search(patch, rotations, func(f Fit) bool {
		found, ok = f, true
		return false
	})
	return found, ok
}

// Candidates returns every legal placement for patch in search order.
func (b *Board) Candidates(patch model.Patch) []Fit {
	var fits []Fit
	b.search(patch, model.Rotations(), func(f Fit) bool {
		fits = append(fits, f)
		return true
	})
	return fits
}

// search visits legal placements in search order until visit returns false.
func (b *Board) search(patch model.Patch, rotations []model.Rotation, visit func(Fit) bool) {
	for _, rot := range rotations {
		rotated := patch.Rotate(rot)
		xMin, xMax, yMin, yMax, ok := b.anchorRange(rotated)
		if !ok {
			continue
		}
		for y := yMin; y <= yMax; y++ {
			for x := xMin; x <= xMax; x++ {
				anchor := geom.Pt(x, y)
				if b.Check(anchor, rotated) != nil {
					continue
				}
				if !visit(Fit{Anchor: anchor, Rotation: rot}) {
					return
				}
			}
		}
	}
}

// anchorRange bounds the anchors that keep the rotated footprint on the
// board: x in [-minX, W-maxX], y in [-minY, H-maxY].
func (b *Board) anchorRange(patch model.Patch) (xMin, xMax, yMin, yMax int, ok bool) {
	g := patch.Geometry()
	if len(g) == 0 {
		return 0, 0, 0, 0, false
	}
	min, max := g.BoundingBox()
	xMin = int(math.Ceil(-min.X - geom.Epsilon))
	xMax = int(math.Floor(float64(b.width) - max.X + geom.Epsilon))
	yMin = int(math.Ceil(-min.Y - geom.Epsilon))
	yMax = int(math.Floor(float64(b.height) - max.Y + geom.Epsilon))
	return xMin, xMax, yMin, yMax, xMin <= xMax && yMin <= yMax
}
