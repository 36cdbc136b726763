package board

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

func start() model.Patch { return model.FromShape(model.ShapeStart) }

func TestNew_RejectsInvalidSize(t *testing.T) {
	_, err := New(0, 9)
	assert.Error(t, err)
	_, err = New(9, -1)
	assert.Error(t, err)

	b := Default()
	assert.Equal(t, 9, b.Width())
	assert.Equal(t, 9, b.Height())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 81, b.FreeCells())
}

func TestPlace_StartOnEmptyBoard(t *testing.T) {
	b := Default()
	_, err := b.PlaceRecord(geom.Pt(0, 0), start())
	require.NoError(t, err)

	grid := b.Render()
	assert.False(t, grid.At(0, 0).IsBlank())
	assert.False(t, grid.At(1, 0).IsBlank())
	assert.True(t, grid.At(2, 0).IsBlank())
	assert.True(t, grid.At(0, 1).IsBlank())
	assert.Equal(t, model.ShapeStart.Pattern(), grid.At(0, 0))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, b.CoveredCells())
}

func TestPlace_FullOverlapRejected(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))

	err := b.Place(geom.Pt(0, 0), start())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlap))

	var perr *PlacementError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, geom.Pt(0, 0), perr.Anchor)
	assert.Equal(t, model.ShapeStart, perr.Shape)
	assert.Equal(t, b.Placements()[0].ID, perr.Conflict)
	assert.Equal(t, 1, b.Len())
}

func TestPlace_EdgeTouchingAllowed(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))
	// The L's stem runs along x=2, the Start's right edge.
	require.NoError(t, b.Place(geom.Pt(2, 0), model.FromShape(model.ShapeL)))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 6, b.CoveredCells())
}

func TestPlace_CornerTouchingAllowed(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))
	require.NoError(t, b.Place(geom.Pt(2, 1), start()))
}

func TestPlace_OutOfBounds(t *testing.T) {
	b := Default()
	err := b.Place(geom.Pt(8, 0), start())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Contains(t, err.Error(), "outside the board")
	assert.Equal(t, 0, b.Len())

	// T reaches one cell left of its anchor.
	err = b.Place(geom.Pt(0, 0), model.FromShape(model.ShapeT))
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.NoError(t, b.Place(geom.Pt(1, 0), model.FromShape(model.ShapeT)))
}

func TestPlace_AnchorTaken(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(3, 3), start()))
	// Rotated half a turn the Start lies below-left of the anchor and only
	// touches the first one at a corner.
	err := b.Place(geom.Pt(3, 3), start().Rotate(model.R180))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnchorTaken))
	assert.False(t, errors.Is(err, ErrOverlap))
}

func TestPlace_RejectionIsIdempotent(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))
	require.NoError(t, b.Place(geom.Pt(0, 1), start()))
	before := b.Placements()

	attempts := []struct {
		anchor geom.IntPoint
		patch  model.Patch
	}{
		{geom.Pt(0, 0), model.FromShape(model.ShapeFatPlus)},
		{geom.Pt(1, 0), start()},
		{geom.Pt(8, 8), model.FromShape(model.ShapeLongI)},
	}
	for _, a := range attempts {
		first := b.Place(a.anchor, a.patch)
		second := b.Place(a.anchor, a.patch)
		require.Error(t, first)
		assert.Equal(t, first, second)
		assert.Equal(t, first.Error(), second.Error())
		assert.Equal(t, before, b.Placements())
	}
}

func TestCheck_DoesNotCommit(t *testing.T) {
	b := Default()
	assert.NoError(t, b.Check(geom.Pt(0, 0), start()))
	assert.Equal(t, 0, b.Len())
}

func TestProperty_ContainmentMonotonicity(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(4, 4), model.FromShape(model.ShapeU)))

	for _, s := range model.AllShapes() {
		for _, r := range model.Rotations() {
			p := model.FromShape(s).Rotate(r)
			for y := -5; y <= 13; y++ {
				for x := -5; x <= 13; x++ {
					anchor := geom.Pt(x, y)
					if b.Bounds().ContainsPolygon(p.RelativeGeometry(anchor)) {
						continue
					}
					err := b.Check(anchor, p)
					require.Error(t, err)
					assert.True(t, errors.Is(err, ErrOutOfBounds))
					require.Error(t, b.Place(anchor, p))
					require.Equal(t, 1, b.Len())
				}
			}
		}
	}
}

func TestProperty_NoOverlapAfterRandomPlacements(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := Default()
	for i := 0; i < 600; i++ {
		p := model.FromShape(model.SampleUniform(rng)).Rotate(model.Rotation(rng.Intn(4)))
		_ = b.Place(geom.Pt(rng.Intn(13)-2, rng.Intn(13)-2), p)
	}
	placed := b.Placements()
	require.Greater(t, len(placed), 5)

	covered := 0
	for i := range placed {
		covered += placed[i].Shape.Cells()
		assert.True(t, b.Bounds().ContainsPolygon(placed[i].Geometry()))
		for j := i + 1; j < len(placed); j++ {
			got := geom.Intersect(placed[i].Geometry(), placed[j].Geometry())
			assert.NotEqual(t, geom.DimArea, got.Dim, "%s and %s overlap", placed[i].Label, placed[j].Label)
			assert.InDelta(t, 0.0, got.Area, 1e-9)
		}
	}
	assert.Equal(t, covered, b.CoveredCells(), "disjoint placements cover exactly their cells")
}

func TestProperty_RenderConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := Default()
	for i := 0; i < 200; i++ {
		p := model.FromShape(model.SampleUniform(rng)).Rotate(model.Rotation(rng.Intn(4)))
		_ = b.Place(geom.Pt(rng.Intn(9), rng.Intn(9)), p)
	}

	grid := b.Render()
	require.Len(t, grid.Rows, b.Height())
	placed := b.Placements()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			centre := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			var owner *model.Placement
			for i := range placed {
				if placed[i].Geometry().ContainsPoint(centre) {
					owner = &placed[i]
					break
				}
			}
			tok := grid.At(x, y)
			if owner == nil {
				assert.True(t, tok.IsBlank(), "cell %d,%d should be blank", x, y)
				assert.False(t, b.Occupied(x, y))
				continue
			}
			assert.Equal(t, owner.Shape.Pattern(), tok, "cell %d,%d", x, y)
			assert.True(t, b.Occupied(x, y))
		}
	}
}

func TestRender_RowsTopFirst(t *testing.T) {
	b, err := New(3, 2)
	require.NoError(t, err)
	rec, err := b.PlaceRecord(geom.Pt(0, 0), start())
	require.NoError(t, err)

	grid := b.Render()
	require.Len(t, grid.Rows, 2)
	assert.True(t, grid.Rows[0][0].IsBlank(), "top row is y=1")
	assert.False(t, grid.Rows[1][0].IsBlank(), "bottom row is y=0")
	assert.True(t, grid.At(-1, 0).IsBlank())

	owners := b.Owners()
	assert.Equal(t, []string{rec.ID, rec.ID, ""}, owners[1])
}

func TestAtAndPlacements(t *testing.T) {
	b := Default()
	rec, err := b.PlaceRecord(geom.Pt(2, 3), start().Rotate(model.R90))
	require.NoError(t, err)
	assert.Len(t, rec.ID, 8)
	assert.Equal(t, "Patch 1", rec.Label)

	got, ok := b.At(geom.Pt(2, 3))
	require.True(t, ok)
	assert.Equal(t, rec, got)
	assert.Equal(t, model.R90, got.Rotation)

	_, ok = b.At(geom.Pt(0, 0))
	assert.False(t, ok)

	require.NoError(t, b.Place(geom.Pt(5, 5), model.FromShape(model.ShapeT)))
	assert.Equal(t, []string{"Patch 1", "Patch 2"}, []string{b.Placements()[0].Label, b.Placements()[1].Label})
	assert.Equal(t, 2, b.Buttons())
}

func TestClone_IsIndependent(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))
	c := b.Clone()
	require.NoError(t, c.Place(geom.Pt(0, 1), start()))

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, b.Placements()[0], c.Placements()[0])
	assert.NoError(t, b.Check(geom.Pt(0, 1), start()))
}

func TestLayoutRestoreRoundTrip(t *testing.T) {
	b := Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), start()))
	require.NoError(t, b.Place(geom.Pt(3, 3), model.FromShape(model.ShapeStripedStep)))
	require.NoError(t, b.Place(geom.Pt(8, 0), model.FromShape(model.ShapeLongI).Rotate(model.R90)))

	layout := b.Layout("round trip")
	assert.Equal(t, "round trip", layout.Name)
	assert.Equal(t, 9, layout.Width)

	restored, err := Restore(layout)
	require.NoError(t, err)
	assert.Equal(t, b.Placements(), restored.Placements())
	assert.Equal(t, b.Render(), restored.Render())
}

func TestRestore_RejectsInvalidLayouts(t *testing.T) {
	layout := model.NewLayout("bad")
	layout.Placements = []model.Placement{
		{Shape: model.ShapeStart, X: 0, Y: 0},
		{Shape: model.ShapeI, X: 1, Y: 0},
	}
	_, err := Restore(layout)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOverlap))
	assert.Contains(t, err.Error(), "placement 2")

	layout.Placements = []model.Placement{{Shape: model.Shape(40)}}
	_, err = Restore(layout)
	assert.Error(t, err)

	_, err = Restore(model.Layout{Width: 0, Height: 3})
	assert.Error(t, err)
}

func TestRestore_GeneratesMissingIdentity(t *testing.T) {
	layout := model.NewLayout("ids")
	layout.Placements = []model.Placement{{Shape: model.ShapeStart}}
	b, err := Restore(layout)
	require.NoError(t, err)
	p := b.Placements()[0]
	assert.Len(t, p.ID, 8)
	assert.Equal(t, "Patch 1", p.Label)
}

func TestRestore_RegeneratesDuplicateIDs(t *testing.T) {
	layout := model.NewLayout("dupes")
	layout.Placements = []model.Placement{
		{ID: "same", Label: "X", Shape: model.ShapeStart, X: 0, Y: 0},
		{ID: "same", Label: "X", Shape: model.ShapeStart, X: 2, Y: 0},
	}
	b, err := Restore(layout)
	require.NoError(t, err)

	got := b.Placements()
	require.Len(t, got, 2)
	assert.Equal(t, "same", got[0].ID)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Len(t, got[1].ID, 8)
	assert.Equal(t, "X", got[1].Label)

	owners := b.Owners()
	bottom := owners[len(owners)-1]
	assert.NotEqual(t, bottom[1], bottom[2], "adjacent patches with one label keep separate owners")
}
