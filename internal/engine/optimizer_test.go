package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

func defaultTestSettings() model.FillSettings {
	s := model.DefaultFillSettings()
	s.Generations = 5
	s.Population = 10
	return s
}

func patches(shapes ...model.Shape) []model.Patch {
	out := make([]model.Patch, len(shapes))
	for i, s := range shapes {
		out[i] = model.FromShape(s)
	}
	return out
}

func assertNoOverlap(t *testing.T, b *board.Board) {
	t.Helper()
	placed := b.Placements()
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			got := geom.Intersect(placed[i].Geometry(), placed[j].Geometry())
			assert.False(t, got.Overlaps(), "%s overlaps %s", placed[i].Label, placed[j].Label)
		}
	}
}

func TestGreedy_LargestFirst(t *testing.T) {
	b := board.Default()
	result := New(defaultTestSettings()).Fill(b, patches(model.ShapeStart, model.ShapeFatPlus, model.ShapeLongI))

	require.Len(t, result.Placed, 3)
	assert.Empty(t, result.Unplaced)
	assert.Equal(t, model.ShapeFatPlus, result.Placed[0].Shape)
	assert.Equal(t, geom.Pt(1, 0), result.Placed[0].Anchor())
	assert.Equal(t, model.ShapeLongI, result.Placed[1].Shape)
	assert.Equal(t, model.ShapeStart, result.Placed[2].Shape)

	assert.Equal(t, 14, result.PlacedCells())
	assert.Equal(t, 14, result.Board.CoveredCells())
	assert.Equal(t, 2, result.Buttons())
	assert.Equal(t, 0, b.Len(), "input board is not modified")
}

func TestGreedy_KeepsExistingPlacements(t *testing.T) {
	b := board.Default()
	require.NoError(t, b.Place(geom.Pt(0, 0), model.FromShape(model.ShapeStart)))

	result := New(defaultTestSettings()).Fill(b, patches(model.ShapeStart))
	require.Len(t, result.Placed, 1)
	assert.Equal(t, geom.Pt(2, 0), result.Placed[0].Anchor())
	assert.Equal(t, 2, result.Board.Len())
	assert.Equal(t, "Patch 2", result.Placed[0].Label)
}

func TestGreedy_TooManyPatches(t *testing.T) {
	shapes := make([]model.Shape, 20)
	for i := range shapes {
		shapes[i] = model.ShapeFatPlus
	}
	result := New(defaultTestSettings()).Fill(board.Default(), patches(shapes...))

	assert.NotEmpty(t, result.Placed)
	assert.NotEmpty(t, result.Unplaced)
	assert.Equal(t, 20, len(result.Placed)+len(result.Unplaced))
	assertNoOverlap(t, result.Board)
	assert.LessOrEqual(t, result.Coverage(), 100.0)
}

func TestGreedy_RespectsAllowRotation(t *testing.T) {
	b, err := board.New(4, 1)
	require.NoError(t, err)

	s := defaultTestSettings()
	s.AllowRotation = false
	result := New(s).Fill(b, patches(model.ShapeLongI))
	assert.Empty(t, result.Placed)
	assert.Len(t, result.Unplaced, 1)

	s.AllowRotation = true
	result = New(s).Fill(b, patches(model.ShapeLongI))
	require.Len(t, result.Placed, 1)
	assert.Equal(t, model.R90, result.Placed[0].Rotation)
}

func TestFill_NoPatches(t *testing.T) {
	for _, algo := range []model.Algorithm{model.AlgorithmGreedy, model.AlgorithmGenetic} {
		s := defaultTestSettings()
		s.Algorithm = algo
		result := New(s).Fill(board.Default(), nil)
		assert.Empty(t, result.Placed, string(algo))
		require.NotNil(t, result.Board)
		assert.Equal(t, 0.0, result.Coverage())
	}
}

func TestRotationOrder(t *testing.T) {
	s := defaultTestSettings()
	assert.Equal(t, []model.Rotation{model.R180, model.R270, model.R0, model.R90}, rotationOrder(s, model.R180))
	s.AllowRotation = false
	assert.Equal(t, []model.Rotation{model.R0}, rotationOrder(s, model.R180))
}

func TestCompareScenarios(t *testing.T) {
	base := defaultTestSettings()
	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, model.AlgorithmGenetic, scenarios[1].Settings.Algorithm)
	assert.Equal(t, "No Rotation", scenarios[2].Name)

	b := board.Default()
	results := CompareScenarios(scenarios, b, patches(model.ShapeT, model.ShapeU, model.ShapeLongL))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 3, r.PlacedCount, r.Scenario.Name)
		assert.Equal(t, 15, r.PlacedCells, r.Scenario.Name)
		assert.Equal(t, 0, r.UnplacedCount)
		assertNoOverlap(t, r.Result.Board)
	}
	assert.Equal(t, 0, b.Len())

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, "Current Settings", best.Scenario.Name)

	_, ok = Best(nil)
	assert.False(t, ok)
}

func TestBuildDefaultScenarios_Genetic(t *testing.T) {
	base := defaultTestSettings()
	base.Algorithm = model.AlgorithmGenetic
	base.AllowRotation = false
	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 4)
	assert.Equal(t, model.AlgorithmGreedy, scenarios[1].Settings.Algorithm)
	assert.Equal(t, base.Seed+1, scenarios[2].Settings.Seed)
	assert.Equal(t, "With Rotation", scenarios[3].Name)
	assert.True(t, scenarios[3].Settings.AllowRotation)
}
