package model

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, ValidateCatalog())
}

func TestCatalogSize(t *testing.T) {
	assert.Len(t, AllShapes(), ShapeCount)
	assert.True(t, ShapeStripedStep.Valid())
	assert.False(t, Shape(ShapeCount).Valid())
	assert.False(t, Shape(-1).Valid())
}

func TestShapeCells(t *testing.T) {
	want := map[Shape]int{
		ShapeStart:        2,
		ShapeT:            5,
		ShapeL:            4,
		ShapeI:            3,
		ShapeU:            5,
		ShapeSpaceInvader: 6,
		ShapeLongPlus:     7,
		ShapeFatPlus:      8,
		ShapeLongL:        5,
		ShapeBlueL:        4,
		ShapeStep:         4,
		ShapeLongT:        6,
		ShapeLongI:        4,
		ShapeHalfCross:    4,
		ShapeStripedStep:  4,
	}
	for s, cells := range want {
		assert.Equal(t, cells, s.Cells(), s.String())
	}
}

func TestShapeGeometryIsCopy(t *testing.T) {
	g := ShapeStart.Geometry()
	g[1].X = 100
	assert.NotEqual(t, g, ShapeStart.Geometry())
	assert.Nil(t, Shape(99).Geometry())
}

func TestShapeMetadata(t *testing.T) {
	assert.Equal(t, 0, ShapeStart.Buttons())
	assert.Equal(t, 2, ShapeT.Buttons())
	assert.Equal(t, 0, Shape(99).Buttons())

	for _, s := range AllShapes() {
		assert.False(t, s.Pattern().IsBlank(), "%s should have a pattern", s)
	}
	assert.True(t, Shape(99).Pattern().IsBlank())
	assert.Equal(t, "Shape(99)", Shape(99).String())
}

func TestParseShape(t *testing.T) {
	for _, s := range AllShapes() {
		got, err := ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseShape(" space invader ")
	require.NoError(t, err)
	assert.Equal(t, ShapeSpaceInvader, got)

	got, err = ParseShape("long_l")
	require.NoError(t, err)
	assert.Equal(t, ShapeLongL, got)

	_, err = ParseShape("hexagon")
	assert.Error(t, err)
}

func TestShapeJSON(t *testing.T) {
	data, err := json.Marshal(ShapeHalfCross)
	require.NoError(t, err)
	assert.Equal(t, `"HalfCross"`, string(data))

	var s Shape
	require.NoError(t, json.Unmarshal([]byte(`"FatPlus"`), &s))
	assert.Equal(t, ShapeFatPlus, s)

	_, err = json.Marshal(Shape(42))
	assert.Error(t, err)
}

func TestSampleUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[Shape]int)
	for i := 0; i < 3000; i++ {
		s := SampleUniform(rng)
		require.True(t, s.Valid())
		seen[s]++
	}
	assert.Len(t, seen, ShapeCount, "every shape should be drawn")

	assert.True(t, SampleUniform(nil).Valid())
}
