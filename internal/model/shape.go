package model

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/piwi3910/quilting/internal/geom"
)

// Shape is one of the fixed polyomino variants a patch can take.
type Shape int

const (
	ShapeStart Shape = iota
	ShapeT
	ShapeL
	ShapeI
	ShapeU
	ShapeSpaceInvader
	ShapeLongPlus
	ShapeFatPlus
	ShapeLongL
	ShapeBlueL
	ShapeStep
	ShapeLongT
	ShapeLongI
	ShapeHalfCross
	ShapeStripedStep
)

// ShapeCount is the size of the catalog and the upper bound of SampleUniform.
const ShapeCount = 15

var shapeNames = [ShapeCount]string{
	"Start", "T", "L", "I", "U", "SpaceInvader", "LongPlus", "FatPlus",
	"LongL", "BlueL", "Step", "LongT", "LongI", "HalfCross", "StripedStep",
}

// ring builds a local polygon from integer x,y pairs.
func ring(coords ...float64) geom.Polygon {
	pts := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		pts = append(pts, geom.Point{X: coords[i], Y: coords[i+1]})
	}
	return geom.NewPolygon(pts...)
}

// shapeGeometry holds the local outline of every shape. The origin is the
// bottom-left corner of the shape's lowest stem; some shapes reach into
// negative x.
var shapeGeometry = [ShapeCount]geom.Polygon{
	ShapeStart:        ring(0, 0, 0, 1, 2, 1, 2, 0),
	ShapeT:            ring(0, 0, 0, 2, -1, 2, -1, 3, 2, 3, 2, 2, 1, 2, 1, 0),
	ShapeL:            ring(0, 0, 0, 3, 1, 3, 1, 1, 2, 1, 2, 0),
	ShapeI:            ring(0, 0, 0, 3, 1, 3, 1, 0),
	ShapeU:            ring(0, 0, 0, 2, 1, 2, 1, 1, 2, 1, 2, 2, 3, 2, 3, 0),
	ShapeSpaceInvader: ring(0, 0, 0, 2, 1, 2, 1, 3, 2, 3, 2, 2, 3, 2, 3, 0, 2, 0, 2, 1, 1, 1, 1, 0),
	ShapeLongPlus:     ring(0, 0, 0, 2, -1, 2, -1, 3, 0, 3, 0, 5, 1, 5, 1, 3, 2, 3, 2, 2, 1, 2, 1, 0),
	ShapeFatPlus:      ring(0, 0, 0, 1, -1, 1, -1, 3, 0, 3, 0, 4, 1, 4, 1, 3, 2, 3, 2, 1, 1, 1, 1, 0),
	ShapeLongL:        ring(0, 0, 0, 4, 1, 4, 1, 1, 2, 1, 2, 0),
	ShapeBlueL:        ring(0, 0, 0, 3, 1, 3, 1, 1, 2, 1, 2, 0),
	ShapeStep:         ring(0, 0, 0, 2, 1, 2, 1, 3, 2, 3, 2, 1, 1, 1, 1, 0),
	ShapeLongT:        ring(0, 0, 0, 3, -1, 3, -1, 4, 2, 4, 2, 3, 1, 3, 1, 0),
	ShapeLongI:        ring(0, 0, 0, 4, 1, 4, 1, 0),
	ShapeHalfCross:    ring(0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 1, 3, 1, 3, 0),
	ShapeStripedStep:  ring(0, 0, 0, 1, 1, 1, 1, 2, 3, 2, 3, 1, 2, 1, 2, 0),
}

var shapeButtons = [ShapeCount]int{
	ShapeStart:        0,
	ShapeT:            2,
	ShapeL:            1,
	ShapeI:            0,
	ShapeU:            0,
	ShapeSpaceInvader: 2,
	ShapeLongPlus:     1,
	ShapeFatPlus:      1,
	ShapeLongL:        2,
	ShapeBlueL:        2,
	ShapeStep:         1,
	ShapeLongT:        2,
	ShapeLongI:        1,
	ShapeHalfCross:    1,
	ShapeStripedStep:  2,
}

var shapePatterns = [ShapeCount]Token{
	ShapeStart:        {Glyph: "◦", FG: RGB{128, 128, 128}, BG: RGB{170, 200, 160}},
	ShapeT:            {Glyph: "✚", FG: RGB{255, 255, 255}, BG: RGB{170, 185, 95}},
	ShapeL:            {Glyph: "♣", FG: RGB{0, 160, 0}, BG: RGB{195, 80, 80}},
	ShapeI:            {Glyph: "♥", FG: RGB{205, 0, 0}, BG: RGB{220, 220, 180}},
	ShapeU:            {Glyph: "◆", FG: RGB{55, 55, 35}, BG: RGB{170, 200, 160}},
	ShapeSpaceInvader: {Glyph: "▼", FG: RGB{205, 0, 0}, BG: RGB{190, 185, 145}},
	ShapeLongPlus:     {Glyph: "+", FG: RGB{255, 255, 255}, BG: RGB{205, 0, 0}},
	ShapeFatPlus:      {Glyph: "●", FG: RGB{30, 60, 110}, BG: RGB{95, 155, 220}},
	ShapeLongL:        {Glyph: "▒", FG: RGB{128, 128, 128}, BG: RGB{190, 180, 175}},
	ShapeBlueL:        {Glyph: "━", FG: RGB{30, 60, 110}, BG: RGB{95, 170, 210}},
	ShapeStep:         {Glyph: "▲", FG: RGB{205, 0, 0}, BG: RGB{205, 0, 205}},
	ShapeLongT:        {Glyph: "x", FG: RGB{0, 160, 0}, BG: RGB{105, 210, 205}},
	ShapeLongI:        {Glyph: "▪", FG: RGB{128, 128, 128}, BG: RGB{35, 60, 50}},
	ShapeHalfCross:    {Glyph: "╋", FG: RGB{250, 240, 200}, BG: RGB{150, 90, 60}},
	ShapeStripedStep:  {Glyph: "▚", FG: RGB{40, 40, 40}, BG: RGB{230, 200, 90}},
}

// AllShapes returns every shape in catalog order.
func AllShapes() []Shape {
	shapes := make([]Shape, ShapeCount)
	for i := range shapes {
		shapes[i] = Shape(i)
	}
	return shapes
}

// Valid reports whether s is a catalog member.
func (s Shape) Valid() bool {
	return s >= 0 && s < ShapeCount
}

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Geometry returns the local polygon of the shape. The result is a copy
// and may be modified by the caller.
func (s Shape) Geometry() geom.Polygon {
	if !s.Valid() {
		return nil
	}
	return append(geom.Polygon(nil), shapeGeometry[s]...)
}

// Buttons returns the button yield printed on the shape.
func (s Shape) Buttons() int {
	if !s.Valid() {
		return 0
	}
	return shapeButtons[s]
}

// Pattern returns the display token used to draw the shape.
func (s Shape) Pattern() Token {
	if !s.Valid() {
		return Token{}
	}
	return shapePatterns[s]
}

// Cells returns the number of unit cells the shape covers.
func (s Shape) Cells() int {
	if !s.Valid() {
		return 0
	}
	return int(math.Round(shapeGeometry[s].Area()))
}

func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid shape %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func normalizeName(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

// ParseShape resolves a shape by name. Matching ignores case, spaces,
// dashes and underscores, so "space invader" resolves to SpaceInvader.
func ParseShape(name string) (Shape, error) {
	n := normalizeName(name)
	for i, candidate := range shapeNames {
		if normalizeName(candidate) == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// SampleUniform draws a shape uniformly over the catalog. A nil rng uses
// the package-level source.
func SampleUniform(rng *rand.Rand) Shape {
	if rng == nil {
		return Shape(rand.Intn(ShapeCount))
	}
	return Shape(rng.Intn(ShapeCount))
}

// ValidateCatalog verifies the geometry of every shape: a closed simple
// ring starting at the origin, resting on y = 0, whose area is a positive
// whole number of cells matching the cell centres it encloses.
func ValidateCatalog() error {
	for _, s := range AllShapes() {
		poly := shapeGeometry[s]
		if !poly.IsSimple() {
			return fmt.Errorf("shape %s: polygon is not a simple closed ring", s)
		}
		if !poly[0].Equal(geom.Point{}) {
			return fmt.Errorf("shape %s: ring must start at the origin, got %s", s, poly[0])
		}
		min, max := poly.BoundingBox()
		if math.Abs(min.Y) > geom.Epsilon {
			return fmt.Errorf("shape %s: footprint must rest on y=0, got min y %g", s, min.Y)
		}
		area := poly.Area()
		cells := math.Round(area)
		if cells < 1 || math.Abs(area-cells) > geom.Epsilon {
			return fmt.Errorf("shape %s: area %g is not a whole number of cells", s, area)
		}
		sampled := 0
		for y := math.Floor(min.Y); y < max.Y; y++ {
			for x := math.Floor(min.X); x < max.X; x++ {
				if poly.ContainsPoint(geom.Point{X: x + 0.5, Y: y + 0.5}) {
					sampled++
				}
			}
		}
		if float64(sampled) != cells {
			return fmt.Errorf("shape %s: area %g but %d cell centres inside", s, area, sampled)
		}
	}
	return nil
}
