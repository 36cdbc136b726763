// Package geom provides the exact 2D geometry used by the placement engine.
//
// Coordinates are y-up: x increases to the right and y increases up the
// board. Patch outlines use small integer coordinates, so every operation
// here is exact up to float64 rounding of values near zero.
package geom

import (
	"fmt"
	"math"
)

// Epsilon absorbs float rounding when comparing coordinates and areas.
const Epsilon = 1e-9

// Point represents a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Equal reports whether two points coincide within Epsilon.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon && math.Abs(p.Y-q.Y) <= Epsilon
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// IntPoint is an integer board coordinate, used for anchor points.
type IntPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for IntPoint{x, y}.
func Pt(x, y int) IntPoint { return IntPoint{X: x, Y: y} }

// Point converts the anchor to a float point.
func (p IntPoint) Point() Point { return Point{X: float64(p.X), Y: float64(p.Y)} }

func (p IntPoint) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// cross returns the z component of (a-o) x (b-o). Positive when o->a->b
// turns counter-clockwise.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// sign maps v to -1, 0 or 1 using Epsilon as the zero band.
func sign(v float64) int {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	default:
		return 0
	}
}

// Rect is an axis-aligned rectangle given by its lower-left and upper-right corners.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewRect returns the rectangle [0,w]x[0,h].
func NewRect(w, h float64) Rect {
	return Rect{Max: Point{X: w, Y: h}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// ContainsPoint reports whether p lies inside r or on its boundary.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Min.X-Epsilon && p.X <= r.Max.X+Epsilon &&
		p.Y >= r.Min.Y-Epsilon && p.Y <= r.Max.Y+Epsilon
}

// ContainsPolygon reports whether every point of poly lies within r.
// A rectangle is convex, so checking the vertices is sufficient.
func (r Rect) ContainsPolygon(poly Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	for _, p := range poly {
		if !r.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// Polygon returns the rectangle as a counter-clockwise closed ring.
func (r Rect) Polygon() Polygon {
	return NewPolygon(
		r.Min,
		Point{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		Point{X: r.Min.X, Y: r.Max.Y},
	)
}
