package geom

import "math"

// Dimension classifies the extent of an intersection.
type Dimension int

const (
	DimEmpty Dimension = iota // No common point
	DimPoint                  // Shapes meet at isolated points only
	DimLine                   // Shapes share at least one edge segment, no area
	DimArea                   // Interiors overlap
)

func (d Dimension) String() string {
	switch d {
	case DimPoint:
		return "point"
	case DimLine:
		return "line"
	case DimArea:
		return "area"
	default:
		return "empty"
	}
}

// areaEpsilon is the smallest intersection area treated as an overlap.
// Unit cells have area 1, so this leaves a wide margin over rounding.
const areaEpsilon = 1e-6

// Intersection describes the common region of two polygons.
type Intersection struct {
	Area float64
	Dim  Dimension
}

// Overlaps reports whether the interiors overlap.
func (i Intersection) Overlaps() bool { return i.Dim == DimArea }

// Intersect computes the area and dimensionality of a ∩ b.
//
// The area is the sum over fan triangles t of a and u of b of
// sign(t)·sign(u)·area(t ∩ u). The fan triangles of a simple polygon
// cover its interior with winding number one, so the signed sum equals the
// exact overlap area for convex and non-convex rings alike.
func Intersect(a, b Polygon) Intersection {
	if !boxesTouch(a.Bounds(), b.Bounds()) {
		return Intersection{Dim: DimEmpty}
	}

	area := overlapArea(a, b)
	if area > areaEpsilon {
		return Intersection{Area: area, Dim: DimArea}
	}

	dim := DimEmpty
	for _, e := range a.Edges() {
		for _, f := range b.Edges() {
			switch classifySegments(e, f) {
			case contactLine:
				return Intersection{Dim: DimLine}
			case contactPoint:
				dim = DimPoint
			}
		}
	}
	return Intersection{Dim: dim}
}

// triangle is a fan triangle stored counter-clockwise with the sign of
// its original orientation.
type triangle struct {
	pts  [3]Point
	sign float64
	box  Rect
}

func fanTriangles(p Polygon) []triangle {
	vs := p.Vertices()
	if len(vs) < 3 {
		return nil
	}
	o := vs[0]
	tris := make([]triangle, 0, len(vs)-2)
	for i := 1; i+1 < len(vs); i++ {
		a, b := vs[i], vs[i+1]
		c := cross(o, a, b)
		if math.Abs(c) <= Epsilon {
			continue
		}
		t := triangle{pts: [3]Point{o, a, b}, sign: 1}
		if c < 0 {
			t.pts = [3]Point{o, b, a}
			t.sign = -1
		}
		t.box = Polygon(t.pts[:]).Bounds()
		tris = append(tris, t)
	}
	return tris
}

func overlapArea(a, b Polygon) float64 {
	ta := fanTriangles(a)
	tb := fanTriangles(b)
	var area float64
	for _, t := range ta {
		for _, u := range tb {
			if !boxesTouch(t.box, u.box) {
				continue
			}
			clipped := clipConvex(t.pts[:], u.pts[:])
			if len(clipped) < 3 {
				continue
			}
			area += t.sign * u.sign * math.Abs(Polygon(clipped).SignedArea())
		}
	}
	return area
}

// clipConvex clips subject against the counter-clockwise convex polygon
// clip (Sutherland–Hodgman). Both inputs are open rings.
func clipConvex(subject, clip []Point) []Point {
	output := append([]Point(nil), subject...)
	n := len(clip)
	for i := 0; i < n && len(output) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		input := output
		output = make([]Point, 0, len(input)+2)
		prev := input[len(input)-1]
		prevIn := cross(a, b, prev) >= -Epsilon
		for _, cur := range input {
			curIn := cross(a, b, cur) >= -Epsilon
			if curIn != prevIn {
				output = append(output, lineCrossing(prev, cur, a, b))
			}
			if curIn {
				output = append(output, cur)
			}
			prev, prevIn = cur, curIn
		}
	}
	return output
}

// lineCrossing returns where segment p->q crosses the line through a and b.
func lineCrossing(p, q, a, b Point) Point {
	cp := cross(a, b, p)
	cq := cross(a, b, q)
	t := cp / (cp - cq)
	return Point{X: p.X + t*(q.X-p.X), Y: p.Y + t*(q.Y-p.Y)}
}

func boxesTouch(r, s Rect) bool {
	return r.Min.X <= s.Max.X+Epsilon && s.Min.X <= r.Max.X+Epsilon &&
		r.Min.Y <= s.Max.Y+Epsilon && s.Min.Y <= r.Max.Y+Epsilon
}

// contact classifies how two segments meet.
type contact int

const (
	contactNone contact = iota
	contactPoint
	contactLine
)

func classifySegments(s, t Segment) contact {
	d1 := sign(cross(t.A, t.B, s.A))
	d2 := sign(cross(t.A, t.B, s.B))
	d3 := sign(cross(s.A, s.B, t.A))
	d4 := sign(cross(s.A, s.B, t.B))

	if d1 == 0 && d2 == 0 {
		return collinearContact(s, t)
	}
	if d1*d2 <= 0 && d3*d4 <= 0 {
		return contactPoint
	}
	return contactNone
}

// collinearContact measures the overlap of two segments on the same line.
func collinearContact(s, t Segment) contact {
	dir := t.B.Sub(t.A)
	lenSq := dir.X*dir.X + dir.Y*dir.Y
	if lenSq <= Epsilon {
		if onSegment(t.A, s) {
			return contactPoint
		}
		return contactNone
	}
	proj := func(p Point) float64 {
		d := p.Sub(t.A)
		return (d.X*dir.X + d.Y*dir.Y) / lenSq
	}
	u0, u1 := proj(s.A), proj(s.B)
	if u0 > u1 {
		u0, u1 = u1, u0
	}
	lo := math.Max(0, u0)
	hi := math.Min(1, u1)
	overlap := (hi - lo) * math.Sqrt(lenSq)
	switch {
	case overlap > Epsilon:
		return contactLine
	case overlap >= -Epsilon:
		return contactPoint
	default:
		return contactNone
	}
}
