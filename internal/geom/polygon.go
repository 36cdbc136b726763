package geom

import "math"

// Polygon is a closed ring of points: the last point equals the first.
// Holes are not supported.
type Polygon []Point

// NewPolygon builds a closed ring from pts, appending the first point
// when the caller left the ring open.
func NewPolygon(pts ...Point) Polygon {
	if len(pts) == 0 {
		return nil
	}
	ring := make(Polygon, len(pts), len(pts)+1)
	copy(ring, pts)
	if !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}

// Segment is a straight edge between two points.
type Segment struct {
	A, B Point
}

// Vertices returns the ring without its closing point.
func (p Polygon) Vertices() []Point {
	if len(p) > 1 && p[0].Equal(p[len(p)-1]) {
		return p[:len(p)-1]
	}
	return p
}

// Edges returns every edge of the ring, including the closing edge.
func (p Polygon) Edges() []Segment {
	vs := p.Vertices()
	if len(vs) < 2 {
		return nil
	}
	edges := make([]Segment, len(vs))
	for i := range vs {
		edges[i] = Segment{A: vs[i], B: vs[(i+1)%len(vs)]}
	}
	return edges
}

// SignedArea returns the shoelace area: positive for counter-clockwise rings.
func (p Polygon) SignedArea() float64 {
	vs := p.Vertices()
	n := len(vs)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += vs[i].X*vs[j].Y - vs[j].X*vs[i].Y
	}
	return area / 2
}

// Area returns the enclosed area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// BoundingBox returns the min and max corners of the ring.
func (p Polygon) BoundingBox() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, q := range p[1:] {
		min.X = math.Min(min.X, q.X)
		min.Y = math.Min(min.Y, q.Y)
		max.X = math.Max(max.X, q.X)
		max.Y = math.Max(max.Y, q.Y)
	}
	return min, max
}

// Bounds returns the bounding box as a Rect.
func (p Polygon) Bounds() Rect {
	min, max := p.BoundingBox()
	return Rect{Min: min, Max: max}
}

// Translate shifts all points by d.
func (p Polygon) Translate(d Point) Polygon {
	out := make(Polygon, len(p))
	for i, q := range p {
		out[i] = q.Add(d)
	}
	return out
}

// RotateQuarter rotates the ring counter-clockwise about the origin by
// turns quarter turns. Negative turns rotate clockwise. Integer
// coordinates stay integer.
func (p Polygon) RotateQuarter(turns int) Polygon {
	turns = ((turns % 4) + 4) % 4
	out := make(Polygon, len(p))
	for i, q := range p {
		switch turns {
		case 1:
			out[i] = Point{X: -q.Y, Y: q.X}
		case 2:
			out[i] = Point{X: -q.X, Y: -q.Y}
		case 3:
			out[i] = Point{X: q.Y, Y: -q.X}
		default:
			out[i] = q
		}
	}
	return out
}

// OnBoundary reports whether pt lies on any edge of the ring.
func (p Polygon) OnBoundary(pt Point) bool {
	for _, e := range p.Edges() {
		if onSegment(pt, e) {
			return true
		}
	}
	return false
}

// ContainsPoint reports whether pt lies strictly inside the ring.
// Points on the boundary are not contained.
func (p Polygon) ContainsPoint(pt Point) bool {
	if p.OnBoundary(pt) {
		return false
	}
	inside := false
	for _, e := range p.Edges() {
		a, b := e.A, e.B
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// IsSimple reports whether the ring is a valid simple polygon: at least
// three vertices, non-zero area, and no edge touching another except
// adjacent edges at their shared vertex.
func (p Polygon) IsSimple() bool {
	if len(p) < 4 || !p[0].Equal(p[len(p)-1]) {
		return false
	}
	if p.Area() <= Epsilon {
		return false
	}
	edges := p.Edges()
	n := len(edges)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			adjacent := j == i+1 || (i == 0 && j == n-1)
			c := classifySegments(edges[i], edges[j])
			if adjacent {
				if c == contactLine {
					return false
				}
				continue
			}
			if c != contactNone {
				return false
			}
		}
	}
	return true
}

// onSegment reports whether pt lies on segment e, endpoints included.
func onSegment(pt Point, e Segment) bool {
	if sign(cross(e.A, e.B, pt)) != 0 {
		return false
	}
	return pt.X >= math.Min(e.A.X, e.B.X)-Epsilon && pt.X <= math.Max(e.A.X, e.B.X)+Epsilon &&
		pt.Y >= math.Min(e.A.Y, e.B.Y)-Epsilon && pt.Y <= math.Max(e.A.Y, e.B.Y)+Epsilon
}
