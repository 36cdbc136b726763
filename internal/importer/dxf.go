package importer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/quilting/internal/geom"
	"github.com/piwi3910/quilting/internal/model"
)

// segment is a line between two points, used for chaining disconnected
// LINE entities into closed outlines.
type segment struct {
	start geom.Point
	end   geom.Point
	layer string
}

// outline is a closed ring read from the drawing and the layer it was
// drawn on. layer is empty when a chain mixes layers.
type outline struct {
	poly  geom.Polygon
	layer string
}

// ShapeLayerPrefix starts the name of the layer a patch outline is drawn
// on; the rest of the name is the shape, as in "PATCH_BlueL".
const ShapeLayerPrefix = "PATCH_"

// ShapeLayer returns the DXF layer name for outlines of shape.
func ShapeLayer(shape model.Shape) string {
	return ShapeLayerPrefix + shape.String()
}

// ShapeFromLayer resolves a layer written by ShapeLayer back to its shape.
func ShapeFromLayer(layer string) (model.Shape, bool) {
	if len(layer) <= len(ShapeLayerPrefix) || !strings.EqualFold(layer[:len(ShapeLayerPrefix)], ShapeLayerPrefix) {
		return 0, false
	}
	shape, err := model.ParseShape(layer[len(ShapeLayerPrefix):])
	if err != nil {
		return 0, false
	}
	return shape, true
}

// layerName returns the name of the layer an entity sits on, or "".
func layerName(e interface{ Layer() *table.Layer }) string {
	if l := e.Layer(); l != nil {
		return l.Name()
	}
	return ""
}

// chainTolerance is the endpoint distance, in cells, below which two
// segment ends are treated as the same point.
const chainTolerance = 0.01

// ImportDXF reads patch outlines from a DXF drawing. Coordinates are divided
// by cellSize (drawing units per board cell; values <= 0 mean 1). Each closed
// LWPOLYLINE or chain of LINEs is matched against every shape and rotation;
// a match becomes a placement at the recovered anchor. A rectangle at the
// origin larger than any shape is taken as the board outline.
func ImportDXF(path string, cellSize float64) ImportResult {
	result := ImportResult{}
	if cellSize <= 0 {
		cellSize = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	scale := func(x, y float64) geom.Point {
		return geom.Point{X: x / cellSize, Y: y / cellSize}
	}

	var outlines []outline
	var segments []segment
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var pts []geom.Point
			for _, v := range e.Vertices {
				pts = append(pts, scale(v[0], v[1]))
			}
			if len(pts) >= 3 {
				outlines = append(outlines, outline{poly: geom.NewPolygon(pts...), layer: layerName(e)})
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: scale(e.Start[0], e.Start[1]),
				end:   scale(e.End[0], e.End[1]),
				layer: layerName(e),
			})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities (only LINE and LWPOLYLINE describe patches)", skipped))
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	// Largest first, so the board outline is seen before the patches.
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlines[i].poly.Area() > outlines[j].poly.Area()
	})

	if w, h, ok := boardOutline(outlines[0].poly); ok {
		result.Width, result.Height = w, h
		outlines = outlines[1:]
	}

	for i, o := range outlines {
		shapes := model.AllShapes()
		if named, ok := ShapeFromLayer(o.layer); ok {
			shapes = []model.Shape{named}
		}
		shape, rot, anchor, ok := matchOutline(o.poly, shapes)
		if !ok && len(shapes) == 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Outline %d on layer %s does not match its shape, matching by geometry", i+1, o.layer))
			shape, rot, anchor, ok = matchOutline(o.poly, model.AllShapes())
		}
		if !ok {
			min, _ := o.poly.BoundingBox()
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Outline %d at %s matches no patch shape (area %.2f)", i+1, min, o.poly.Area()))
			continue
		}
		result.Placements = append(result.Placements, model.Placement{
			Label:    fmt.Sprintf("DXF Patch %d", len(result.Placements)+1),
			Shape:    shape,
			Rotation: rot,
			X:        anchor.X,
			Y:        anchor.Y,
		})
	}

	// Outlines are ordered by area; report placements bottom-up, left to right.
	sort.SliceStable(result.Placements, func(i, j int) bool {
		a, b := result.Placements[i], result.Placements[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	return result
}

// largestShapeCells is the cell count of the biggest catalog shape.
func largestShapeCells() int {
	largest := 0
	for _, s := range model.AllShapes() {
		largest = max(largest, s.Cells())
	}
	return largest
}

// boardOutline reports whether poly is an axis-aligned rectangle with its
// corner at the origin, integral sides and an area above every shape's.
func boardOutline(poly geom.Polygon) (int, int, bool) {
	min, max := poly.BoundingBox()
	if !min.Equal(geom.Point{}) {
		return 0, 0, false
	}
	w, h := math.Round(max.X), math.Round(max.Y)
	if math.Abs(w-max.X) > chainTolerance || math.Abs(h-max.Y) > chainTolerance {
		return 0, 0, false
	}
	if math.Abs(poly.Area()-w*h) > chainTolerance {
		return 0, 0, false
	}
	if int(w*h) <= largestShapeCells() {
		return 0, 0, false
	}
	return int(w), int(h), true
}

// matchOutline finds the shape, rotation and anchor whose placed geometry
// covers exactly the same region as outline. Shapes are tried in the given
// order and rotations from R0, so the first geometric match wins. L and
// BlueL share an outline; only a shape layer tells them apart.
func matchOutline(outline geom.Polygon, shapes []model.Shape) (model.Shape, model.Rotation, geom.IntPoint, bool) {
	area := outline.Area()
	omin, _ := outline.BoundingBox()

	for _, s := range shapes {
		if math.Abs(float64(s.Cells())-area) > chainTolerance {
			continue
		}
		for _, rot := range model.Rotations() {
			patch := model.Patch{Shape: s, Rotation: rot}
			gmin, _ := patch.Geometry().BoundingBox()
			dx, dy := omin.X-gmin.X, omin.Y-gmin.Y
			ax, ay := math.Round(dx), math.Round(dy)
			if math.Abs(dx-ax) > chainTolerance || math.Abs(dy-ay) > chainTolerance {
				continue
			}
			anchor := geom.Pt(int(ax), int(ay))
			inter := geom.Intersect(patch.RelativeGeometry(anchor), outline)
			if math.Abs(inter.Area-area) < chainTolerance {
				return s, rot, anchor, true
			}
		}
	}
	return 0, 0, geom.IntPoint{}, false
}

// chainSegments connects segments into closed outlines. When several
// segments continue the chain, the one written next in the file wins, so
// outlines that share vertices are recovered the way they were drawn. A
// chain stops growing once it returns to its start. An outline keeps its
// layer when every segment in it shares one.
func chainSegments(segs []segment, tolerance float64) []outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []outline

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}

		chain := []geom.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true
		last := startIdx
		layer := segs[startIdx].layer

		for !(len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance)) {
			next, reversed := nextSegment(segs, used, last, chain[len(chain)-1], tolerance)
			if next < 0 {
				break
			}
			used[next] = true
			last = next
			if segs[next].layer != layer {
				layer = ""
			}
			if reversed {
				chain = append(chain, segs[next].start)
			} else {
				chain = append(chain, segs[next].end)
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain[len(chain)-1] = chain[0]
			outlines = append(outlines, outline{poly: geom.Polygon(chain), layer: layer})
		}
	}

	return outlines
}

// nextSegment finds an unused segment touching tail, preferring the one
// following last. reversed reports that the segment's end touches tail.
func nextSegment(segs []segment, used []bool, last int, tail geom.Point, tolerance float64) (int, bool) {
	try := func(i int) (int, bool, bool) {
		if used[i] {
			return -1, false, false
		}
		if pointsClose(tail, segs[i].start, tolerance) {
			return i, false, true
		}
		if pointsClose(tail, segs[i].end, tolerance) {
			return i, true, true
		}
		return -1, false, false
	}

	if last+1 < len(segs) {
		if i, rev, ok := try(last + 1); ok {
			return i, rev
		}
	}
	for i := range segs {
		if idx, rev, ok := try(i); ok {
			return idx, rev
		}
	}
	return -1, false
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b geom.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
