// Package geometry provides the real-valued (meter) geometric primitives
// used by the post-process scorer and the geometry validator: axis-aligned
// rectangles, oriented rectangles (for wall segments at arbitrary angles),
// polygon containment, intersection, distance, and buffering.
//
// The solver works in a separate integer grid space (see pkg/grid) and does
// not depend on this package: at 90-degree rotation quanta a footprint is
// always axis-aligned, so the solver's constraints are plain integer
// arithmetic. This package exists for the validator and scorer, which
// operate on real-valued geometry and must handle non-axis-aligned walls.
package geometry

import "math"

// EPS is the tolerance used to distinguish touching rectangles from
// overlapping ones. Distance 0 with no interior overlap is not a collision.
const EPS = 1e-6

// Point is a 2D point in meters.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle given by its lower-left corner and
// extents, in meters.
type Rect struct {
	X, Y float64
	W, D float64
}

// MaxX returns the rectangle's right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the rectangle's top edge.
func (r Rect) MaxY() float64 { return r.Y + r.D }

// Center returns the rectangle's centroid.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.D/2}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.D }

// Corners returns the four corners of the rectangle in counter-clockwise
// order starting from the lower-left corner.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.MaxX(), r.Y},
		{r.MaxX(), r.MaxY()},
		{r.X, r.MaxY()},
	}
}

// Intersects reports whether two rectangles share interior area or touch.
func Intersects(a, b Rect) bool {
	return a.X <= b.MaxX() && b.X <= a.MaxX() && a.Y <= b.MaxY() && b.Y <= a.MaxY()
}

// IntersectionArea returns the area shared by two rectangles, or 0 if they
// don't overlap (touching counts as 0 area, matching EPS semantics).
func IntersectionArea(a, b Rect) float64 {
	ox := math.Min(a.MaxX(), b.MaxX()) - math.Max(a.X, b.X)
	oy := math.Min(a.MaxY(), b.MaxY()) - math.Max(a.Y, b.Y)
	if ox <= 0 || oy <= 0 {
		return 0
	}
	return ox * oy
}

// Distance returns the minimum Euclidean distance between two rectangles'
// boundaries. Overlapping or touching rectangles have distance 0.
func Distance(a, b Rect) float64 {
	dx := math.Max(0, math.Max(a.X-b.MaxX(), b.X-a.MaxX()))
	dy := math.Max(0, math.Max(a.Y-b.MaxY(), b.Y-a.MaxY()))
	return math.Hypot(dx, dy)
}

// PointDistance returns the Euclidean distance between two points.
func PointDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Contains reports whether rect r lies fully inside the closed polygon,
// tested at all four corners plus the centroid. This is sufficient for the
// convex, near-rectangular room boundaries this module targets; a
// non-convex boundary whose edges slice through the rectangle without
// crossing a corner would not be detected, which is an accepted
// simplification.
func Contains(poly []Point, r Rect) bool {
	if len(poly) < 3 {
		return false
	}
	pts := r.Corners()
	for _, p := range pts {
		if !PointInPolygon(poly, p) {
			return false
		}
	}
	return PointInPolygon(poly, r.Center())
}

// PointInPolygon reports whether p lies inside (or on the boundary of) the
// polygon using the standard ray-casting test.
func PointInPolygon(poly []Point, p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if onSegment(pi, pj, p) {
			return true
		}
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

func onSegment(a, b, p Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > EPS {
		return false
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return p.X >= minX-EPS && p.X <= maxX+EPS && p.Y >= minY-EPS && p.Y <= maxY+EPS
}

// OrientedRect is a rectangle at an arbitrary angle, used to model a wall
// segment buffered by half its thickness (a capsule is approximated as an
// oriented rectangle spanning the segment's length).
type OrientedRect struct {
	Center Point
	HalfW  float64 // half-extent along the rectangle's own X axis
	HalfD  float64 // half-extent along the rectangle's own Y axis
	Angle  float64 // radians, rotation of the rectangle's X axis from world X
}

// Buffer builds the oriented rectangle covering the segment a-b inflated by
// radius r on every side (the Minkowski sum of the segment with a disk,
// approximated as a rectangle rather than a true capsule with round caps,
// which is conservative for collision purposes since it is never smaller
// than the capsule).
func Buffer(a, b Point, r float64) OrientedRect {
	length := PointDistance(a, b)
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return OrientedRect{
		Center: mid,
		HalfW:  length/2 + r,
		HalfD:  r,
		Angle:  angle,
	}
}

// axes returns the two unit axes of the oriented rectangle.
func (o OrientedRect) axes() [2]Point {
	c, s := math.Cos(o.Angle), math.Sin(o.Angle)
	return [2]Point{{X: c, Y: s}, {X: -s, Y: c}}
}

// corners returns the four corners of the oriented rectangle.
func (o OrientedRect) corners() [4]Point {
	ax := o.axes()
	ex := Point{X: ax[0].X * o.HalfW, Y: ax[0].Y * o.HalfW}
	ey := Point{X: ax[1].X * o.HalfD, Y: ax[1].Y * o.HalfD}
	c := o.Center
	return [4]Point{
		{c.X - ex.X - ey.X, c.Y - ex.Y - ey.Y},
		{c.X + ex.X - ey.X, c.Y + ex.Y - ey.Y},
		{c.X + ex.X + ey.X, c.Y + ex.Y + ey.Y},
		{c.X - ex.X + ey.X, c.Y - ex.Y + ey.Y},
	}
}

// IntersectsRect reports whether the oriented rectangle overlaps an
// axis-aligned rectangle, using the separating axis theorem over the four
// candidate axes (two from each rectangle).
func (o OrientedRect) IntersectsRect(r Rect) bool {
	oAxes := o.axes()
	axes := []Point{oAxes[0], oAxes[1], {X: 1, Y: 0}, {X: 0, Y: 1}}
	oc := o.corners()
	rc := r.Corners()
	for _, axis := range axes {
		oMin, oMax := projectMinMax(oc[:], axis)
		rMin, rMax := projectMinMax(rc[:], axis)
		if oMax < rMin-EPS || rMax < oMin-EPS {
			return false
		}
	}
	return true
}

func projectMinMax(pts []Point, axis Point) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.X*axis.X + p.Y*axis.Y
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// UnionArea returns the total area covered by the union of the given
// rectangles, using coordinate compression and a per-cell inclusion test.
// This is adequate for the small furniture counts (tens of items) the
// scorer and validator deal with per layout.
func UnionArea(rects []Rect) float64 {
	if len(rects) == 0 {
		return 0
	}
	xs := make(map[float64]struct{}, len(rects)*2)
	ys := make(map[float64]struct{}, len(rects)*2)
	for _, r := range rects {
		xs[r.X] = struct{}{}
		xs[r.MaxX()] = struct{}{}
		ys[r.Y] = struct{}{}
		ys[r.MaxY()] = struct{}{}
	}
	xsSorted := sortedKeys(xs)
	ysSorted := sortedKeys(ys)

	total := 0.0
	for i := 0; i+1 < len(xsSorted); i++ {
		cellX, cellW := xsSorted[i], xsSorted[i+1]-xsSorted[i]
		if cellW <= 0 {
			continue
		}
		for j := 0; j+1 < len(ysSorted); j++ {
			cellY, cellD := ysSorted[j], ysSorted[j+1]-ysSorted[j]
			if cellD <= 0 {
				continue
			}
			cx, cy := cellX+cellW/2, cellY+cellD/2
			for _, r := range rects {
				if cx > r.X && cx < r.MaxX() && cy > r.Y && cy < r.MaxY() {
					total += cellW * cellD
					break
				}
			}
		}
	}
	return total
}

func sortedKeys(m map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
