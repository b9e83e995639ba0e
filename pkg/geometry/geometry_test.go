package geometry

import (
	"testing"

	"pgregory.net/rapid"
)

func drawRect(t *rapid.T, label string) Rect {
	return Rect{
		X: rapid.Float64Range(-20, 20).Draw(t, label+"_x"),
		Y: rapid.Float64Range(-20, 20).Draw(t, label+"_y"),
		W: rapid.Float64Range(0.1, 10).Draw(t, label+"_w"),
		D: rapid.Float64Range(0.1, 10).Draw(t, label+"_d"),
	}
}

// TestIntersectsIsSymmetric checks the invariant the collision checker
// depends on: Intersects(a, b) must agree regardless of argument order.
func TestIntersectsIsSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		if Intersects(a, b) != Intersects(b, a) {
			t.Fatalf("Intersects not symmetric for %+v, %+v", a, b)
		}
	})
}

// TestIntersectionAreaNeverExceedsSmallerRect checks that overlap area can
// never exceed either rectangle's own area, the bound the scorer's coverage
// ratio relies on.
func TestIntersectionAreaNeverExceedsSmallerRect(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		area := IntersectionArea(a, b)
		if area > a.Area()+EPS || area > b.Area()+EPS {
			t.Fatalf("intersection area %f exceeds a rect's own area (a=%f b=%f)", area, a.Area(), b.Area())
		}
	})
}

// TestDistanceIsSymmetricAndNonNegative checks invariants the validator's
// clearance checks rely on.
func TestDistanceIsSymmetricAndNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		d1 := Distance(a, b)
		d2 := Distance(b, a)
		if d1 < 0 {
			t.Fatalf("negative distance %f", d1)
		}
		if d1 != d2 {
			t.Fatalf("Distance not symmetric: %f vs %f", d1, d2)
		}
	})
}

// TestOverlappingRectsHaveZeroDistance checks that any two intersecting
// rectangles report zero separation, the property CheckClearances depends
// on to distinguish "touching" from "too close".
func TestOverlappingRectsHaveZeroDistance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawRect(t, "a")
		b := drawRect(t, "b")
		if Intersects(a, b) {
			d := Distance(a, b)
			if d > EPS {
				t.Fatalf("intersecting rects reported distance %f", d)
			}
		}
	})
}

// TestPointInPolygonAgreesWithContainsAtCorners checks that every corner of
// a rectangle fully inside a room polygon is itself reported as inside that
// polygon, the property BuildHeatmap relies on when it walks grid cells.
func TestPointInPolygonAgreesWithContainsAtCorners(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roomW := rapid.Float64Range(2, 20).Draw(t, "roomW")
		roomD := rapid.Float64Range(2, 20).Draw(t, "roomD")
		room := Rect{X: 0, Y: 0, W: roomW, D: roomD}
		poly := room.Corners()

		innerW := rapid.Float64Range(0.1, roomW).Draw(t, "innerW")
		innerD := rapid.Float64Range(0.1, roomD).Draw(t, "innerD")
		inner := Rect{X: 0, Y: 0, W: innerW, D: innerD}

		if !Contains(poly[:], inner) {
			return
		}
		for _, c := range inner.Corners() {
			if !PointInPolygon(poly[:], c) {
				t.Fatalf("corner %+v of fully-contained rect %+v reported outside polygon", c, inner)
			}
		}
	})
}
