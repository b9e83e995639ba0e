package validator

import (
	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// HighSeverityAreaM2 is the overlap-area threshold above which a collision
// is reported as "high" rather than "medium" severity.
const HighSeverityAreaM2 = 0.1

// CollisionPair reports two furniture items whose footprints overlap.
type CollisionPair struct {
	ItemA, ItemB string
	OverlapArea  float64
	Severity     string
}

// Collisions is the collision-detection sub-report of the validator.
type Collisions struct {
	Pairs              []CollisionPair
	BoundaryViolations []string
	WallIntersections  []string
	Violations         []string
}

// TotalCollisions returns the number of colliding furniture pairs.
func (c Collisions) TotalCollisions() int { return len(c.Pairs) }

// CheckCollisions reports furniture-furniture overlaps, placements not
// fully contained by the room polygon, and placements intersecting a
// wall's buffered footprint.
func CheckCollisions(room catalog.Room, entries []layout.PlacementEntry) Collisions {
	var c Collisions
	poly := room.Polygon()

	for i := 0; i < len(entries); i++ {
		fi := entries[i].FootprintM()
		for j := i + 1; j < len(entries); j++ {
			fj := entries[j].FootprintM()
			area := geometry.IntersectionArea(fi, fj)
			if area <= geometry.EPS {
				continue
			}
			severity := "medium"
			if area > HighSeverityAreaM2 {
				severity = "high"
			}
			c.Pairs = append(c.Pairs, CollisionPair{
				ItemA: entries[i].Item.ID, ItemB: entries[j].Item.ID,
				OverlapArea: area, Severity: severity,
			})
			c.Violations = append(c.Violations, "collision between "+entries[i].Item.Name+" and "+entries[j].Item.Name)
		}

		if !geometry.Contains(poly, fi) {
			msg := entries[i].Item.Name + " extends outside room boundary"
			c.BoundaryViolations = append(c.BoundaryViolations, msg)
			c.Violations = append(c.Violations, msg)
		}

		for _, w := range room.Walls {
			buf := geometry.Buffer(w.Start, w.End, w.ThicknessM/2)
			if buf.IntersectsRect(fi) {
				msg := entries[i].Item.Name + " intersects wall " + w.ID
				c.WallIntersections = append(c.WallIntersections, msg)
				c.Violations = append(c.Violations, msg)
			}
		}
	}
	return c
}
