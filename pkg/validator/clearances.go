package validator

import (
	"math"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultClearanceM is the fallback clearance (meters) applied when an
// item's `all` clearance is unset, mirroring catalog.DefaultClearanceCM.
const DefaultClearanceM = 0.4

// ClearanceIssue reports a pair of items closer together than their
// required clearance.
type ClearanceIssue struct {
	ItemA, ItemB      string
	ActualDistanceM   float64
	RequiredDistanceM float64
	DeficitM          float64
}

// Clearances is the clearance-validation sub-report of the validator.
type Clearances struct {
	Issues            []ClearanceIssue
	WalkableAreaRatio float64
	Violations        []string
}

// TotalIssues returns the number of clearance violations found.
func (c Clearances) TotalIssues() int { return len(c.Issues) }

func effectiveClearanceM(item catalog.CatalogItem) float64 {
	if item.Clearances.AllCM != nil {
		return float64(*item.Clearances.AllCM) / 100
	}
	return DefaultClearanceM
}

// CheckClearances reports pairs of items closer than their required
// clearance (the greater of the two items' `all` clearances, each falling
// back to 40cm; front/back/sides values are not consulted) and the room's
// walkable area ratio: the room polygon's area
// minus the union of furniture footprints, over the room's total area,
// computed via orb/planar.Area on the room's polygon ring rather than
// trusting the possibly stale Room.AreaSqm field.
func CheckClearances(room catalog.Room, entries []layout.PlacementEntry) Clearances {
	var c Clearances

	for i := 0; i < len(entries); i++ {
		fi := entries[i].FootprintM()
		for j := i + 1; j < len(entries); j++ {
			fj := entries[j].FootprintM()
			dist := geometry.Distance(fi, fj)
			required := effectiveClearanceM(entries[i].Item)
			if oc := effectiveClearanceM(entries[j].Item); oc > required {
				required = oc
			}
			if dist < required {
				c.Issues = append(c.Issues, ClearanceIssue{
					ItemA: entries[i].Item.ID, ItemB: entries[j].Item.ID,
					ActualDistanceM: dist, RequiredDistanceM: required, DeficitM: required - dist,
				})
				c.Violations = append(c.Violations, "insufficient clearance between "+entries[i].Item.Name+" and "+entries[j].Item.Name)
			}
		}
	}

	roomArea := roomPolygonArea(room)
	footprints := make([]geometry.Rect, len(entries))
	for i, e := range entries {
		footprints[i] = e.FootprintM()
	}
	furnitureArea := geometry.UnionArea(footprints)
	walkable := roomArea - furnitureArea
	if roomArea > 0 {
		c.WalkableAreaRatio = walkable / roomArea
	}
	if c.WalkableAreaRatio < 0.3 {
		c.Violations = append(c.Violations, "insufficient walkable area in room")
	}
	return c
}

// roomPolygonArea computes the room boundary's area via orb/planar,
// converting the room's point-loop polygon into an orb.Ring.
func roomPolygonArea(room catalog.Room) float64 {
	pts := room.Polygon()
	if len(pts) < 3 {
		return room.AreaSqm
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])
	return math.Abs(planar.Area(ring))
}
