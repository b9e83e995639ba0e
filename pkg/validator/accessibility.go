package validator

import (
	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// Accessibility is the door/window/flow sub-report of the validator.
type Accessibility struct {
	Score               float64
	DoorAccessibility   float64
	WindowAccessibility float64
	FlowEfficiency      float64
	BlockedDoors        int
	BlockedWindows      int
}

// CheckAccessibility reports, per door and window, whether any placement's
// centroid sits within its clearance radius (80cm for doors, 60cm for
// windows by default), and a flow-efficiency figure from the room's
// walkable area.
func CheckAccessibility(room catalog.Room, entries []layout.PlacementEntry, cons constraints.Constraints) Accessibility {
	cons = cons.WithDefaults()

	doorScore, blockedDoors := accessScore(doorPoints(room), entries, cons.MinDoorClearanceM)
	windowScore, blockedWindows := accessScore(windowPoints(room), entries, cons.MinWindowAccessM)

	roomArea := roomPolygonArea(room)
	footprints := make([]geometry.Rect, len(entries))
	for i, e := range entries {
		footprints[i] = e.FootprintM()
	}
	walkable := roomArea - geometry.UnionArea(footprints)
	flowEfficiency := 1.0
	if roomArea > 0 {
		flowEfficiency = clamp01(walkable / (0.4 * roomArea))
	}

	return Accessibility{
		Score:               0.5*doorScore + 0.3*windowScore + 0.2*flowEfficiency,
		DoorAccessibility:   doorScore,
		WindowAccessibility: windowScore,
		FlowEfficiency:      flowEfficiency,
		BlockedDoors:        blockedDoors,
		BlockedWindows:      blockedWindows,
	}
}

// accessScore returns the mean accessibility (1 per unblocked opening, 0
// per blocked) across a set of opening points, and the blocked count. An
// empty opening set scores a perfect 1: a room with no doors or windows
// has nothing to block.
func accessScore(points []geometry.Point, entries []layout.PlacementEntry, clearanceM float64) (float64, int) {
	if len(points) == 0 {
		return 1, 0
	}
	blocked := 0
	for _, p := range points {
		for _, e := range entries {
			f := e.FootprintM()
			if geometry.PointDistance(p, f.Center()) < clearanceM {
				blocked++
				break
			}
		}
	}
	return float64(len(points)-blocked) / float64(len(points)), blocked
}

func doorPoints(room catalog.Room) []geometry.Point {
	pts := make([]geometry.Point, len(room.Doors))
	for i, d := range room.Doors {
		pts[i] = d.Position
	}
	return pts
}

func windowPoints(room catalog.Room) []geometry.Point {
	pts := make([]geometry.Point, len(room.Windows))
	for i, w := range room.Windows {
		pts[i] = w.Position
	}
	return pts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
