package constraints

import "github.com/caspian-labs/roomcraft/pkg/grid"

// Placed is one candidate item's tentative placement on the solver grid.
type Placed struct {
	ItemIndex int
	X, Y      int
	Rot       grid.Rotation
}

// footprint returns the placed item's footprint at its assigned rotation.
func (m *Model) footprint(p Placed) grid.Footprint {
	return m.Items[p.ItemIndex].Footprints[p.Rot]
}

// FitsBoundary reports whether placing item idx at (x, y, rot) keeps its
// footprint within the room grid.
func (m *Model) FitsBoundary(idx, x, y int, rot grid.Rotation) bool {
	f := m.Items[idx].Footprints[rot]
	if f.WGrid == 0 || f.DGrid == 0 {
		return false
	}
	return x >= 0 && y >= 0 && x+f.WGrid <= m.WGrid && y+f.DGrid <= m.HGrid
}

// NoOverlap reports whether placing item idx at (x, y, rot) avoids
// overlapping every already-placed item: at
// least one of the four canonical axis separations must hold for every
// pair.
func (m *Model) NoOverlap(placed []Placed, idx, x, y int, rot grid.Rotation) bool {
	f := m.Items[idx].Footprints[rot]
	for _, other := range placed {
		if other.ItemIndex == idx {
			continue
		}
		of := m.footprint(other)
		separated := x+f.WGrid <= other.X ||
			other.X+of.WGrid <= x ||
			y+f.DGrid <= other.Y ||
			other.Y+of.DGrid <= y
		if !separated {
			return false
		}
	}
	return true
}

// ClearanceOK reports whether placing item idx at (x, y, rot) keeps at
// least the required Manhattan corner clearance from every already-placed
// item. This is deliberately a corner-to-corner
// Manhattan measure, not the true inter-rectangle gap; see
// pkg/grid.ManhattanCornerDistance.
func (m *Model) ClearanceOK(placed []Placed, idx, x, y int) bool {
	for _, other := range placed {
		if other.ItemIndex == idx {
			continue
		}
		required := m.Items[idx].ClearanceGrid
		if oc := m.Items[other.ItemIndex].ClearanceGrid; oc > required {
			required = oc
		}
		if grid.ManhattanCornerDistance(x, y, other.X, other.Y) < required {
			return false
		}
	}
	return true
}

// DoorClearanceOK reports whether (x, y) keeps at least DoorGrid Manhattan
// distance from every door.
func (m *Model) DoorClearanceOK(x, y int) bool {
	for _, d := range m.Doors {
		if grid.ManhattanCornerDistance(x, y, d.X, d.Y) < m.DoorGrid {
			return false
		}
	}
	return true
}

// WindowClearanceOK reports whether (x, y) keeps at least WindowGrid
// Manhattan distance from every window, when the item is tall enough to
// matter (only items taller than 100 cm block a window).
func (m *Model) WindowClearanceOK(idx, x, y int) bool {
	if m.Items[idx].Item.HeightCM <= 100 {
		return true
	}
	for _, w := range m.Windows {
		if grid.ManhattanCornerDistance(x, y, w.X, w.Y) < m.WindowGrid {
			return false
		}
	}
	return true
}

// Feasible reports whether placing item idx at (x, y, rot) satisfies every
// hard constraint given the items already placed.
func (m *Model) Feasible(placed []Placed, idx, x, y int, rot grid.Rotation) bool {
	return m.FitsBoundary(idx, x, y, rot) &&
		m.NoOverlap(placed, idx, x, y, rot) &&
		m.ClearanceOK(placed, idx, x, y) &&
		m.DoorClearanceOK(x, y) &&
		m.WindowClearanceOK(idx, x, y)
}
