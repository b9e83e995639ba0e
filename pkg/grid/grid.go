// Package grid discretizes the real-valued room and catalog dimensions the
// solver reasons about into an integer lattice: a fixed-resolution grid in
// centimeters on which every solver variable lives.
//
// The solver's hard-constraint checks never touch floating point (only its
// weighted objective does); every quantity here is an int, and the only
// floating point in this package is the one-time conversion from the
// room's meter-valued bounds into grid cells.
package grid

// DefaultResolutionCM is the solver's grid resolution, 2 cm per cell.
const DefaultResolutionCM = 2

// Rotation is a 90-degree rotation quantum: 0, 1, 2, 3 represent 0, 90,
// 180, and 270 degrees respectively.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// Degrees returns the rotation's angle in degrees.
func (r Rotation) Degrees() int { return int(r) * 90 }

// Footprint is an item's grid-space width and depth at a given rotation.
type Footprint struct {
	WGrid, DGrid int
}

// RoomDims converts a room's real-valued bounds (meters) into grid cell
// counts at the given resolution (cm).
func RoomDims(minX, minY, maxX, maxY float64, resolutionCM int) (wGrid, hGrid int) {
	wGrid = int((maxX - minX) * 100 / float64(resolutionCM))
	hGrid = int((maxY - minY) * 100 / float64(resolutionCM))
	return wGrid, hGrid
}

// ToGrid converts a centimeter quantity to grid cells, truncating. Use this
// only for converting a *position* (a coordinate, not a size) to grid space,
// where truncating towards the room's origin is harmless.
func ToGrid(cm, resolutionCM int) int { return cm / resolutionCM }

// CeilToGrid converts a centimeter quantity to grid cells, rounding up. Use
// this for converting an *extent* (an item footprint dimension, or a
// required clearance or minimum distance) to grid space: the grid model must
// never claim a smaller real-world size than the item or requirement truly
// has, or boundary/overlap/clearance checks performed in grid space become
// optimistic relative to the true continuous geometry.
func CeilToGrid(cm, resolutionCM int) int {
	if cm <= 0 {
		return 0
	}
	return (cm + resolutionCM - 1) / resolutionCM
}

// ToCM converts a grid-cell quantity back to centimeters.
func ToCM(g, resolutionCM int) int { return g * resolutionCM }

// Footprints returns the item's grid footprint at each of the four
// rotations. Rotations 0 and 180 keep (width, depth); 90 and 270 swap them.
// Dimensions are rounded up (CeilToGrid), not truncated: a footprint is an
// extent, and a truncated footprint would let the solver model a smaller
// box than the item's true size, allowing "feasible" placements whose real
// continuous geometry overruns the room boundary or a neighbor's footprint.
func Footprints(widthCM, depthCM, resolutionCM int) [4]Footprint {
	w := CeilToGrid(widthCM, resolutionCM)
	d := CeilToGrid(depthCM, resolutionCM)
	return [4]Footprint{
		Rot0:   {WGrid: w, DGrid: d},
		Rot90:  {WGrid: d, DGrid: w},
		Rot180: {WGrid: w, DGrid: d},
		Rot270: {WGrid: d, DGrid: w},
	}
}

// Fits reports whether the footprint can be placed anywhere in a room of
// the given grid dimensions.
func Fits(f Footprint, wGrid, hGrid int) bool {
	return f.WGrid > 0 && f.DGrid > 0 && f.WGrid <= wGrid && f.DGrid <= hGrid
}

// AnyFits reports whether at least one of the item's four rotated
// footprints fits in a room of the given grid dimensions.
func AnyFits(fps [4]Footprint, wGrid, hGrid int) bool {
	for _, f := range fps {
		if Fits(f, wGrid, hGrid) {
			return true
		}
	}
	return false
}

// ManhattanCornerDistance returns the Manhattan distance between two
// placements' lower-left grid corners. The solver's clearance constraint is
// deliberately defined on corners rather than on the true inter-rectangle
// gap: it is cheaper to encode in a finite-domain model and, at 2 cm
// resolution, empirically adequate. The validator uses the true Euclidean
// inter-rectangle distance instead (see pkg/geometry.Distance); the two
// must never be conflated.
func ManhattanCornerDistance(ax, ay, bx, by int) int {
	return absInt(ax-bx) + absInt(ay-by)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
