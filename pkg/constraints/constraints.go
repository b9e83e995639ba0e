// Package constraints builds the finite-domain placement model the solver
// searches over: per-item grid footprints, hard geometric constraints
// (boundary, non-overlap, clearance, door, window), and the soft
// functional-pair table.
package constraints

import (
	"fmt"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/grid"
	"github.com/caspian-labs/roomcraft/pkg/roomerr"
)

// Constraints holds the clearance and viewing-distance overrides a layout
// job may supply; zero values fall back to Defaults().
type Constraints struct {
	MinWalkwayWidthM      float64
	MinDoorClearanceM     float64
	MinWindowAccessM      float64
	TVViewingDistanceMinM float64
	TVViewingDistanceMaxM float64
	TVViewingAngleMaxDeg  float64
}

// Defaults returns the standard clearance and viewing-distance constraints.
func Defaults() Constraints {
	return Constraints{
		MinWalkwayWidthM:      0.8,
		MinDoorClearanceM:     0.8,
		MinWindowAccessM:      0.6,
		TVViewingDistanceMinM: 1.5,
		TVViewingDistanceMaxM: 4.0,
		TVViewingAngleMaxDeg:  30,
	}
}

// WithDefaults fills any zero-valued field of c with the corresponding
// default, returning the merged Constraints.
func (c Constraints) WithDefaults() Constraints {
	d := Defaults()
	if c.MinWalkwayWidthM == 0 {
		c.MinWalkwayWidthM = d.MinWalkwayWidthM
	}
	if c.MinDoorClearanceM == 0 {
		c.MinDoorClearanceM = d.MinDoorClearanceM
	}
	if c.MinWindowAccessM == 0 {
		c.MinWindowAccessM = d.MinWindowAccessM
	}
	if c.TVViewingDistanceMinM == 0 {
		c.TVViewingDistanceMinM = d.TVViewingDistanceMinM
	}
	if c.TVViewingDistanceMaxM == 0 {
		c.TVViewingDistanceMaxM = d.TVViewingDistanceMaxM
	}
	if c.TVViewingAngleMaxDeg == 0 {
		c.TVViewingAngleMaxDeg = d.TVViewingAngleMaxDeg
	}
	return c
}

// GridPoint is an integer grid coordinate.
type GridPoint struct{ X, Y int }

// ModelItem is a candidate item together with its precomputed grid
// footprints and clearance requirement.
type ModelItem struct {
	Item          catalog.CatalogItem
	Footprints    [4]grid.Footprint
	ClearanceGrid int
}

// Model is the fully-built placement model for one solver run: a fixed
// room grid, the candidate items that survived footprint pruning, door and
// window positions in grid space, and the soft functional-pair table.
type Model struct {
	WGrid, HGrid    int
	ResolutionCM    int
	Items           []ModelItem
	Doors           []GridPoint
	DoorGrid        int
	Windows         []GridPoint
	WindowGrid      int
	FunctionalPairs []FunctionalPair
	Constraints     Constraints
}

// BuildModel discretizes room and item geometry onto the solver grid,
// drops items that cannot fit in any rotation, and computes
// the door/window clearance requirements and functional-pair table.
func BuildModel(room catalog.Room, items []catalog.CatalogItem, resolutionCM int, cons Constraints) (*Model, error) {
	if resolutionCM <= 0 {
		resolutionCM = grid.DefaultResolutionCM
	}
	cons = cons.WithDefaults()

	wGrid, hGrid := grid.RoomDims(room.Bounds.X, room.Bounds.Y, room.Bounds.MaxX(), room.Bounds.MaxY(), resolutionCM)
	if wGrid <= 0 || hGrid <= 0 {
		return nil, roomerr.New(roomerr.InputValidation, "constraints.BuildModel", fmt.Errorf("room grid dimensions must be positive, got %dx%d", wGrid, hGrid))
	}

	modelItems := make([]ModelItem, 0, len(items))
	for _, item := range items {
		fps := grid.Footprints(item.WidthCM, item.DepthCM, resolutionCM)
		if !grid.AnyFits(fps, wGrid, hGrid) {
			continue
		}
		modelItems = append(modelItems, ModelItem{
			Item:          item,
			Footprints:    fps,
			ClearanceGrid: grid.CeilToGrid(item.Clearances.EffectiveAll(), resolutionCM),
		})
	}
	if len(modelItems) == 0 {
		return nil, roomerr.New(roomerr.InputValidation, "constraints.BuildModel", fmt.Errorf("no catalog items fit the room"))
	}

	doors := make([]GridPoint, 0, len(room.Doors))
	for _, d := range room.Doors {
		doors = append(doors, toGridPoint(d.Position.X, d.Position.Y, room.Bounds.X, room.Bounds.Y, resolutionCM))
	}
	windows := make([]GridPoint, 0, len(room.Windows))
	for _, w := range room.Windows {
		windows = append(windows, toGridPoint(w.Position.X, w.Position.Y, room.Bounds.X, room.Bounds.Y, resolutionCM))
	}

	m := &Model{
		WGrid:        wGrid,
		HGrid:        hGrid,
		ResolutionCM: resolutionCM,
		Items:        modelItems,
		Doors:        doors,
		DoorGrid:     grid.CeilToGrid(int(cons.MinDoorClearanceM*100), resolutionCM),
		Windows:      windows,
		WindowGrid:   grid.CeilToGrid(int(cons.MinWindowAccessM*100), resolutionCM),
		Constraints:  cons,
	}
	m.FunctionalPairs = BuildFunctionalPairs(modelItems)
	return m, nil
}

func toGridPoint(xM, yM, originXM, originYM float64, resolutionCM int) GridPoint {
	return GridPoint{
		X: grid.ToGrid(int((xM-originXM)*100), resolutionCM),
		Y: grid.ToGrid(int((yM-originYM)*100), resolutionCM),
	}
}
