// Package layout holds the cross-cutting Placement/Layout data model
// shared by the solver, scorer, and validator, plus the
// pipeline-level Config (config.go) those stages are tuned by. The
// top-level orchestration that wires the Catalog Filter, Solver, Scorer,
// and Validator stages together lives in pkg/adapter, one level up, since
// pkg/solver already depends on this package for its Placement/Strategy
// types and an orchestration function here would close an import cycle.
package layout

import (
	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
)

// Strategy names the objective-weight row a solver run used.
type Strategy string

const (
	StrategyConversation  Strategy = "conversation"
	StrategyWork          Strategy = "work"
	StrategyEntertainment Strategy = "entertainment"
)

// Weights returns the strategy's coverage/budget/flow objective weights.
func (s Strategy) Weights() (coverage, budget, flow float64) {
	switch s {
	case StrategyConversation:
		return 1.0, 0.4, 0.3
	case StrategyWork:
		return 0.8, 0.5, 0.4
	case StrategyEntertainment:
		return 1.0, 0.3, 0.5
	default:
		return 1.0, 0.4, 0.3
	}
}

// AllStrategies lists every strategy in the fixed solve order. Strategies
// within a job run sequentially.
var AllStrategies = []Strategy{StrategyConversation, StrategyWork, StrategyEntertainment}

// Placement is a single item's chosen position and rotation.
// (x_cm, y_cm) is the lower-left corner of the rotated axis-aligned
// bounding box in room-grid space.
type Placement struct {
	ItemID     string  `json:"item_id"`
	XCM        int     `json:"x_cm"`
	YCM        int     `json:"y_cm"`
	Rotation   int     `json:"rotation"` // one of 0, 90, 180, 270
	Confidence float64 `json:"confidence"`
}

// PlacementEntry pairs a Placement with the catalog item it places, so
// downstream consumers never re-join against the catalog by id.
type PlacementEntry struct {
	Placement Placement           `json:"placement"`
	Item      catalog.CatalogItem `json:"item"`
}

// Metrics summarizes a Layout's cost and quality at a glance.
type Metrics struct {
	TotalCostCents int     `json:"total_cost_cents"`
	FurnitureCount int     `json:"furniture_count"`
	CoverageRatio  float64 `json:"coverage_ratio"`
	FlowScore      float64 `json:"flow_score"`
}

// Layout is a complete, scored set of placements produced by one solver
// run. Layouts are immutable once created: a revised layout is a new
// Layout, never a mutation of an existing one.
type Layout struct {
	ID         string           `json:"id"`
	Strategy   Strategy         `json:"strategy"`
	Placements []PlacementEntry `json:"placements"`
	Score      float64          `json:"score"`
	Rationale  string           `json:"rationale"`
	Violations []string         `json:"violations"`
	Metrics    Metrics          `json:"metrics"`
}

// FootprintM returns a placement's axis-aligned footprint in meters,
// swapping width/depth at the 90/270 rotations exactly as pkg/grid does for
// the solver's integer footprints. The scorer and validator both build on
// this rather than re-deriving it, so the two packages can never disagree
// on what an item's rotated footprint is.
func (e PlacementEntry) FootprintM() geometry.Rect {
	w, d := float64(e.Item.WidthCM)/100, float64(e.Item.DepthCM)/100
	if e.Placement.Rotation == 90 || e.Placement.Rotation == 270 {
		w, d = d, w
	}
	return geometry.Rect{
		X: float64(e.Placement.XCM) / 100,
		Y: float64(e.Placement.YCM) / 100,
		W: w,
		D: d,
	}
}
