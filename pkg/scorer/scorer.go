// Package scorer rescores a solver's placement set into four weighted
// sub-scores (placement, flow, function, aesthetic) and
// produces the layout's final score and metrics. Rationale text lives in
// rationale.go.
package scorer

import (
	"math"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// Weights are the fixed sub-score weights combined into the
// final score: 0.30 placement + 0.30 flow + 0.25 function + 0.15 aesthetic.
const (
	WeightPlacement = 0.30
	WeightFlow      = 0.30
	WeightFunction  = 0.25
	WeightAesthetic = 0.15
)

// walkwayBandWidthM is the 60 cm strip width of the
// door-to-opposite-wall flow band.
const walkwayBandWidthM = 0.6

// SubScores holds the four component scores, each in [0, 1].
type SubScores struct {
	Placement float64
	Flow      float64
	Function  float64
	Aesthetic float64
}

// Final combines the four sub-scores with the fixed weights above.
func (s SubScores) Final() float64 {
	return WeightPlacement*s.Placement + WeightFlow*s.Flow + WeightFunction*s.Function + WeightAesthetic*s.Aesthetic
}

// Score computes a layout's sub-scores, final score, and metrics for one
// placement set against its room and candidate functional pairs. pairs
// should be the same constraints.FunctionalPair table the model builder
// derived for this candidate set, so the scorer and solver agree on which
// items are functionally related.
func Score(room catalog.Room, entries []layout.PlacementEntry, pairs []constraints.FunctionalPair) (SubScores, layout.Metrics) {
	metrics := computeMetrics(room, entries)
	if len(entries) == 0 {
		return SubScores{Placement: 1, Flow: 1, Function: 1, Aesthetic: 1}, metrics
	}

	matched := matchedPairs(entries, pairs)
	return SubScores{
		Placement: placementScore(entries, pairs, matched),
		Flow:      flowScore(room, entries),
		Function:  functionScore(pairs, matched),
		Aesthetic: aestheticScore(room, entries),
	}, metrics
}

func computeMetrics(room catalog.Room, entries []layout.PlacementEntry) layout.Metrics {
	totalCost := 0
	footprintArea := 0.0
	for _, e := range entries {
		totalCost += e.Item.PriceCents
		f := e.FootprintM()
		footprintArea += f.Area()
	}
	coverage := 0.0
	if room.AreaSqm > 0 {
		coverage = footprintArea / room.AreaSqm
	}
	return layout.Metrics{
		TotalCostCents: totalCost,
		FurnitureCount: len(entries),
		CoverageRatio:  coverage,
		FlowScore:      flowScore(room, entries),
	}
}

// matchedPairs reports, for each functional pair, whether the two items'
// actual placements satisfy the pair's target band.
func matchedPairs(entries []layout.PlacementEntry, pairs []constraints.FunctionalPair) []bool {
	matched := make([]bool, len(pairs))
	for i, pair := range pairs {
		if pair.AIndex >= len(entries) || pair.BIndex >= len(entries) {
			continue
		}
		a, b := entries[pair.AIndex], entries[pair.BIndex]
		matched[i] = pairMatches(pair.Kind, a, b)
	}
	return matched
}

func pairMatches(kind constraints.PairKind, a, b layout.PlacementEntry) bool {
	switch kind {
	case constraints.PairSofaCoffee:
		offset := sofaForwardOffsetCM(a, b)
		lo := float64(constraints.SofaCoffeeTargetCM - constraints.SofaCoffeeBandCM)
		hi := float64(constraints.SofaCoffeeTargetCM + constraints.SofaCoffeeBandCM)
		return offset >= lo && offset <= hi
	case constraints.PairDeskChair:
		d := manhattanCM(a, b)
		return d >= float64(constraints.DeskChairMinCM) && d <= float64(constraints.DeskChairMaxCM)
	case constraints.PairTVSofa:
		d := manhattanCM(a, b)
		return d >= float64(constraints.TVSofaMinCM) && d <= float64(constraints.TVSofaMaxCM)
	default:
		return false
	}
}

func manhattanCM(a, b layout.PlacementEntry) float64 {
	return math.Abs(float64(a.Placement.XCM-b.Placement.XCM)) + math.Abs(float64(a.Placement.YCM-b.Placement.YCM))
}

// sofaForwardOffsetCM returns the distance from the sofa's forward edge
// (the edge its rotation faces) to the coffee table's near edge, along the
// sofa's facing axis.
func sofaForwardOffsetCM(sofa, table layout.PlacementEntry) float64 {
	sf := sofa.FootprintM()
	tf := table.FootprintM()
	var gapM float64
	switch sofa.Placement.Rotation {
	case 0:
		gapM = tf.Y - sf.MaxY()
	case 180:
		gapM = sf.Y - tf.MaxY()
	case 90:
		gapM = tf.X - sf.MaxX()
	case 270:
		gapM = sf.X - tf.MaxX()
	}
	return gapM * 100
}

// placementScore is the mean of (1 - violations_i) across all placed items,
// where violations_i counts how many of the functional pairs item i
// participates in miss their target band, clamped to [0, 1].
func placementScore(entries []layout.PlacementEntry, pairs []constraints.FunctionalPair, matched []bool) float64 {
	misses := make([]int, len(entries))
	for i, pair := range pairs {
		if pair.AIndex >= len(entries) || pair.BIndex >= len(entries) {
			continue
		}
		if !matched[i] {
			misses[pair.AIndex]++
			misses[pair.BIndex]++
		}
	}
	total := 0.0
	for i := range entries {
		total += 1 - float64(misses[i])
	}
	return clamp01(total / float64(len(entries)))
}

// functionScore is the fraction of functional pairs actually matched
// within tolerance. A layout with no functional pairs scores a perfect 1
// (there is nothing to get wrong).
func functionScore(pairs []constraints.FunctionalPair, matched []bool) float64 {
	if len(pairs) == 0 {
		return 1
	}
	hit := 0
	for _, m := range matched {
		if m {
			hit++
		}
	}
	return float64(hit) / float64(len(pairs))
}

// flowScore measures how much furniture intrudes on the 60 cm walkway band
// running from each door into the room. The band runs
// perpendicular to the door's wall: across the room's full depth for a
// door on a horizontal wall, across the full width for a door on a
// vertical wall. A room with no doors is assumed fully walkable.
func flowScore(room catalog.Room, entries []layout.PlacementEntry) float64 {
	bands := walkwayBands(room)
	if len(bands) == 0 {
		return 1
	}
	bandArea, overlapArea := 0.0, 0.0
	for _, band := range bands {
		bandArea += band.Area()
		for _, e := range entries {
			overlapArea += geometry.IntersectionArea(band, e.FootprintM())
		}
	}
	if bandArea <= 0 {
		return 1
	}
	flow := 1 - overlapArea/bandArea
	return clamp01(flow)
}

// walkwayBands builds one band rectangle per door, oriented by the door's
// wall: if the wall runs horizontally (constant Y) the band spans the
// room's full height at the door's X; if it runs vertically (constant X)
// the band spans the room's full width at the door's Y. A single global
// band per door, not per-door-pair pathfinding.
func walkwayBands(room catalog.Room) []geometry.Rect {
	wallByID := make(map[string]catalog.Wall, len(room.Walls))
	for _, w := range room.Walls {
		wallByID[w.ID] = w
	}
	half := walkwayBandWidthM / 2
	var bands []geometry.Rect
	for _, d := range room.Doors {
		wall, ok := wallByID[d.WallID]
		horizontal := !ok || math.Abs(wall.Start.Y-wall.End.Y) <= math.Abs(wall.Start.X-wall.End.X)
		if horizontal {
			bands = append(bands, geometry.Rect{
				X: d.Position.X - half,
				Y: room.Bounds.Y,
				W: walkwayBandWidthM,
				D: room.Bounds.D,
			})
		} else {
			bands = append(bands, geometry.Rect{
				X: room.Bounds.X,
				Y: d.Position.Y - half,
				W: room.Bounds.W,
				D: walkwayBandWidthM,
			})
		}
	}
	return bands
}

// aestheticScore measures symmetry about the room's centroid as
// 1 - mean_item_centroid_imbalance / half_room_diagonal, where imbalance is
// the mean absolute deviation of each item's distance-from-centroid
// relative to the set's average distance: a layout where furniture sits at
// evenly balanced distances from the room's center scores higher than one
// where items are clustered to one side. The choice of imbalance
// statistic (mean absolute deviation) is discussed in DESIGN.md.
func aestheticScore(room catalog.Room, entries []layout.PlacementEntry) float64 {
	center := room.Bounds.Center()
	halfDiagonal := 0.5 * math.Hypot(room.Bounds.W, room.Bounds.D)
	if halfDiagonal <= 0 {
		return 1
	}
	dists := make([]float64, len(entries))
	mean := 0.0
	for i, e := range entries {
		c := e.FootprintM().Center()
		dists[i] = geometry.PointDistance(c, center)
		mean += dists[i]
	}
	mean /= float64(len(entries))

	imbalance := 0.0
	for _, d := range dists {
		imbalance += math.Abs(d - mean)
	}
	imbalance /= float64(len(entries))

	return clamp01(1 - imbalance/halfDiagonal)
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
