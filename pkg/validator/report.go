package validator

import (
	"context"
	"fmt"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/roomerr"
)

// Metrics summarizes the report's headline numbers.
type Metrics struct {
	TotalViolations    int
	AccessibilityScore float64
	FlowEfficiency     float64
	SpaceUtilization   float64
}

// Report is the complete output of the geometry validator for one layout.
type Report struct {
	OverallScore    float64
	Collisions      Collisions
	Clearances      Clearances
	Accessibility   Accessibility
	Heatmap         Heatmap
	Recommendations []string
	Metrics         Metrics
}

// Validate runs every geometry check against a finalized set of
// placements and returns the combined report. It never mutates its inputs
// and performs no I/O, honoring ctx only as a cooperative cancellation
// point for callers that wrap many validations.
func Validate(ctx context.Context, room catalog.Room, entries []layout.PlacementEntry, cons constraints.Constraints) (*Report, error) {
	if err := room.Validate(); err != nil {
		return nil, roomerr.New(roomerr.InputValidation, "validator.Validate", fmt.Errorf("invalid room: %w", err))
	}
	select {
	case <-ctx.Done():
		return nil, roomerr.New(roomerr.Internal, "validator.Validate", ctx.Err())
	default:
	}

	collisions := CheckCollisions(room, entries)
	clearances := CheckClearances(room, entries)
	accessibility := CheckAccessibility(room, entries, cons)
	heatmap := BuildHeatmap(room, entries)

	base := accessibility.Score
	collisionPenalty := clamp01(float64(collisions.TotalCollisions()) * 0.2)
	clearancePenalty := clamp01(float64(clearances.TotalIssues()) * 0.1)
	overall := clamp01(base * (1 - collisionPenalty) * (1 - clearancePenalty))

	spaceUtilization := spaceUtilizationScore(room, entries)

	return &Report{
		OverallScore:    overall,
		Collisions:      collisions,
		Clearances:      clearances,
		Accessibility:   accessibility,
		Heatmap:         heatmap,
		Recommendations: recommendations(collisions, clearances, accessibility),
		Metrics: Metrics{
			TotalViolations:    collisions.TotalCollisions() + clearances.TotalIssues(),
			AccessibilityScore: accessibility.Score,
			FlowEfficiency:     accessibility.FlowEfficiency,
			SpaceUtilization:   spaceUtilization,
		},
	}, nil
}

// idealUtilizationLow and idealUtilizationHigh bound the 25%-35% coverage
// band scored as ideal space utilization.
const (
	idealUtilizationLow  = 0.25
	idealUtilizationHigh = 0.35
)

func spaceUtilizationScore(room catalog.Room, entries []layout.PlacementEntry) float64 {
	roomArea := roomPolygonArea(room)
	if roomArea <= 0 {
		return 0
	}
	furnitureArea := 0.0
	for _, e := range entries {
		furnitureArea += e.FootprintM().Area()
	}
	ratio := furnitureArea / roomArea
	switch {
	case ratio >= idealUtilizationLow && ratio <= idealUtilizationHigh:
		return 1
	case ratio < idealUtilizationLow:
		return ratio / idealUtilizationLow
	default:
		return clamp01(1 - (ratio-idealUtilizationHigh)/0.3)
	}
}

// recommendations generates the deterministic rule-keyed suggestion list:
// one fixed string per violated condition, in a fixed order. Boundary
// violations get their own entry, distinct from furniture collisions.
func recommendations(c Collisions, cl Clearances, a Accessibility) []string {
	var recs []string
	if c.TotalCollisions() > 0 {
		recs = append(recs, "Move overlapping furniture to eliminate collisions")
	}
	if len(c.BoundaryViolations) > 0 {
		recs = append(recs, "Ensure all furniture fits within room boundaries")
	}
	if cl.TotalIssues() > 0 {
		recs = append(recs, "Increase spacing between furniture for better flow")
	}
	if cl.WalkableAreaRatio < 0.3 {
		recs = append(recs, "Reduce furniture density to improve walkability")
	}
	if a.BlockedDoors > 0 {
		recs = append(recs, "Clear pathways to doors for emergency access")
	}
	if a.BlockedWindows > 0 {
		recs = append(recs, "Improve access to windows for natural light and ventilation")
	}
	if a.FlowEfficiency < 0.7 {
		recs = append(recs, "Reorganize furniture to create better navigation paths")
	}
	return recs
}
