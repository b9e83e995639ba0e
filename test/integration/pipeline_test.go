package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caspian-labs/roomcraft/pkg/adapter"
	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

func livingRoom() catalog.Room {
	return catalog.Room{
		Bounds: geometry.Rect{X: 0, Y: 0, W: 5.5, D: 4.2},
		Doors: []catalog.Door{
			{ID: "door1", Position: geometry.Point{X: 0, Y: 2}, WidthM: 0.9, Swing: catalog.SwingInward},
		},
		Windows: []catalog.Window{
			{ID: "window1", Position: geometry.Point{X: 3, Y: 4.2}, WidthM: 1.2, HeightM: 1.1, SillHeightM: 0.9},
		},
		AreaSqm: 23.1,
	}
}

func sampleCatalog() []catalog.CatalogItem {
	return []catalog.CatalogItem{
		{ID: "sofa1", Name: "sofa_3seat", Category: catalog.CategorySeating, WidthCM: 228, DepthCM: 95, HeightCM: 85, PriceCents: 89900, Priority: 1},
		{ID: "chair1", Name: "armchair", Category: catalog.CategorySeating, WidthCM: 80, DepthCM: 85, HeightCM: 90, PriceCents: 34900, Priority: 2},
		{ID: "table1", Name: "coffee_table", Category: catalog.CategoryTable, WidthCM: 110, DepthCM: 60, HeightCM: 45, PriceCents: 19900, Priority: 2},
		{ID: "tv1", Name: "tv_stand", Category: catalog.CategoryStorage, WidthCM: 160, DepthCM: 40, HeightCM: 50, PriceCents: 24900, Priority: 3},
		{ID: "lamp1", Name: "floor_lamp", Category: catalog.CategoryLighting, WidthCM: 35, DepthCM: 35, HeightCM: 150, PriceCents: 7900, Priority: 4},
	}
}

// TestIntegration_CompletePipeline runs the full Catalog Filter -> Solver ->
// Scorer -> Validator pipeline end to end through the adapter's public
// entrypoint, from raw inputs to validated, scored layouts.
func TestIntegration_CompletePipeline(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Seed = 42
	cfg.TimeBudgetSeconds = 2
	cfg.Workers = 2

	results, err := adapter.RunLayoutJob(
		context.Background(),
		livingRoom(),
		sampleCatalog(),
		[]catalog.StyleTag{"modern"},
		nil,
		constraints.Defaults(),
		cfg,
	)
	require.NoError(t, err)
	require.NotEmpty(t, results, "expected at least one strategy to produce a solvable layout")

	for _, r := range results {
		require.NotEmpty(t, r.Layout.ID)
		require.NotEmpty(t, r.Layout.Placements)
		require.GreaterOrEqual(t, r.Layout.Score, 0.0)
		require.LessOrEqual(t, r.Layout.Score, 1.0)
		require.NotNil(t, r.Report)
		require.GreaterOrEqual(t, r.Report.OverallScore, 0.0)
	}
}

// TestIntegration_HandleLayoutJobThenValidationJob exercises the adapter's
// message-bus-facing handlers back to back, the shape a layout.jobs consumer
// followed by a validation.jobs consumer would see in production.
func TestIntegration_HandleLayoutJobThenValidationJob(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.Seed = 7
	cfg.TimeBudgetSeconds = 2
	cfg.Workers = 2

	layoutRec := adapter.LayoutJobRecord{
		ID:        "job-int-1",
		RoomID:    "room-int-1",
		FloorPlan: livingRoom(),
		Catalog:   sampleCatalog(),
	}
	layoutResult := adapter.HandleLayoutJob(context.Background(), layoutRec, cfg)
	require.Equal(t, adapter.StatusCompleted, layoutResult.Status)
	require.NotEmpty(t, layoutResult.Layouts)

	chosen := layoutResult.Layouts[0]
	validationRec := adapter.ValidationJobRecord{
		ID:        "vjob-int-1",
		LayoutID:  chosen.ID,
		RoomID:    "room-int-1",
		FloorPlan: livingRoom(),
		Layout:    chosen,
	}
	validationResult := adapter.HandleValidationJob(context.Background(), validationRec)
	require.Equal(t, adapter.StatusCompleted, validationResult.Status)
	require.IsType(t, &validator.Report{}, validationResult.Report)
}

// TestIntegration_S4FunctionalPairMeetsTargetBand drives the solver itself
// (not just the scorer in isolation) on a canonical scenario: a sofa and
// coffee table in an empty 5x4m room. The solver's functional-pair repair
// pass should land the coffee table within 50+-20cm of the sofa's forward
// edge, and the conversation-strategy layout should score >= 0.75.
func TestIntegration_S4FunctionalPairMeetsTargetBand(t *testing.T) {
	room := catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 5, D: 4}, AreaSqm: 20}
	s4Catalog := []catalog.CatalogItem{
		{ID: "sofa1", Name: "sofa_3seat", Category: catalog.CategorySeating, WidthCM: 228, DepthCM: 95, HeightCM: 85, Priority: 1},
		{ID: "table1", Name: "coffee_table", Category: catalog.CategoryTable, WidthCM: 120, DepthCM: 60, HeightCM: 45, Priority: 2},
	}

	cfg := layout.DefaultConfig()
	cfg.Seed = 99
	cfg.TimeBudgetSeconds = 2
	cfg.Workers = 4

	results, err := adapter.RunLayoutJob(context.Background(), room, s4Catalog, nil, nil, constraints.Defaults(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	var conversation *layout.Layout
	for i := range results {
		if results[i].Layout.Strategy == layout.StrategyConversation {
			conversation = &results[i].Layout
			break
		}
	}
	require.NotNil(t, conversation, "expected a conversation-strategy layout")
	require.Len(t, conversation.Placements, 2, "expected both the sofa and the coffee table to be placed")

	var sofa, table layout.PlacementEntry
	for _, p := range conversation.Placements {
		switch p.Item.ID {
		case "sofa1":
			sofa = p
		case "table1":
			table = p
		}
	}
	require.NotEmpty(t, sofa.Item.ID, "sofa must be placed")
	require.NotEmpty(t, table.Item.ID, "coffee table must be placed")

	offset := sofaForwardOffsetCM(sofa, table)
	require.GreaterOrEqual(t, offset, 30.0, "coffee table should sit at least 30cm ahead of the sofa's forward edge")
	require.LessOrEqual(t, offset, 70.0, "coffee table should sit at most 70cm ahead of the sofa's forward edge")

	require.GreaterOrEqual(t, conversation.Score, 0.75, "conversation layout with a matched sofa/coffee-table pair should score >= 0.75")
}

// sofaForwardOffsetCM mirrors pkg/scorer's private helper of the same name:
// the gap, in cm, from the sofa's forward edge (the edge its rotation
// faces) to the coffee table's near edge along the sofa's facing axis.
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
