package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/roomerr"
)

func testRoom() catalog.Room {
	return catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 5, D: 4}, AreaSqm: 20}
}

func testCatalog() []catalog.CatalogItem {
	return []catalog.CatalogItem{
		{ID: "sofa1", Name: "sofa_3seat", Category: catalog.CategorySeating, WidthCM: 228, DepthCM: 95, HeightCM: 85, Priority: 1},
		{ID: "table1", Name: "coffee_table", Category: catalog.CategoryTable, WidthCM: 110, DepthCM: 60, HeightCM: 45, Priority: 2},
	}
}

func fastConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.Seed = 42
	cfg.TimeBudgetSeconds = 1
	cfg.Workers = 2
	return cfg
}

func TestRunLayoutJobProducesVariants(t *testing.T) {
	results, err := RunLayoutJob(context.Background(), testRoom(), testCatalog(), nil, nil, constraints.Defaults(), fastConfig())
	require.NoError(t, err)
	require.NotEmpty(t, results, "expected at least one solvable variant for a simple room")
	for _, r := range results {
		require.NotEmpty(t, r.Layout.ID)
		require.NotNil(t, r.Report)
		require.GreaterOrEqual(t, r.Layout.Score, 0.0)
		require.LessOrEqual(t, r.Layout.Score, 1.0)
	}
}

func TestRunLayoutJobEmptyCatalogIsBenign(t *testing.T) {
	results, err := RunLayoutJob(context.Background(), testRoom(), nil, nil, nil, constraints.Defaults(), fastConfig())
	require.NoError(t, err)
	require.Empty(t, results)
}

// TestRunLayoutJobBudgetZeroIsBenign covers the boundary
// behavior where a budget of zero drops every item in catalog.Filter's budget
// rule (price_cents > 0.4*budget), emptying the catalog before it ever
// reaches the solver. That is explicitly "layouts = []", not a failure.
func TestRunLayoutJobBudgetZeroIsBenign(t *testing.T) {
	priced := []catalog.CatalogItem{
		{ID: "sofa1", Name: "sofa_3seat", Category: catalog.CategorySeating, WidthCM: 228, DepthCM: 95, HeightCM: 85, PriceCents: 50000},
	}
	zero := 0
	results, err := RunLayoutJob(context.Background(), testRoom(), priced, nil, &zero, constraints.Defaults(), fastConfig())
	require.NoError(t, err)
	require.Empty(t, results)
}

// TestRunLayoutJobNoItemFitsRoomIsInputValidation covers the one remaining
// InputValidation path: items survive catalog.Filter (so there was
// something to place) but none of them fit the room in any rotation, so
// constraints.BuildModel itself rejects the candidate set.
func TestRunLayoutJobNoItemFitsRoomIsInputValidation(t *testing.T) {
	huge := []catalog.CatalogItem{{ID: "giant", Name: "sectional", Category: catalog.CategorySeating, WidthCM: 900, DepthCM: 900, HeightCM: 90}}
	_, err := RunLayoutJob(context.Background(), testRoom(), huge, nil, nil, constraints.Defaults(), fastConfig())
	require.Error(t, err)
	require.Equal(t, roomerr.InputValidation, roomerr.KindOf(err))
}

func TestRunLayoutJobInvalidRoomIsInputValidation(t *testing.T) {
	bad := catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 0, D: 4}}
	_, err := RunLayoutJob(context.Background(), bad, testCatalog(), nil, nil, constraints.Defaults(), fastConfig())
	require.Error(t, err)
	require.Equal(t, roomerr.InputValidation, roomerr.KindOf(err))
}
