package export

import (
	"strings"
	"testing"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

func room5x4() catalog.Room {
	return catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 5, D: 4}, AreaSqm: 20}
}

func sampleLayout() layout.Layout {
	return layout.Layout{
		ID:       "layout-1",
		Strategy: layout.StrategyConversation,
		Placements: []layout.PlacementEntry{
			{
				Placement: layout.Placement{ItemID: "sofa1", XCM: 50, YCM: 50, Rotation: 0, Confidence: 0.9},
				Item:      catalog.CatalogItem{ID: "sofa1", Name: "sofa_3seat", Category: catalog.CategorySeating, WidthCM: 228, DepthCM: 95, HeightCM: 85, PriceCents: 59900},
			},
		},
		Score: 0.82,
		Metrics: layout.Metrics{TotalCostCents: 59900, FurnitureCount: 1, CoverageRatio: 0.1},
	}
}

func TestExportSVGContainsFurnitureRect(t *testing.T) {
	data, err := ExportSVG(room5x4(), sampleLayout(), nil, DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	svgStr := string(data)
	if !strings.Contains(svgStr, "<svg") {
		t.Fatalf("expected an <svg> root element, got: %s", svgStr)
	}
	if !strings.Contains(svgStr, "sofa_3seat") {
		t.Fatalf("expected a label for the placed item, got: %s", svgStr)
	}
}

func TestExportSVGRejectsZeroAreaRoom(t *testing.T) {
	bad := catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 0, D: 4}}
	if _, err := ExportSVG(bad, sampleLayout(), nil, DefaultSVGOptions()); err == nil {
		t.Fatalf("expected an error for a zero-width room")
	}
}

func TestExportJSONRoundTrips(t *testing.T) {
	b := Bundle{Layout: sampleLayout(), Report: &validator.Report{OverallScore: 0.9}}
	data, err := ExportJSON(b)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(string(data), "\"layout\"") {
		t.Fatalf("expected a \"layout\" key in exported JSON, got: %s", data)
	}
	compact, err := ExportJSONCompact(b)
	if err != nil {
		t.Fatalf("ExportJSONCompact: %v", err)
	}
	if len(compact) >= len(data) {
		t.Fatalf("expected compact JSON to be shorter than indented JSON")
	}
}
