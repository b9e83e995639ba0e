package constraints

import (
	"testing"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
)

func room5x4() catalog.Room {
	return catalog.Room{
		Bounds:  geometry.Rect{X: 0, Y: 0, W: 5, D: 4},
		AreaSqm: 20,
	}
}

func sofa3seat(id string) catalog.CatalogItem {
	return catalog.CatalogItem{
		ID: id, Name: "sofa_3seat", Category: catalog.CategorySeating,
		WidthCM: 228, DepthCM: 95, HeightCM: 85, Priority: 1,
	}
}

// One sofa in an empty 5x4 room must fit.
func TestBuildModelMinimalFit(t *testing.T) {
	m, err := BuildModel(room5x4(), []catalog.CatalogItem{sofa3seat("sofa1")}, 2, Defaults())
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if len(m.Items) != 1 {
		t.Fatalf("expected 1 surviving item, got %d", len(m.Items))
	}
	if m.WGrid != 250 || m.HGrid != 200 {
		t.Fatalf("expected 250x200 grid cells at 2cm resolution, got %dx%d", m.WGrid, m.HGrid)
	}
}

func TestBuildModelDropsOversizedItem(t *testing.T) {
	tiny := catalog.Room{Bounds: geometry.Rect{X: 0, Y: 0, W: 1, D: 1}, AreaSqm: 1}
	_, err := BuildModel(tiny, []catalog.CatalogItem{sofa3seat("sofa1")}, 2, Defaults())
	if err == nil {
		t.Fatal("expected BuildModel to fail when no item fits")
	}
}

func TestFitsBoundary(t *testing.T) {
	m, _ := BuildModel(room5x4(), []catalog.CatalogItem{sofa3seat("sofa1")}, 2, Defaults())
	if !m.FitsBoundary(0, 0, 0, 0) {
		t.Error("expected origin placement to fit")
	}
	if m.FitsBoundary(0, m.WGrid, m.HGrid, 0) {
		t.Error("expected out-of-bounds placement to be rejected")
	}
}

func TestNoOverlapDetectsCollision(t *testing.T) {
	m, _ := BuildModel(room5x4(), []catalog.CatalogItem{sofa3seat("a"), sofa3seat("b")}, 2, Defaults())
	placed := []Placed{{ItemIndex: 0, X: 0, Y: 0, Rot: 0}}
	if m.NoOverlap(placed, 1, 1, 1, 0) {
		t.Error("expected overlapping placement to be rejected")
	}
	f := m.Items[0].Footprints[0]
	if !m.NoOverlap(placed, 1, f.WGrid, 0, 0) {
		t.Error("expected adjacent non-overlapping placement to be accepted")
	}
}

func TestDoorClearanceOK(t *testing.T) {
	room := room5x4()
	room.Doors = []catalog.Door{{ID: "d1", Position: geometry.Point{X: 2.5, Y: 0}, WidthM: 0.8}}
	m, err := BuildModel(room, []catalog.CatalogItem{sofa3seat("a")}, 2, Defaults())
	if err != nil {
		t.Fatalf("BuildModel: %v", err)
	}
	if m.DoorGrid != 40 { // 80cm / 2cm
		t.Fatalf("expected door clearance grid of 40, got %d", m.DoorGrid)
	}
	doorX, doorY := m.Doors[0].X, m.Doors[0].Y
	if m.DoorClearanceOK(doorX, doorY) {
		t.Error("expected placement at the door itself to violate clearance")
	}
	if !m.DoorClearanceOK(doorX+100, doorY+100) {
		t.Error("expected a far placement to satisfy door clearance")
	}
}

func TestBuildFunctionalPairsSofaCoffee(t *testing.T) {
	items := []ModelItem{
		{Item: catalog.CatalogItem{ID: "a", Name: "Modern Sofa"}},
		{Item: catalog.CatalogItem{ID: "b", Name: "Glass Coffee Table"}},
		{Item: catalog.CatalogItem{ID: "c", Name: "Bookshelf"}},
	}
	pairs := BuildFunctionalPairs(items)
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one sofa-coffee pair, got %d", len(pairs))
	}
	if pairs[0].Kind != PairSofaCoffee {
		t.Errorf("expected PairSofaCoffee, got %s", pairs[0].Kind)
	}
}
