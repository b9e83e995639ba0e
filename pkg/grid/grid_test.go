package grid

import "testing"

func TestRoomDims(t *testing.T) {
	wGrid, hGrid := RoomDims(0, 0, 5, 4, DefaultResolutionCM)
	if wGrid != 250 || hGrid != 200 {
		t.Fatalf("RoomDims(0,0,5,4) = (%d,%d), want (250,200)", wGrid, hGrid)
	}
}

func TestToGridAndBack(t *testing.T) {
	if g := ToGrid(228, DefaultResolutionCM); g != 114 {
		t.Fatalf("ToGrid(228,2) = %d, want 114", g)
	}
	if cm := ToCM(114, DefaultResolutionCM); cm != 228 {
		t.Fatalf("ToCM(114,2) = %d, want 228", cm)
	}
}

func TestCeilToGridRoundsUpNonMultiples(t *testing.T) {
	if g := CeilToGrid(95, DefaultResolutionCM); g != 48 {
		t.Fatalf("CeilToGrid(95,2) = %d, want 48", g)
	}
	if g := CeilToGrid(228, DefaultResolutionCM); g != 114 {
		t.Fatalf("CeilToGrid(228,2) = %d, want 114 (exact multiple unaffected)", g)
	}
	if g := CeilToGrid(0, DefaultResolutionCM); g != 0 {
		t.Fatalf("CeilToGrid(0,2) = %d, want 0", g)
	}
}

func TestFootprintsSwapOnRightAngles(t *testing.T) {
	fps := Footprints(228, 95, DefaultResolutionCM)
	// 95cm depth isn't an exact multiple of the 2cm grid: the footprint
	// must round up to 48 cells (96cm), never down to 47 (94cm), or the
	// grid model would be solving with a smaller box than the item's true
	// 95cm depth.
	if fps[Rot0].WGrid != 114 || fps[Rot0].DGrid != 48 {
		t.Fatalf("Rot0 footprint = %+v, want {114 48}", fps[Rot0])
	}
	if fps[Rot180] != fps[Rot0] {
		t.Fatalf("Rot180 footprint %+v should equal Rot0 %+v", fps[Rot180], fps[Rot0])
	}
	if fps[Rot90].WGrid != fps[Rot0].DGrid || fps[Rot90].DGrid != fps[Rot0].WGrid {
		t.Fatalf("Rot90 footprint %+v should swap Rot0's dims %+v", fps[Rot90], fps[Rot0])
	}
	if fps[Rot90] != fps[Rot270] {
		t.Fatalf("Rot270 footprint %+v should equal Rot90 %+v", fps[Rot270], fps[Rot90])
	}
}

func TestFitsRejectsOversizedAndDegenerateFootprints(t *testing.T) {
	wGrid, hGrid := 250, 200
	if !Fits(Footprint{WGrid: 114, DGrid: 48}, wGrid, hGrid) {
		t.Fatal("sofa footprint should fit a 250x200 grid room")
	}
	if Fits(Footprint{WGrid: 300, DGrid: 48}, wGrid, hGrid) {
		t.Fatal("oversized footprint should not fit")
	}
	if Fits(Footprint{WGrid: 0, DGrid: 48}, wGrid, hGrid) {
		t.Fatal("zero-width footprint should never fit")
	}
}

func TestAnyFitsTrueWhenSomeRotationFits(t *testing.T) {
	// A long, shallow room: the unrotated footprint doesn't fit but the
	// 90-degree rotation does.
	wGrid, hGrid := 60, 200
	fps := Footprints(228, 40, DefaultResolutionCM)
	if Fits(fps[Rot0], wGrid, hGrid) {
		t.Fatal("expected Rot0 footprint to fail to fit the narrow room")
	}
	if !AnyFits(fps, wGrid, hGrid) {
		t.Fatal("expected Rot90 footprint to fit the narrow room")
	}
}

func TestManhattanCornerDistance(t *testing.T) {
	cases := []struct {
		ax, ay, bx, by, want int
	}{
		{0, 0, 0, 0, 0},
		{0, 0, 3, 4, 7},
		{5, 5, 2, 1, 7},
		{-2, 3, 2, -1, 8},
	}
	for _, c := range cases {
		if got := ManhattanCornerDistance(c.ax, c.ay, c.bx, c.by); got != c.want {
			t.Errorf("ManhattanCornerDistance(%d,%d,%d,%d) = %d, want %d", c.ax, c.ay, c.bx, c.by, got, c.want)
		}
	}
}
