package constraints

import (
	"math"
	"strings"

	"github.com/caspian-labs/roomcraft/pkg/grid"
)

// Role is a functional role inferred from an item's name by substring
// match. Name matching is fragile, so the mapping lives in a data table
// rather than hard-coded branching and can be extended without touching
// the builder's logic.
type Role string

const (
	RoleSofa        Role = "sofa"
	RoleCoffeeTable Role = "coffee_table"
	RoleDesk        Role = "desk"
	RoleChair       Role = "chair"
	RoleTV          Role = "tv"
)

// roleTable maps a lowercase name substring to the role it implies. Entries
// are checked in order; the first match wins.
var roleTable = []struct {
	Substr string
	Role   Role
}{
	{"sofa", RoleSofa},
	{"couch", RoleSofa},
	{"coffee", RoleCoffeeTable},
	{"desk", RoleDesk},
	{"chair", RoleChair},
	{"tv", RoleTV},
	{"television", RoleTV},
}

// RoleOf returns the functional role implied by an item's name, if any.
func RoleOf(name string) (Role, bool) {
	lower := strings.ToLower(name)
	for _, entry := range roleTable {
		if strings.Contains(lower, entry.Substr) {
			return entry.Role, true
		}
	}
	return "", false
}

// PairKind identifies which functional relationship a FunctionalPair
// represents.
type PairKind string

const (
	PairSofaCoffee PairKind = "sofa_coffee_table"
	PairDeskChair  PairKind = "desk_chair"
	PairTVSofa     PairKind = "tv_sofa"
)

// Target bands for each pair kind, in centimeters. These are soft targets:
// missing them costs objective value and the scorer's function sub-score,
// but never makes a layout infeasible.
const (
	SofaCoffeeTargetCM = 50
	SofaCoffeeBandCM   = 20
	DeskChairMinCM     = 60
	DeskChairMaxCM     = 80
	TVSofaMinCM        = 200
	TVSofaMaxCM        = 400
)

// FunctionalPair is a candidate pair of model items eligible for a soft
// functional-relationship bonus.
type FunctionalPair struct {
	AIndex, BIndex int
	Kind           PairKind
}

// BuildFunctionalPairs scans the model's candidate items for name-inferred
// roles and emits one FunctionalPair per matching combination. An item can
// participate in more than one pair (e.g. a sofa is both half of a
// sofa-coffee-table pair and half of a tv-sofa pair).
func BuildFunctionalPairs(items []ModelItem) []FunctionalPair {
	roles := make([]Role, len(items))
	for i, mi := range items {
		role, _ := RoleOf(mi.Item.Name)
		roles[i] = role
	}

	var pairs []FunctionalPair
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			kind, ok := pairKind(roles[i], roles[j])
			if !ok {
				continue
			}
			a, b := i, j
			if !matchesOrder(roles[a], kind) {
				a, b = b, a
			}
			pairs = append(pairs, FunctionalPair{AIndex: a, BIndex: b, Kind: kind})
		}
	}
	return pairs
}

func pairKind(a, b Role) (PairKind, bool) {
	has := func(r Role) bool { return a == r || b == r }
	switch {
	case has(RoleSofa) && has(RoleCoffeeTable):
		return PairSofaCoffee, true
	case has(RoleDesk) && has(RoleChair):
		return PairDeskChair, true
	case has(RoleTV) && has(RoleSofa):
		return PairTVSofa, true
	default:
		return "", false
	}
}

// matchesOrder reports whether role a is the "primary" role for kind (the
// first named role in the pair kind's identifier), used to keep AIndex/BIndex
// assignment stable regardless of catalog iteration order.
func matchesOrder(a Role, kind PairKind) bool {
	switch kind {
	case PairSofaCoffee:
		return a == RoleSofa
	case PairDeskChair:
		return a == RoleDesk
	case PairTVSofa:
		return a == RoleTV
	default:
		return true
	}
}

// FunctionalWeight is the solver objective's weight on FunctionalScore.
// The bias runs uniformly across strategies rather than through the
// per-strategy weight table, which only covers coverage/budget/flow.
const FunctionalWeight = 40.0

// itemCM is a placed item's footprint and rotation resolved to
// centimeters, the unit the functional target bands are defined in.
type itemCM struct {
	XCM, YCM, WCM, DCM, RotDeg int
}

func (m *Model) itemCM(p Placed) itemCM {
	f := m.Items[p.ItemIndex].Footprints[p.Rot]
	return itemCM{
		XCM:    p.X * m.ResolutionCM,
		YCM:    p.Y * m.ResolutionCM,
		WCM:    f.WGrid * m.ResolutionCM,
		DCM:    f.DGrid * m.ResolutionCM,
		RotDeg: p.Rot.Degrees(),
	}
}

// FindPlaced returns the placed entry for item index idx, if placed.
func FindPlaced(placed []Placed, idx int) (Placed, bool) {
	for _, p := range placed {
		if p.ItemIndex == idx {
			return p, true
		}
	}
	return Placed{}, false
}

// PairSatisfaction scores how well a functional pair's placed items hit
// their target relationship, in [0,1]: 1.0 when the real-world gap sits
// inside the pair's target band, decaying linearly outside it so the
// solver's hill-climbing search has a gradient to follow rather than a
// pass/fail cliff. Returns 0 if either item in the pair isn't placed.
func (m *Model) PairSatisfaction(placed []Placed, pair FunctionalPair) float64 {
	a, aOK := FindPlaced(placed, pair.AIndex)
	b, bOK := FindPlaced(placed, pair.BIndex)
	if !aOK || !bOK {
		return 0
	}
	ac, bc := m.itemCM(a), m.itemCM(b)
	switch pair.Kind {
	case PairSofaCoffee:
		offset := sofaForwardOffsetCM(ac, bc)
		return bandSatisfaction(offset, SofaCoffeeTargetCM, SofaCoffeeBandCM)
	case PairDeskChair:
		d := manhattanCM(ac, bc)
		return rangeSatisfaction(d, DeskChairMinCM, DeskChairMaxCM)
	case PairTVSofa:
		d := manhattanCM(ac, bc)
		return rangeSatisfaction(d, TVSofaMinCM, TVSofaMaxCM)
	default:
		return 0
	}
}

// FunctionalScore sums PairSatisfaction across every candidate functional
// pair, the solver objective's functional-pair bias term.
func (m *Model) FunctionalScore(placed []Placed) float64 {
	total := 0.0
	for _, pair := range m.FunctionalPairs {
		total += m.PairSatisfaction(placed, pair)
	}
	return total
}

// sofaForwardOffsetCM returns the distance from the sofa's forward edge
// (the edge its rotation faces) to the coffee table's near edge, along the
// sofa's facing axis. Uses the same edge-per-rotation rule as pkg/scorer's
// sofaForwardOffsetCM, since both must agree on which edge "forward" means,
// but measures grid footprints rounded up to the resolution, so the result
// can differ from the scorer's by up to one grid cell.
func sofaForwardOffsetCM(sofa, table itemCM) float64 {
	switch sofa.RotDeg {
	case 0:
		return float64(table.YCM - (sofa.YCM + sofa.DCM))
	case 180:
		return float64(sofa.YCM - (table.YCM + table.DCM))
	case 90:
		return float64(table.XCM - (sofa.XCM + sofa.WCM))
	case 270:
		return float64(sofa.XCM - (table.XCM + table.WCM))
	default:
		return 0
	}
}

func manhattanCM(a, b itemCM) float64 {
	return math.Abs(float64(a.XCM-b.XCM)) + math.Abs(float64(a.YCM-b.YCM))
}

func bandSatisfaction(value, target, band float64) float64 {
	dist := math.Abs(value - target)
	if dist <= band {
		return 1
	}
	return falloff(dist-band, band)
}

func rangeSatisfaction(value, lo, hi float64) float64 {
	switch {
	case value >= lo && value <= hi:
		return 1
	case value < lo:
		return falloff(lo-value, hi-lo)
	default:
		return falloff(value-hi, hi-lo)
	}
}

// falloff linearly decays from 1 to 0 as over grows from 0 to scale.
func falloff(over, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	v := 1 - over/scale
	if v < 0 {
		return 0
	}
	return v
}

// RepairFunctionalPairs attempts to relocate each functional pair's
// dependent item (B) onto a position analytically chosen to satisfy the
// pair's target band relative to its already-placed anchor (A), replacing
// the dependent's placement only when a feasible, pair-satisfying spot
// exists. A plain random-restart search has no pressure toward hitting an
// exact 50cm sofa-to-coffee-table offset or a 200-400cm tv-to-sofa
// distance; this repair pass runs after each construct/improve cycle to
// give the functional soft pairs a real chance of being satisfied rather
// than leaving it to chance.
func (m *Model) RepairFunctionalPairs(placed []Placed) []Placed {
	for _, pair := range m.FunctionalPairs {
		placed = m.repairPair(placed, pair)
	}
	return placed
}

func (m *Model) repairPair(placed []Placed, pair FunctionalPair) []Placed {
	anchor, ok := FindPlaced(placed, pair.AIndex)
	if !ok {
		return placed
	}
	if m.PairSatisfaction(placed, pair) >= 1 {
		return placed
	}
	without := removePlaced(placed, pair.BIndex)
	for _, cand := range m.functionalCandidates(anchor, pair) {
		if !m.Feasible(without, pair.BIndex, cand.X, cand.Y, cand.Rot) {
			continue
		}
		trial := append(append([]Placed(nil), without...), cand)
		if m.PairSatisfaction(trial, pair) >= 1 {
			return trial
		}
	}
	return placed
}

func removePlaced(placed []Placed, idx int) []Placed {
	out := make([]Placed, 0, len(placed))
	for _, p := range placed {
		if p.ItemIndex != idx {
			out = append(out, p)
		}
	}
	return out
}

// functionalCandidates generates a handful of grid positions for the
// pair's dependent item (B), analytically derived from the anchor's (A)
// placement so the repair pass can try exact target-band spots instead of
// relying on random placement to stumble onto one.
func (m *Model) functionalCandidates(anchor Placed, pair FunctionalPair) []Placed {
	switch pair.Kind {
	case PairSofaCoffee:
		return m.sofaCoffeeCandidates(anchor, pair.BIndex)
	case PairDeskChair:
		return m.radialCandidates(anchor, pair.BIndex, (DeskChairMinCM+DeskChairMaxCM)/2)
	case PairTVSofa:
		return m.radialCandidates(anchor, pair.BIndex, (TVSofaMinCM+TVSofaMaxCM)/2)
	default:
		return nil
	}
}

// sofaCoffeeCandidates places the dependent item directly ahead of the
// anchor's facing edge at the target offset, centered along the
// perpendicular axis, for each of the dependent's four rotations.
func (m *Model) sofaCoffeeCandidates(anchor Placed, bIdx int) []Placed {
	af := m.footprint(anchor)
	targetGrid := grid.ToGrid(SofaCoffeeTargetCM, m.ResolutionCM)
	var candidates []Placed
	for _, rot := range allRotations {
		bf := m.Items[bIdx].Footprints[rot]
		if bf.WGrid == 0 || bf.DGrid == 0 {
			continue
		}
		var x, y int
		switch anchor.Rot {
		case grid.Rot0:
			x, y = anchor.X+(af.WGrid-bf.WGrid)/2, anchor.Y+af.DGrid+targetGrid
		case grid.Rot180:
			x, y = anchor.X+(af.WGrid-bf.WGrid)/2, anchor.Y-bf.DGrid-targetGrid
		case grid.Rot90:
			x, y = anchor.X+af.WGrid+targetGrid, anchor.Y+(af.DGrid-bf.DGrid)/2
		case grid.Rot270:
			x, y = anchor.X-bf.WGrid-targetGrid, anchor.Y+(af.DGrid-bf.DGrid)/2
		}
		candidates = append(candidates, m.clampCandidate(Placed{ItemIndex: bIdx, X: x, Y: y, Rot: rot}, bf))
	}
	return candidates
}

// radialCandidates places the dependent item at the given target
// Manhattan distance (cm) from the anchor's corner, along each of the
// four axis directions and four diagonal splits, for each of the
// dependent's four rotations.
func (m *Model) radialCandidates(anchor Placed, bIdx, targetCM int) []Placed {
	targetGrid := grid.ToGrid(targetCM, m.ResolutionCM)
	if targetGrid <= 0 {
		targetGrid = 1
	}
	half := targetGrid / 2
	offsets := [][2]int{
		{targetGrid, 0}, {-targetGrid, 0}, {0, targetGrid}, {0, -targetGrid},
		{half, half}, {-half, half}, {half, -half}, {-half, -half},
	}
	var candidates []Placed
	for _, rot := range allRotations {
		bf := m.Items[bIdx].Footprints[rot]
		if bf.WGrid == 0 || bf.DGrid == 0 {
			continue
		}
		for _, off := range offsets {
			cand := Placed{ItemIndex: bIdx, X: anchor.X + off[0], Y: anchor.Y + off[1], Rot: rot}
			candidates = append(candidates, m.clampCandidate(cand, bf))
		}
	}
	return candidates
}

var allRotations = [4]grid.Rotation{grid.Rot0, grid.Rot90, grid.Rot180, grid.Rot270}

// clampCandidate pulls a candidate position back inside the room grid so a
// target computed near the room's edge still lands somewhere Feasible can
// evaluate, rather than on a negative or out-of-range coordinate.
func (m *Model) clampCandidate(p Placed, f grid.Footprint) Placed {
	maxX, maxY := m.WGrid-f.WGrid, m.HGrid-f.DGrid
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	switch {
	case p.X < 0:
		p.X = 0
	case p.X > maxX:
		p.X = maxX
	}
	switch {
	case p.Y < 0:
		p.Y = 0
	case p.Y > maxY:
		p.Y = maxY
	}
	return p
}
