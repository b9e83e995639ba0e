// Package solver runs the finite-domain placement search: given a built
// constraints.Model and a strategy's
// objective weights, it assigns each candidate item a grid position,
// rotation, and placed/omitted flag, maximizing the weighted coverage +
// budget + flow objective.
//
// No CP-SAT binding is available anywhere in this module's dependency
// corpus, so the search here is a from-scratch randomized-constructive +
// local-search engine rather than a constraint-programming solver proper.
// It keeps the external contract of a CP driver (status,
// time/worker budget, deterministic given a fixed seed); see DESIGN.md for
// why no third-party CP engine was wired in instead.
package solver

import (
	"context"
	"sort"
	"time"

	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/grid"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/rng"
)

// Status is the solver's outcome classification.
type Status int

const (
	// OPTIMAL: every candidate item was placed and local search converged
	// (no improving move found) before the time budget expired.
	OPTIMAL Status = iota
	// FEASIBLE: at least one item was placed and the search converged or
	// exhausted its planned work, but not every candidate item fit.
	FEASIBLE
	// INFEASIBLE: no candidate item could be placed under any attempted
	// assignment.
	INFEASIBLE
	// TIMEOUT: the time budget expired before the search finished its
	// planned work; the best solution found so far is returned.
	TIMEOUT
)

func (s Status) String() string {
	switch s {
	case OPTIMAL:
		return "OPTIMAL"
	case FEASIBLE:
		return "FEASIBLE"
	case INFEASIBLE:
		return "INFEASIBLE"
	case TIMEOUT:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// DefaultTimeBudget and DefaultWorkers are the solver driver's defaults.
const (
	DefaultTimeBudget = 30 * time.Second
	DefaultWorkers    = 4
)

// Result is the solver's output for one run.
type Result struct {
	Status     Status
	Placements []layout.Placement
	Objective  float64
}

// Weights is the coverage/budget/flow objective weight triple for one
// strategy run.
type Weights struct {
	Coverage, Budget, Flow float64
}

// Solve runs the placement search for one strategy's objective weights.
// It honors ctx's deadline as the hard wall-clock budget and fans out to
// `workers` goroutines that each run independent, deterministically-seeded
// restart attempts; the best result across workers is returned. When no
// worker is cut off by the deadline, the search is deterministic for a
// fixed model, weights, seed, and worker count, regardless of goroutine
// scheduling, because each worker's random stream is derived up front from
// the seed and results are combined by a fixed, worker-index tie-break
// rather than completion order.
func Solve(ctx context.Context, model *constraints.Model, weights Weights, workers int, seed uint64) Result {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	workerRNGs := make([]*rng.RNG, workers)
	for i := range workerRNGs {
		workerRNGs[i] = rng.NewRNG(seed, workerStageName(i), nil)
	}

	type outcome struct {
		placed    []constraints.Placed
		objective float64
	}
	results := make([]outcome, workers)

	done := make(chan int, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			placed, obj := runWorker(ctx, model, weights, workerRNGs[i])
			results[i] = outcome{placed: placed, objective: obj}
			done <- i
		}(i)
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	best := -1
	for i, r := range results {
		if best == -1 {
			best = i
			continue
		}
		if len(r.placed) > len(results[best].placed) ||
			(len(r.placed) == len(results[best].placed) && r.objective > results[best].objective) {
			best = i
		}
	}

	timedOut := ctx.Err() != nil
	placements := extractPlacements(model, results[best].placed)

	var status Status
	switch {
	case len(placements) == 0:
		status = INFEASIBLE
	case timedOut:
		status = TIMEOUT
	case len(placements) == len(model.Items):
		status = OPTIMAL
	default:
		status = FEASIBLE
	}

	confidence := 0.9
	if status == TIMEOUT {
		confidence = 0.8
	}
	for i := range placements {
		placements[i].Confidence = confidence
	}

	return Result{Status: status, Placements: placements, Objective: results[best].objective}
}

func workerStageName(i int) string {
	names := [...]string{"solver_worker_0", "solver_worker_1", "solver_worker_2", "solver_worker_3"}
	if i < len(names) {
		return names[i]
	}
	return "solver_worker_extra"
}

// maxRestartsPerWorker and maxPlacementAttempts bound the search so a
// worker always makes forward progress against the context deadline
// instead of spinning indefinitely on a pathological model.
const (
	maxRestartsPerWorker = 64
	maxPlacementAttempts = 200
)

func runWorker(ctx context.Context, model *constraints.Model, weights Weights, r *rng.RNG) ([]constraints.Placed, float64) {
	var bestPlaced []constraints.Placed
	bestObjective := -1.0

	order := make([]int, len(model.Items))
	for i := range order {
		order[i] = i
	}

	for restart := 0; restart < maxRestartsPerWorker; restart++ {
		select {
		case <-ctx.Done():
			if bestPlaced == nil {
				bestPlaced = []constraints.Placed{}
			}
			return bestPlaced, bestObjective
		default:
		}

		placed := construct(model, order, r)
		placed = improve(ctx, model, placed, r)
		placed = model.RepairFunctionalPairs(placed)
		obj := objective(model, placed, weights)
		if obj > bestObjective || bestPlaced == nil {
			bestObjective = obj
			bestPlaced = placed
		}
		r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	if bestPlaced == nil {
		bestPlaced = []constraints.Placed{}
	}
	return bestPlaced, bestObjective
}

// construct greedily places items in the given order, trying randomized
// candidate positions for each until one is feasible or the attempt budget
// is spent.
func construct(model *constraints.Model, order []int, r *rng.RNG) []constraints.Placed {
	placed := make([]constraints.Placed, 0, len(order))
	for _, idx := range order {
		if p, ok := tryPlace(model, placed, idx, r); ok {
			placed = append(placed, p)
		}
	}
	return placed
}

func tryPlace(model *constraints.Model, placed []constraints.Placed, idx int, r *rng.RNG) (constraints.Placed, bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		rot := grid.Rotation(r.Intn(4))
		f := model.Items[idx].Footprints[rot]
		if f.WGrid == 0 || f.DGrid == 0 || f.WGrid > model.WGrid || f.DGrid > model.HGrid {
			continue
		}
		x := r.Intn(model.WGrid - f.WGrid + 1)
		y := r.Intn(model.HGrid - f.DGrid + 1)
		if model.Feasible(placed, idx, x, y, rot) {
			return constraints.Placed{ItemIndex: idx, X: x, Y: y, Rot: rot}, true
		}
	}
	return constraints.Placed{}, false
}

// improve runs a bounded number of local-search passes that retry
// placement of any items the construct pass could not fit.
func improve(ctx context.Context, model *constraints.Model, placed []constraints.Placed, r *rng.RNG) []constraints.Placed {
	const maxPasses = 8
	placedSet := make(map[int]bool, len(placed))
	for _, p := range placed {
		placedSet[p.ItemIndex] = true
	}

	for pass := 0; pass < maxPasses; pass++ {
		select {
		case <-ctx.Done():
			return placed
		default:
		}
		improved := false
		for idx := range model.Items {
			if placedSet[idx] {
				continue
			}
			others := removeItem(placed, idx)
			if p, ok := tryPlace(model, others, idx, r); ok {
				placed = append(others, p)
				placedSet[idx] = true
				improved = true
			}
		}
		if !improved {
			break
		}
	}
	return placed
}

func removeItem(placed []constraints.Placed, idx int) []constraints.Placed {
	out := make([]constraints.Placed, 0, len(placed))
	for _, p := range placed {
		if p.ItemIndex != idx {
			out = append(out, p)
		}
	}
	return out
}

// objective computes the weighted-sum objective:
// coverage + budget (negative cost) + flow (center distance), each scaled
// by its strategy weight, plus a fixed-weight bias toward satisfying the
// model's functional soft pairs
// (see constraints.FunctionalWeight); without it, nothing in the
// search rewards a sofa-to-coffee-table offset or a tv-to-sofa viewing
// distance landing inside its target band.
func objective(model *constraints.Model, placed []constraints.Placed, w Weights) float64 {
	cx, cy := float64(model.WGrid)/2, float64(model.HGrid)/2
	total := 0.0
	for _, p := range placed {
		item := model.Items[p.ItemIndex].Item
		total += w.Coverage
		total += w.Budget * (-float64(item.PriceCents))
		f := model.Items[p.ItemIndex].Footprints[p.Rot]
		centerX := float64(p.X) + float64(f.WGrid)/2
		centerY := float64(p.Y) + float64(f.DGrid)/2
		dist := absF(centerX-cx) + absF(centerY-cy)
		total += w.Flow * dist
	}
	total += constraints.FunctionalWeight * model.FunctionalScore(placed)
	return total
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func extractPlacements(model *constraints.Model, placed []constraints.Placed) []layout.Placement {
	out := make([]layout.Placement, 0, len(placed))
	sorted := append([]constraints.Placed(nil), placed...)
	sort.Slice(sorted, func(i, j int) bool {
		return model.Items[sorted[i].ItemIndex].Item.ID < model.Items[sorted[j].ItemIndex].Item.ID
	})
	for _, p := range sorted {
		item := model.Items[p.ItemIndex].Item
		out = append(out, layout.Placement{
			ItemID:   item.ID,
			XCM:      grid.ToCM(p.X, model.ResolutionCM),
			YCM:      grid.ToCM(p.Y, model.ResolutionCM),
			Rotation: p.Rot.Degrees(),
		})
	}
	return out
}
