package adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/roomerr"
	"github.com/caspian-labs/roomcraft/pkg/scorer"
	"github.com/caspian-labs/roomcraft/pkg/solver"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

// LayoutResult pairs one solved, scored layout with its independent
// geometry validation report. The validator runs entirely
// decoupled from solver/scorer internals, so it is attached here rather
// than folded into Layout itself.
type LayoutResult struct {
	Layout layout.Layout
	Report *validator.Report
}

// RunLayoutJob executes the full pipeline for one job: filter
// the catalog, build the solver's constraint model, generate up to
// solver.MaxVariants strategy variants, score and validate each, and return
// the resulting layouts in layout.AllStrategies order.
//
// An empty catalogItems list is a benign no-op (no layouts, completed)
// and returns (nil, nil). A non-empty
// catalog that filters down to nothing is the same benign case under a
// different name (a zero budget drops every item), treated as a boundary
// behavior, not a failure, so it also returns (nil, nil) rather than an
// error. Only a catalog that still has items left after filtering, but
// where none of them can fit the room in any rotation, reaches
// constraints.BuildModel and surfaces as an InputValidation failure.
// "Asked for something, nothing could satisfy it" is
// the real failure; "nothing was left to ask for" is not. A solver run
// that proves infeasible for every strategy is likewise not an
// error: it returns an empty result list and a nil error,
// since there is nothing useful to report.
func RunLayoutJob(ctx context.Context, room catalog.Room, catalogItems []catalog.CatalogItem, prefs []catalog.StyleTag, budgetCents *int, cons constraints.Constraints, cfg layout.Config) ([]LayoutResult, error) {
	if err := room.Validate(); err != nil {
		return nil, roomerr.New(roomerr.InputValidation, "adapter.RunLayoutJob", fmt.Errorf("invalid room: %w", err))
	}
	if len(catalogItems) == 0 {
		return nil, nil
	}

	filtered := catalog.Filter(catalogItems, prefs, budgetCents, room.AreaSqm)
	if len(filtered) == 0 {
		return nil, nil
	}

	model, err := constraints.BuildModel(room, filtered, cfg.ResolutionCM, cons)
	if err != nil {
		return nil, err
	}

	variants := solver.GenerateVariants(ctx, model, cfg.Seed, cfg.Hash(), cfg.TimeBudget(), cfg.Workers)

	results := make([]LayoutResult, 0, len(variants))
	for _, v := range variants {
		if len(v.Result.Placements) == 0 {
			continue
		}
		result, err := buildLayoutResult(ctx, room, model, v, cons)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return strategyIndex(results[i].Layout.Strategy) < strategyIndex(results[j].Layout.Strategy)
	})
	return results, nil
}

func strategyIndex(s layout.Strategy) int {
	for i, st := range layout.AllStrategies {
		if st == s {
			return i
		}
	}
	return len(layout.AllStrategies)
}

func buildLayoutResult(ctx context.Context, room catalog.Room, model *constraints.Model, v solver.Variant, cons constraints.Constraints) (LayoutResult, error) {
	entries := buildEntries(model, v.Result.Placements)
	pairs := remapFunctionalPairs(model, entries)

	subScores, metrics := scorer.Score(room, entries, pairs)
	final := subScores.Final()

	var violations []string
	if v.Result.Status == solver.TIMEOUT {
		violations = append(violations, "solver timed out")
	}

	report, err := validator.Validate(ctx, room, entries, cons)
	if err != nil {
		return LayoutResult{}, err
	}
	violations = append(violations, report.Recommendations...)

	note := scorer.UtilizationNote(metrics.CoverageRatio)
	rationale := scorer.Rationale(v.Strategy, final)
	if note != "" {
		rationale += " " + note
	}

	return LayoutResult{
		Layout: layout.Layout{
			ID:         uuid.NewString(),
			Strategy:   v.Strategy,
			Placements: entries,
			Score:      final,
			Rationale:  rationale,
			Violations: violations,
			Metrics:    metrics,
		},
		Report: report,
	}, nil
}

// buildEntries pairs each solved placement with its catalog item, in the
// same item-ID sort order extractPlacements produced.
func buildEntries(model *constraints.Model, placements []layout.Placement) []layout.PlacementEntry {
	itemByID := make(map[string]catalog.CatalogItem, len(model.Items))
	for _, mi := range model.Items {
		itemByID[mi.Item.ID] = mi.Item
	}
	entries := make([]layout.PlacementEntry, 0, len(placements))
	for _, p := range placements {
		entries = append(entries, layout.PlacementEntry{Placement: p, Item: itemByID[p.ItemID]})
	}
	return entries
}

// remapFunctionalPairs translates the model's FunctionalPairs (indices
// into model.Items, the full candidate set) into indices into entries, the
// subset of candidates the solver actually placed. A pair is dropped if
// either of its items was not placed.
func remapFunctionalPairs(model *constraints.Model, entries []layout.PlacementEntry) []constraints.FunctionalPair {
	entryIndexByID := make(map[string]int, len(entries))
	for i, e := range entries {
		entryIndexByID[e.Item.ID] = i
	}

	var remapped []constraints.FunctionalPair
	for _, pair := range model.FunctionalPairs {
		aID := model.Items[pair.AIndex].Item.ID
		bID := model.Items[pair.BIndex].Item.ID
		ai, aOK := entryIndexByID[aID]
		bi, bOK := entryIndexByID[bID]
		if !aOK || !bOK {
			continue
		}
		remapped = append(remapped, constraints.FunctionalPair{AIndex: ai, BIndex: bi, Kind: pair.Kind})
	}
	return remapped
}
