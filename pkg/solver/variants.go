package solver

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"time"

	"github.com/caspian-labs/roomcraft/pkg/constraints"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/rng"
)

// MaxVariants caps a job at one layout per strategy.
const MaxVariants = 3

// Variant pairs a strategy with the solver result its objective weights
// produced.
type Variant struct {
	Strategy layout.Strategy
	Result   Result
}

// GenerateVariants runs the solver once per strategy in layout.AllStrategies
// order (sequentially, to keep total CPU bounded), dedups
// identical solutions by a hash of their placement set, and returns at most
// MaxVariants variants.
//
// Each strategy gets an independently seeded RNG derived from masterSeed,
// the strategy name, and configHash via pkg/rng, so a fixed job always
// produces the same variants regardless of how many times it is re-run.
func GenerateVariants(ctx context.Context, model *constraints.Model, masterSeed uint64, configHash []byte, timeBudget time.Duration, workers int) []Variant {
	if timeBudget <= 0 {
		timeBudget = DefaultTimeBudget
	}

	seen := make(map[string]bool)
	variants := make([]Variant, 0, MaxVariants)

	for _, strategy := range layout.AllStrategies {
		if len(variants) >= MaxVariants {
			break
		}
		stageName := fmt.Sprintf("strategy_%s", strategy)
		r := rng.NewRNG(masterSeed, stageName, configHash)

		coverage, budget, flow := strategy.Weights()
		weights := Weights{Coverage: coverage, Budget: budget, Flow: flow}

		runCtx, cancel := context.WithTimeout(ctx, timeBudget)
		result := Solve(runCtx, model, weights, workers, r.Seed())
		cancel()

		key := placementHash(result.Placements)
		if seen[key] {
			continue
		}
		seen[key] = true
		variants = append(variants, Variant{Strategy: strategy, Result: result})
	}
	return variants
}

// placementHash computes a stable hash of a placement set's
// (item_id, x_cm, y_cm, rotation) tuples, used to deduplicate identical
// solutions across strategies.
func placementHash(placements []layout.Placement) string {
	sorted := append([]layout.Placement(nil), placements...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ItemID < sorted[j].ItemID })

	h := sha256.New()
	for _, p := range sorted {
		h.Write([]byte(p.ItemID))
		writeInt(h, p.XCM)
		writeInt(h, p.YCM)
		writeInt(h, p.Rotation)
	}
	return string(h.Sum(nil))
}

func writeInt(h interface{ Write([]byte) (int, error) }, v int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(v)))
	h.Write(buf[:])
}
