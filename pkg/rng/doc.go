// Package rng provides deterministic random number generation for the
// layout pipeline.
//
// # Overview
//
// The RNG type ensures reproducible layout generation by deriving
// stage-specific seeds from a master seed. This allows each pipeline stage
// (strategy variant generation, solver restart workers) to have an independent
// random sequence while the overall job remains deterministic for a fixed
// input and fixed seed.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the job's top-level random seed
//   - stageName: pipeline stage identifier (e.g., "strategy_conversation")
//   - configHash: hash of the pipeline configuration (layout.Config.Hash),
//     or nil (the solver's per-worker RNGs pass nil)
//
// This ensures:
//  1. Same inputs always produce same RNG sequence (determinism)
//  2. Different stages get independent random sequences (isolation)
//  3. Configuration changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG per strategy before running the solver:
//
//	configHash := cfg.Hash()
//	convRNG := rng.NewRNG(masterSeed, "strategy_conversation", configHash)
//	workRNG := rng.NewRNG(masterSeed, "strategy_work", configHash)
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create stage-specific RNGs before spawning goroutines and pass
// them explicitly; this module has no module-level RNG state.
package rng
