// Package adapter is the outermost layer of the layout service: it wires
// the Catalog Filter, Constraint Model Builder, Solver, Scorer, and
// Validator stages into one pipeline (pipeline.go), exposes that pipeline
// over the external message-bus contract (mqtt.go), and
// publishes in-process Prometheus metrics for it (metrics.go).
//
// Nothing below this package knows about jobs, topics, or wire formats;
// pkg/layout, pkg/solver, pkg/scorer, and pkg/validator all operate on
// plain Go values. This package is the only place that talks to the
// outside world; the solver, scorer, and validator stay pure.
package adapter
