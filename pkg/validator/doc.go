// Package validator is the independent geometry validator:
// given a finalized layout it reports collisions, clearance violations,
// door/window accessibility, and a navigation heatmap, entirely apart from
// the solver and scorer that produced the layout. It operates on
// real-valued (meter) geometry via pkg/geometry, never the solver's
// integer grid, and uses Euclidean distance throughout, never the
// solver's Manhattan shortcut.
package validator
