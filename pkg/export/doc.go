// Package export renders a solved Layout for offline/CLI runs:
// an SVG floor-plan diagram
// (room outline, furniture footprints, optional heatmap overlay) via
// github.com/ajstarks/svgo, and indented/compact JSON.
package export
