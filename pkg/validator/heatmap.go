package validator

import (
	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/geometry"
	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// HeatmapResolutionM is the 20cm grid cell size of the navigation heatmap.
const HeatmapResolutionM = 0.2

const (
	heatmapNearM = 0.3
	heatmapFarM  = 1.5
)

// Heatmap is a gridded map of per-cell navigation scores:
// -1 outside the room polygon, 0 within 30cm of the
// nearest furniture, 1 beyond 150cm, and linearly interpolated in between.
type Heatmap struct {
	Grid        [][]float64
	OriginX     float64
	OriginY     float64
	ResolutionM float64
	Width       int
	Height      int
}

// BuildHeatmap computes the navigation heatmap over the room's bounding box
// at HeatmapResolutionM resolution.
func BuildHeatmap(room catalog.Room, entries []layout.PlacementEntry) Heatmap {
	poly := room.Polygon()
	width := int(room.Bounds.W/HeatmapResolutionM) + 1
	height := int(room.Bounds.D/HeatmapResolutionM) + 1

	grid := make([][]float64, height)
	for i := 0; i < height; i++ {
		row := make([]float64, width)
		y := room.Bounds.Y + float64(i)*HeatmapResolutionM
		for j := 0; j < width; j++ {
			x := room.Bounds.X + float64(j)*HeatmapResolutionM
			p := geometry.Point{X: x, Y: y}
			if !geometry.PointInPolygon(poly, p) {
				row[j] = -1
				continue
			}
			row[j] = cellScore(p, entries)
		}
		grid[i] = row
	}

	return Heatmap{
		Grid:        grid,
		OriginX:     room.Bounds.X,
		OriginY:     room.Bounds.Y,
		ResolutionM: HeatmapResolutionM,
		Width:       width,
		Height:      height,
	}
}

func cellScore(p geometry.Point, entries []layout.PlacementEntry) float64 {
	if len(entries) == 0 {
		return 1
	}
	minDist := -1.0
	for _, e := range entries {
		f := e.FootprintM()
		d := pointToRectDistance(p, f)
		if minDist < 0 || d < minDist {
			minDist = d
		}
	}
	switch {
	case minDist < heatmapNearM:
		return 0
	case minDist > heatmapFarM:
		return 1
	default:
		return (minDist - heatmapNearM) / (heatmapFarM - heatmapNearM)
	}
}

// pointToRectDistance is geometry.Distance specialized for a degenerate
// zero-size rectangle at p, reusing the same boundary-to-boundary measure
// the collision/clearance checks use.
func pointToRectDistance(p geometry.Point, r geometry.Rect) float64 {
	pointRect := geometry.Rect{X: p.X, Y: p.Y, W: 0, D: 0}
	return geometry.Distance(pointRect, r)
}
