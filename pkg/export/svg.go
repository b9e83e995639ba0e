package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/caspian-labs/roomcraft/pkg/catalog"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

// SVGOptions configures a layout's floor-plan rendering.
type SVGOptions struct {
	Width       int    // Canvas width in pixels
	Height      int    // Canvas height in pixels
	Margin      int    // Canvas margin in pixels (default: 40)
	ShowLabels  bool   // Show item name labels
	ShowHeatmap bool   // Show navigation heatmap overlay beneath furniture
	ShowStats   bool   // Show strategy/score/metrics header
	Title       string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default floor-plan rendering options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      1000,
		Height:     800,
		Margin:     40,
		ShowLabels: true,
		ShowStats:  true,
		Title:      "Layout",
	}
}

// categoryColor assigns a fixed fill color per catalog.Category so a
// rendered floor plan reads consistently across layouts.
var categoryColor = map[catalog.Category]string{
	catalog.CategorySeating:  "#4299e1",
	catalog.CategoryTable:    "#48bb78",
	catalog.CategoryStorage:  "#ed8936",
	catalog.CategoryWork:     "#9f7aea",
	catalog.CategoryLighting: "#ecc94b",
}

// ExportSVG renders a room and one of its scored layouts as an SVG
// floor-plan diagram: room bounds, door/window markers, furniture
// footprints, and, when heatmap is non-nil and opts.ShowHeatmap is set,
// the validator's navigation heatmap as a colored underlay.
func ExportSVG(room catalog.Room, lay layout.Layout, heatmap *validator.Heatmap, opts SVGOptions) ([]byte, error) {
	if room.Bounds.W <= 0 || room.Bounds.D <= 0 {
		return nil, fmt.Errorf("export: room bounds must have positive width and depth")
	}
	if opts.Width <= 0 {
		opts.Width = 1000
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	headerSpace := 0
	if opts.Title != "" || opts.ShowStats {
		headerSpace = 50
	}

	drawW := float64(opts.Width - 2*opts.Margin)
	drawH := float64(opts.Height - 2*opts.Margin - headerSpace)
	scale := drawW / room.Bounds.W
	if alt := drawH / room.Bounds.D; alt < scale {
		scale = alt
	}
	originX, originY := float64(opts.Margin), float64(opts.Margin+headerSpace)

	toPx := func(xM, yM float64) (int, int) {
		return int(originX + (xM-room.Bounds.X)*scale), int(originY + (yM-room.Bounds.Y)*scale)
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#f7fafc")

	if opts.ShowHeatmap && heatmap != nil {
		drawHeatmap(canvas, *heatmap, toPx, scale)
	}

	drawRoom(canvas, room, toPx)
	drawOpenings(canvas, room, toPx)
	drawFurniture(canvas, lay, toPx, scale, opts)

	if opts.Title != "" || opts.ShowStats {
		drawHeader(canvas, lay, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders a layout's floor plan and writes it to disk with
// 0644 permissions.
func SaveSVGToFile(room catalog.Room, lay layout.Layout, heatmap *validator.Heatmap, path string, opts SVGOptions) error {
	data, err := ExportSVG(room, lay, heatmap, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func drawRoom(canvas *svg.SVG, room catalog.Room, toPx func(float64, float64) (int, int)) {
	x0, y0 := toPx(room.Bounds.X, room.Bounds.Y)
	x1, y1 := toPx(room.Bounds.MaxX(), room.Bounds.MaxY())
	canvas.Rect(x0, y0, x1-x0, y1-y0, "fill:#ffffff;stroke:#2d3748;stroke-width:3")
}

func drawOpenings(canvas *svg.SVG, room catalog.Room, toPx func(float64, float64) (int, int)) {
	for _, d := range room.Doors {
		x, y := toPx(d.Position.X, d.Position.Y)
		canvas.Circle(x, y, 7, "fill:#48bb78;stroke:#1a202c;stroke-width:1")
	}
	for _, w := range room.Windows {
		x, y := toPx(w.Position.X, w.Position.Y)
		canvas.Circle(x, y, 7, "fill:#63b3ed;stroke:#1a202c;stroke-width:1")
	}
}

func drawFurniture(canvas *svg.SVG, lay layout.Layout, toPx func(float64, float64) (int, int), scale float64, opts SVGOptions) {
	entries := append([]layout.PlacementEntry(nil), lay.Placements...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Item.ID < entries[j].Item.ID })

	for _, e := range entries {
		f := e.FootprintM()
		x0, y0 := toPx(f.X, f.Y)
		x1, y1 := toPx(f.MaxX(), f.MaxY())

		color := categoryColor[e.Item.Category]
		if color == "" {
			color = "#a0aec0"
		}
		canvas.Rect(x0, y0, x1-x0, y1-y0, fmt.Sprintf("fill:%s;stroke:#1a202c;stroke-width:1;opacity:0.85", color))

		if opts.ShowLabels {
			cx, cy := (x0+x1)/2, (y0+y1)/2
			canvas.Text(cx, cy, e.Item.Name,
				"text-anchor:middle;font-size:10px;font-family:monospace;fill:#1a202c")
		}
	}
}

func drawHeatmap(canvas *svg.SVG, h validator.Heatmap, toPx func(float64, float64) (int, int), scale float64) {
	cellPx := int(h.ResolutionM*scale) + 1
	for i, row := range h.Grid {
		y := h.OriginY + float64(i)*h.ResolutionM
		for j, v := range row {
			if v < 0 {
				continue
			}
			x := h.OriginX + float64(j)*h.ResolutionM
			px, py := toPx(x, y)
			canvas.Rect(px, py, cellPx, cellPx, fmt.Sprintf("fill:%s;opacity:0.35;stroke:none", heatColor(v)))
		}
	}
}

// heatColor maps a score to one of three fixed colors: red below 0.33
// (blocked), yellow below 0.66, green otherwise (walkable).
func heatColor(v float64) string {
	switch {
	case v < 0.33:
		return "#f56565"
	case v < 0.66:
		return "#ecc94b"
	default:
		return "#48bb78"
	}
}

func drawHeader(canvas *svg.SVG, lay layout.Layout, opts SVGOptions) {
	y := 20
	if opts.Title != "" {
		canvas.Text(opts.Width/2, y, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#1a202c;font-family:sans-serif")
		y += 22
	}
	if opts.ShowStats {
		stats := fmt.Sprintf("strategy=%s score=%.2f furniture=%d cost=$%.2f",
			lay.Strategy, lay.Score, lay.Metrics.FurnitureCount, float64(lay.Metrics.TotalCostCents)/100)
		canvas.Text(opts.Width/2, y, stats,
			"text-anchor:middle;font-size:11px;fill:#4a5568;font-family:monospace")
	}
}
