// Package catalog defines the Room and CatalogItem data model
// and the catalog filter: style, budget, and room-size pruning of
// the candidate furniture set before the solver builds its model.
package catalog

import (
	"errors"
	"fmt"

	"github.com/caspian-labs/roomcraft/pkg/geometry"
)

// Category is the coarse furniture class a CatalogItem belongs to.
type Category string

const (
	CategorySeating  Category = "seating"
	CategoryTable    Category = "table"
	CategoryStorage  Category = "storage"
	CategoryWork     Category = "work"
	CategoryLighting Category = "lighting"
)

func (c Category) valid() bool {
	switch c {
	case CategorySeating, CategoryTable, CategoryStorage, CategoryWork, CategoryLighting:
		return true
	}
	return false
}

// SwingDirection is the direction a door opens.
type SwingDirection string

const (
	SwingInward  SwingDirection = "inward"
	SwingOutward SwingDirection = "outward"
)

// StyleTag is an open-vocabulary style descriptor (e.g. "modern",
// "scandinavian", "industrial"). Unlike Category, the set of valid tags is
// not fixed by this module; it is whatever the style-preference catalog
// in use defines.
type StyleTag string

// PlacementRule is an open-vocabulary placement hint (e.g. "against_wall",
// "corner_ok", "freestanding"). Like StyleTag, the solver's functional-pair
// builder does not hard-code the full set; see pkg/constraints.
type PlacementRule string

// Clearances holds an item's required clearance on each side, in
// centimeters. A nil field means "unspecified for that side"; All is the
// fallback applied when a more specific side isn't given.
type Clearances struct {
	FrontCM *int `yaml:"front,omitempty" json:"front,omitempty"`
	BackCM  *int `yaml:"back,omitempty" json:"back,omitempty"`
	SidesCM *int `yaml:"sides,omitempty" json:"sides,omitempty"`
	AllCM   *int `yaml:"all,omitempty" json:"all,omitempty"`
}

// resolve returns the effective clearance in cm for a side, falling back
// to All, then to the given default.
func (c Clearances) resolve(side *int, def int) int {
	if side != nil {
		return *side
	}
	if c.AllCM != nil {
		return *c.AllCM
	}
	return def
}

// DefaultClearanceCM is used when an item specifies no clearance at all.
const DefaultClearanceCM = 40

// EffectiveAll returns the clearance used for the solver's uniform
// "all-sides" clearance constraint.
func (c Clearances) EffectiveAll() int {
	return c.resolve(c.AllCM, DefaultClearanceCM)
}

// CatalogItem is a single piece of furniture available for placement.
type CatalogItem struct {
	ID             string          `yaml:"id" json:"id"`
	Name           string          `yaml:"name" json:"name"`
	Category       Category        `yaml:"category" json:"category"`
	WidthCM        int             `yaml:"width_cm" json:"width_cm"`
	DepthCM        int             `yaml:"depth_cm" json:"depth_cm"`
	HeightCM       int             `yaml:"height_cm" json:"height_cm"`
	Clearances     Clearances      `yaml:"clearances" json:"clearances"`
	PlacementRules []PlacementRule `yaml:"placement_rules,omitempty" json:"placement_rules,omitempty"`
	Priority       int             `yaml:"priority" json:"priority"`
	PriceCents     int             `yaml:"price_cents" json:"price_cents"`
	StyleTags      []StyleTag      `yaml:"style_tags,omitempty" json:"style_tags,omitempty"`
}

// Validate checks a CatalogItem's dimensional and price invariants.
func (c *CatalogItem) Validate() error {
	if c.ID == "" {
		return errors.New("catalog item: id is required")
	}
	if !c.Category.valid() {
		return fmt.Errorf("catalog item %s: invalid category %q", c.ID, c.Category)
	}
	if c.WidthCM <= 0 || c.DepthCM <= 0 || c.HeightCM <= 0 {
		return fmt.Errorf("catalog item %s: width/depth/height must be > 0", c.ID)
	}
	if c.PriceCents < 0 {
		return fmt.Errorf("catalog item %s: price_cents must be >= 0", c.ID)
	}
	return nil
}

// HasStyle reports whether the item carries any of the given style tags.
func (c *CatalogItem) HasStyle(prefs []StyleTag) bool {
	if len(prefs) == 0 {
		return true
	}
	for _, tag := range c.StyleTags {
		for _, pref := range prefs {
			if tag == pref {
				return true
			}
		}
	}
	return false
}

// Wall is a straight wall segment bounding a room.
type Wall struct {
	ID         string         `json:"id"`
	Start      geometry.Point `json:"start"`
	End        geometry.Point `json:"end"`
	ThicknessM float64        `json:"thickness_m"`
	HeightM    float64        `json:"height_m"`
}

// Validate checks the wall's basic geometric sanity.
func (w *Wall) Validate() error {
	if w.ID == "" {
		return errors.New("wall: id is required")
	}
	if w.ThicknessM <= 0 {
		return fmt.Errorf("wall %s: thickness_m must be > 0", w.ID)
	}
	if w.Start == w.End {
		return fmt.Errorf("wall %s: start and end must differ", w.ID)
	}
	return nil
}

// Door is an opening in a wall.
type Door struct {
	ID       string         `json:"id"`
	WallID   string         `json:"wall_id"`
	Position geometry.Point `json:"position"`
	WidthM   float64        `json:"width_m"`
	Swing    SwingDirection `json:"swing"`
}

// Validate checks the door's basic geometric sanity.
func (d *Door) Validate() error {
	if d.ID == "" {
		return errors.New("door: id is required")
	}
	if d.WidthM <= 0 {
		return fmt.Errorf("door %s: width_m must be > 0", d.ID)
	}
	return nil
}

// Window is an opening in a wall above floor level.
type Window struct {
	ID          string         `json:"id"`
	WallID      string         `json:"wall_id"`
	Position    geometry.Point `json:"position"`
	WidthM      float64        `json:"width_m"`
	HeightM     float64        `json:"height_m"`
	SillHeightM float64        `json:"sill_height_m"`
}

// Validate checks the window's basic geometric sanity.
func (w *Window) Validate() error {
	if w.ID == "" {
		return errors.New("window: id is required")
	}
	if w.WidthM <= 0 || w.HeightM <= 0 {
		return fmt.Errorf("window %s: width_m and height_m must be > 0", w.ID)
	}
	return nil
}

// Room is an immutable floor plan: its bounding box, its walls, and the
// doors and windows cut into those walls.
type Room struct {
	Bounds  geometry.Rect `json:"bounds"`
	Walls   []Wall        `json:"walls"`
	Doors   []Door        `json:"doors"`
	Windows []Window      `json:"windows"`
	AreaSqm float64       `json:"area_sqm"`
}

// Validate checks the room's structural integrity: a positive-area bound,
// valid walls, and doors/windows that reference an existing wall.
func (r *Room) Validate() error {
	if r.Bounds.W <= 0 || r.Bounds.D <= 0 {
		return errors.New("room: bounds must have positive width and depth")
	}
	if r.AreaSqm <= 0 {
		return errors.New("room: area_sqm must be > 0")
	}
	wallIDs := make(map[string]bool, len(r.Walls))
	for i := range r.Walls {
		if err := r.Walls[i].Validate(); err != nil {
			return err
		}
		wallIDs[r.Walls[i].ID] = true
	}
	for i := range r.Doors {
		if err := r.Doors[i].Validate(); err != nil {
			return err
		}
		if r.Doors[i].WallID != "" && !wallIDs[r.Doors[i].WallID] {
			return fmt.Errorf("door %s: references unknown wall %s", r.Doors[i].ID, r.Doors[i].WallID)
		}
	}
	for i := range r.Windows {
		if err := r.Windows[i].Validate(); err != nil {
			return err
		}
		if r.Windows[i].WallID != "" && !wallIDs[r.Windows[i].WallID] {
			return fmt.Errorf("window %s: references unknown wall %s", r.Windows[i].ID, r.Windows[i].WallID)
		}
	}
	return nil
}

// Polygon returns the room boundary as a point loop, in counter-clockwise
// order, suitable for geometry.Contains/PointInPolygon. For a rectangular
// room (no explicit wall polygon beyond the bounding box) this is simply
// the four corners of Bounds.
func (r *Room) Polygon() []geometry.Point {
	c := r.Bounds.Corners()
	return c[:]
}
