package catalog

import "sort"

// MaxBudgetFraction is the fraction of the budget a single item's price may
// consume before it is filtered out.
const MaxBudgetFraction = 0.4

// SmallRoomAreaSqm is the area threshold below which the room-size filter
// engages.
const SmallRoomAreaSqm = 15.0

// SmallRoomMaxFootprintCM2 is the maximum item footprint (width*depth, in
// cm^2) allowed once the room-size filter engages.
const SmallRoomMaxFootprintCM2 = 2e4

// Filter applies the style, budget, and room-size pruning rules to
// a catalog and returns the feasible subset, stable-sorted by Priority
// ascending.
//
// Style filter: items are kept if their style tags intersect prefs; if that
// would empty the set, style is ignored entirely (the unfiltered set is
// used instead). Budget filter: items priced above 40% of budgetCents are
// dropped (skipped entirely when budgetCents is nil). Room-size filter:
// in rooms under 15 sqm, items whose footprint exceeds 20,000 cm^2 are
// dropped.
func Filter(items []CatalogItem, prefs []StyleTag, budgetCents *int, areaSqm float64) []CatalogItem {
	out := applyStyleFilter(items, prefs)
	out = applyBudgetFilter(out, budgetCents)
	out = applyRoomSizeFilter(out, areaSqm)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

func applyStyleFilter(items []CatalogItem, prefs []StyleTag) []CatalogItem {
	if len(prefs) == 0 {
		return append([]CatalogItem(nil), items...)
	}
	filtered := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if item.HasStyle(prefs) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return append([]CatalogItem(nil), items...)
	}
	return filtered
}

func applyBudgetFilter(items []CatalogItem, budgetCents *int) []CatalogItem {
	if budgetCents == nil {
		return items
	}
	threshold := float64(*budgetCents) * MaxBudgetFraction
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if float64(item.PriceCents) <= threshold {
			out = append(out, item)
		}
	}
	return out
}

func applyRoomSizeFilter(items []CatalogItem, areaSqm float64) []CatalogItem {
	if areaSqm >= SmallRoomAreaSqm {
		return items
	}
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if float64(item.WidthCM*item.DepthCM) <= SmallRoomMaxFootprintCM2 {
			out = append(out, item)
		}
	}
	return out
}
