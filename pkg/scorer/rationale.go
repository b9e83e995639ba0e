package scorer

import "github.com/caspian-labs/roomcraft/pkg/layout"

// strategyProse maps each strategy to the base sentence of its rationale.
var strategyProse = map[layout.Strategy]string{
	layout.StrategyConversation: "Optimized for social interaction with furniture arranged to encourage conversation and comfortable seating distances.",
	layout.StrategyWork:         "Designed for productivity with dedicated workspace near natural light and separate relaxation area.",
	layout.StrategyEntertainment: "Centered around media consumption with optimal TV viewing angles and comfortable seating arrangement.",
}

const defaultProse = "Balanced layout considering room constraints and user preferences."

// Rationale builds the human-readable summary for a scored layout: the
// strategy's base sentence, suffixed by a sentence keyed on the final
// score's bucket.
func Rationale(strategy layout.Strategy, finalScore float64) string {
	base, ok := strategyProse[strategy]
	if !ok {
		base = defaultProse
	}
	switch {
	case finalScore >= 0.85:
		return base + " Excellent spatial efficiency and flow."
	case finalScore >= 0.75:
		return base + " Good balance of function and aesthetics."
	default:
		return base + " Functional arrangement with room for optimization."
	}
}

// Coverage-ratio band considered ideal for furnished living spaces.
const (
	utilizationBandLow  = 0.25
	utilizationBandHigh = 0.35
)

// UtilizationNote returns a short supplementary remark about a layout's
// coverage ratio relative to the 25%-35% band considered ideal for living
// spaces, or "" when the ratio is already in that band.
func UtilizationNote(coverageRatio float64) string {
	switch {
	case coverageRatio < utilizationBandLow:
		return "Room is under-furnished relative to the ideal space utilization range."
	case coverageRatio > utilizationBandHigh:
		return "Room is over-furnished relative to the ideal space utilization range."
	default:
		return ""
	}
}
