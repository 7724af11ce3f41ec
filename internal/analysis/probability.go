package analysis

import (
	"cfb-edge/internal/mathutil"
	"cfb-edge/internal/odds"
)

// EstimateMiddleProbability estimates, in percent, how often the final result
// lands inside a middle window of the given gap.
//
// With default bands:
//
//	spread: clamp(20 - 2*gap, 5, 25)
//	total:  clamp(25 - 1.5*gap, 8, 30)
//
// The bands are a fixed heuristic, not a fit to historical results.
func EstimateMiddleProbability(gap float64, market odds.MarketType, cfg Config) float64 {
	var band ProbabilityBand
	switch market {
	case odds.MarketSpread:
		band = cfg.SpreadBand
	case odds.MarketTotal:
		band = cfg.TotalBand
	default:
		return 0
	}
	return mathutil.Clamp(band.Base-gap*band.Slope, band.Min, band.Max)
}
