package analysis

import "cfb-edge/internal/odds"

// CalculateEV returns the percentage edge of quotedOdds over the fair price
// implied by referenceOdds:
//
//	EV% = (decimal(quoted) * 1/decimal(reference) - 1) * 100
//
// Example: -105 against a -150 reference → +17.1%.
// A malformed price on either side yields 0 so that one bad quote is
// skipped by threshold filters instead of failing the batch.
func CalculateEV(quotedOdds, referenceOdds int) float64 {
	quoted, err := odds.AmericanToDecimal(quotedOdds)
	if err != nil {
		return 0
	}
	reference, err := odds.AmericanToDecimal(referenceOdds)
	if err != nil {
		return 0
	}

	impliedProb := 1 / reference
	return (quoted*impliedProb - 1) * 100
}
