package analysis

import (
	"math"

	"cfb-edge/internal/odds"
)

// Outcome summarizes the settlement range of a two-leg middle.
type Outcome struct {
	MaxLoss    float64
	MaxProfit  float64
	ROI        float64 // MaxProfit over total staked, in percent
	Degenerate bool    // A leg had no usable price; all values are zero
}

// SimulateMiddleOutcome settles both legs of a middle at stakePerLeg each
// across the four scenarios:
//
//	A wins, B loses
//	B wins, A loses
//	both win (result lands in the window)
//	both lose, settled as a push (0)
//
// MaxLoss and MaxProfit are the worst and best of the four.
func SimulateMiddleOutcome(a, b MiddleLeg, stakePerLeg float64) Outcome {
	decA, errA := odds.AmericanToDecimal(a.Odds)
	decB, errB := odds.AmericanToDecimal(b.Odds)
	if errA != nil || errB != nil || stakePerLeg <= 0 {
		return Outcome{Degenerate: true}
	}

	profitA := stakePerLeg*decA - stakePerLeg
	profitB := stakePerLeg*decB - stakePerLeg
	loss := -stakePerLeg

	scenarios := [4]float64{
		profitA + loss,
		profitB + loss,
		profitA + profitB,
		0,
	}

	maxLoss, maxProfit := scenarios[0], scenarios[0]
	for _, s := range scenarios[1:] {
		maxLoss = math.Min(maxLoss, s)
		maxProfit = math.Max(maxProfit, s)
	}

	return Outcome{
		MaxLoss:   maxLoss,
		MaxProfit: maxProfit,
		ROI:       maxProfit / (2 * stakePerLeg) * 100,
	}
}
