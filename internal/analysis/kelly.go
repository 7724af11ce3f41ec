package analysis

import "math"

// CalculateKellyDecimal computes Kelly for decimal odds
// f* = (p * d - 1) / (d - 1)
// where d = decimal odds
//
// fraction parameter scales the result (e.g., 0.25 for quarter Kelly)
func CalculateKellyDecimal(trueProb, decimalOdds, fraction float64) float64 {
	if decimalOdds <= 1 || trueProb <= 0 || trueProb >= 1 {
		return 0
	}

	p := trueProb
	d := decimalOdds

	kelly := (p*d - 1) / (d - 1)

	kelly = math.Max(0, kelly)
	kelly = math.Min(kelly, 1.0)

	return kelly * fraction
}

// BetSize returns the amount to stake given a bankroll and a Kelly
// fraction, capped at maxBet if provided (0 = no cap)
func BetSize(bankroll, kellyPct, maxBet float64) float64 {
	if bankroll <= 0 || kellyPct <= 0 {
		return 0
	}

	betSize := bankroll * kellyPct
	if maxBet > 0 && betSize > maxBet {
		betSize = maxBet
	}
	return betSize
}
