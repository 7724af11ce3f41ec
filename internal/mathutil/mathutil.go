package mathutil

import "math"

// Clamp bounds v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundTo rounds v to the given number of decimal places.
// RoundTo(17.1428, 2) → 17.14
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Lerp maps t in [0, 1] onto [lo, hi].
func Lerp(lo, hi, t float64) float64 {
	return lo + (hi-lo)*t
}
