package odds

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidOdds is returned for an American price of 0, which no book quotes.
	ErrInvalidOdds = errors.New("invalid american odds")

	// ErrInvalidDecimal is returned for decimal odds at or below 1.0.
	ErrInvalidDecimal = errors.New("invalid decimal odds")
)

// AmericanToDecimal converts American odds to a decimal payout multiplier.
// Example: +150 → 2.50, -110 → 1.909
func AmericanToDecimal(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrInvalidOdds
	}

	if odds > 0 {
		return 1 + float64(odds)/100.0, nil
	}
	return 1 + 100.0/math.Abs(float64(odds)), nil
}

// DecimalToAmerican converts a decimal multiplier back to American odds,
// rounded to the nearest whole price.
// Example: 2.50 → +150, 1.909 → -110
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1 || math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDecimal, decimal)
	}

	if decimal >= 2 {
		return int(math.Round((decimal - 1) * 100)), nil
	}
	return int(math.Round(-100 / (decimal - 1))), nil
}

// AmericanToImplied converts American odds to implied probability
// Example: -150 → 0.6 (60%), +150 → 0.4 (40%)
func AmericanToImplied(odds int) float64 {
	decimal, err := AmericanToDecimal(odds)
	if err != nil {
		return 0
	}
	return 1 / decimal
}

// FormatAmerican renders a price the way books print it: "+150", "-110".
func FormatAmerican(odds int) string {
	if odds > 0 {
		return fmt.Sprintf("+%d", odds)
	}
	return fmt.Sprintf("%d", odds)
}
