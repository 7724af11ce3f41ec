package analysis

import (
	"fmt"
	"math"
	"time"

	"cfb-edge/internal/odds"
)

// BoostCandidate is a promotional price offered by a book before any EV
// screening.
type BoostCandidate struct {
	Sportsbook   string
	Description  string
	Side         odds.Side
	OriginalOdds int
	BoostedOdds  int
	Multiplier   float64 // Profit multiplier, 0 if the feed does not state one
	ExpiresAt    time.Time
}

// BoostSource supplies boost candidates for a game. Production wiring reads
// a promotions feed; tests use a fixed fixture.
type BoostSource interface {
	Boosts(game Game) []BoostCandidate
}

// ApplyBoost multiplies the profit portion of an American price.
// Example: -110 with a 1.5x boost → +136
func ApplyBoost(original int, multiplier float64) (int, error) {
	decimal, err := odds.AmericanToDecimal(original)
	if err != nil {
		return 0, err
	}
	return odds.DecimalToAmerican(1 + (decimal-1)*multiplier)
}

// BoostValuePercent reports how much of the original payout the boost adds.
// A stated multiplier wins; otherwise it is derived from the two prices.
func BoostValuePercent(c BoostCandidate) float64 {
	if c.Multiplier > 0 {
		return (c.Multiplier - 1) * 100
	}

	orig, err := odds.AmericanToDecimal(c.OriginalOdds)
	if err != nil {
		return 0
	}
	boosted, err := odds.AmericanToDecimal(c.BoostedOdds)
	if err != nil {
		return 0
	}
	return ((boosted-1)/(orig-1) - 1) * 100
}

// FilterBoosts prices every candidate from src against its pre-boost price
// and keeps those with EV >= minEV. EV is floored at 0, so a boost that
// worsens the price never passes a positive threshold. Results keep game
// order, then source order.
//
// src must not be nil.
func FilterBoosts(games []Game, minEV float64, src BoostSource, cfg Config) []BoostOpportunity {
	if src == nil {
		panic("analysis: FilterBoosts called with nil BoostSource")
	}

	var boosts []BoostOpportunity
	for _, game := range games {
		for i, c := range src.Boosts(game) {
			ev := math.Max(0, CalculateEV(c.BoostedOdds, c.OriginalOdds))
			if ev < minEV {
				continue
			}

			var kelly float64
			if decimal, err := odds.AmericanToDecimal(c.BoostedOdds); err == nil {
				kelly = CalculateKellyDecimal(odds.AmericanToImplied(c.OriginalOdds), decimal, cfg.KellyFraction)
			}

			boosts = append(boosts, BoostOpportunity{
				ID: opportunityID(
					fmt.Sprint(game.ID), "boost", c.Sportsbook, string(c.Side),
					fmt.Sprint(c.OriginalOdds), fmt.Sprint(c.BoostedOdds), fmt.Sprint(i),
				),
				GameID:            game.ID,
				HomeTeam:          game.HomeTeam,
				AwayTeam:          game.AwayTeam,
				Sportsbook:        c.Sportsbook,
				Description:       c.Description,
				Side:              c.Side,
				OriginalOdds:      c.OriginalOdds,
				BoostedOdds:       c.BoostedOdds,
				BoostValuePercent: BoostValuePercent(c),
				EstimatedEV:       ev,
				KellyStake:        kelly,
				ExpiresAt:         c.ExpiresAt,
			})
		}
	}

	return boosts
}
