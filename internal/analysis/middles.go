package analysis

import (
	"fmt"
	"math"
	"strings"

	"cfb-edge/internal/odds"
)

// marketLine is one book's line for a single market, with the prices of
// both sides. For spreads: sideA = home, sideB = away. For totals:
// sideA = over, sideB = under.
type marketLine struct {
	provider string
	line     float64
	sideA    int
	sideB    int
}

// collectLines extracts every usable line for the market, in quote order.
// Missing or zero lines are dropped.
func collectLines(game Game, market odds.MarketType) []marketLine {
	var lines []marketLine
	for _, q := range game.Lines {
		switch market {
		case odds.MarketSpread:
			if q.HomeSpread == nil || *q.HomeSpread == 0 {
				continue
			}
			lines = append(lines, marketLine{q.Provider, *q.HomeSpread, q.HomeSpreadOdds, q.AwaySpreadOdds})
		case odds.MarketTotal:
			if q.OverUnder == nil || *q.OverUnder == 0 {
				continue
			}
			lines = append(lines, marketLine{q.Provider, *q.OverUnder, q.OverOdds, q.UnderOdds})
		}
	}
	return lines
}

// FindMiddles compares every pair of books quoting the market for a game and
// returns each pair whose lines are at least minGap apart.
//
// Spread: home is bet at the book with the higher home spread and away at
// the other, e.g. home +4 / away +3 wins both when home loses by 1-3.
// Total: over is bet at the lower total and under at the higher.
//
// A game with fewer than two usable quotes yields nothing. Pairs quoted by
// the same provider are skipped.
func FindMiddles(game Game, market odds.MarketType, minGap float64, cfg Config) []MiddleOpportunity {
	var middles []MiddleOpportunity

	if market != odds.MarketSpread && market != odds.MarketTotal {
		return middles
	}

	lines := collectLines(game, market)
	if len(lines) < 2 {
		return middles
	}

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			a, b := lines[i], lines[j]
			if strings.EqualFold(a.provider, b.provider) {
				continue
			}

			gap := math.Abs(a.line - b.line)
			if gap < minGap {
				continue
			}

			legA, legB := pairLegs(a, b, market)
			outcome := SimulateMiddleOutcome(legA, legB, cfg.StakePerLeg)

			middles = append(middles, MiddleOpportunity{
				ID: opportunityID(
					fmt.Sprint(game.ID), string(market),
					legA.Provider, fmt.Sprint(legA.Line),
					legB.Provider, fmt.Sprint(legB.Line),
				),
				GameID:               game.ID,
				HomeTeam:             game.HomeTeam,
				AwayTeam:             game.AwayTeam,
				Market:               market,
				LegA:                 legA,
				LegB:                 legB,
				Gap:                  gap,
				EstimatedProbability: EstimateMiddleProbability(gap, market, cfg),
				MaxLoss:              outcome.MaxLoss,
				MaxProfit:            outcome.MaxProfit,
				ROI:                  outcome.ROI,
			})
		}
	}

	return middles
}

// pairLegs picks the side to bet at each book so the two wagers bracket
// the window between the lines.
func pairLegs(a, b marketLine, market odds.MarketType) (MiddleLeg, MiddleLeg) {
	if market == odds.MarketSpread {
		hi, lo := a, b
		if b.line > a.line {
			hi, lo = b, a
		}
		return MiddleLeg{Provider: hi.provider, Side: odds.SideHome, Line: hi.line, Odds: hi.sideA},
			MiddleLeg{Provider: lo.provider, Side: odds.SideAway, Line: -lo.line, Odds: lo.sideB}
	}

	lo, hi := a, b
	if b.line < a.line {
		lo, hi = b, a
	}
	return MiddleLeg{Provider: lo.provider, Side: odds.SideOver, Line: lo.line, Odds: lo.sideA},
		MiddleLeg{Provider: hi.provider, Side: odds.SideUnder, Line: hi.line, Odds: hi.sideB}
}

// FindAllMiddles runs FindMiddles over every game and concatenates the
// results in game order.
func FindAllMiddles(games []Game, market odds.MarketType, minGap float64, cfg Config) []MiddleOpportunity {
	var middles []MiddleOpportunity
	for _, game := range games {
		middles = append(middles, FindMiddles(game, market, minGap, cfg)...)
	}
	return middles
}
