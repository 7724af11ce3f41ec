package odds

import (
	"fmt"
	"strings"
)

// MarketType represents the type of betting market
type MarketType string

const (
	MarketMoneyline MarketType = "moneyline"
	MarketSpread    MarketType = "spread"
	MarketTotal     MarketType = "total"
)

// Side names the half of a two-way market a wager is placed on.
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// ParseMarket accepts the market names used in configuration ("spread",
// "spreads", "total", "totals", "ou").
func ParseMarket(s string) (MarketType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spread", "spreads":
		return MarketSpread, nil
	case "total", "totals", "ou", "overunder":
		return MarketTotal, nil
	case "moneyline", "ml", "h2h":
		return MarketMoneyline, nil
	}
	return "", fmt.Errorf("unknown market %q", s)
}
