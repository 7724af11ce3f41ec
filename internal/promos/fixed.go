package promos

import "cfb-edge/internal/analysis"

// Fixed serves a pre-built set of boosts keyed by game ID.
type Fixed map[int][]analysis.BoostCandidate

// Boosts implements analysis.BoostSource.
func (f Fixed) Boosts(game analysis.Game) []analysis.BoostCandidate {
	return f[game.ID]
}
