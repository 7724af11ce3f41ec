package promos

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cfb-edge/internal/analysis"
	"cfb-edge/internal/mathutil"
	"cfb-edge/internal/odds"
)

// DefaultSportsbooks is used when a game carries no quotes to borrow a book from.
var DefaultSportsbooks = []string{"DraftKings", "FanDuel", "BetMGM", "Caesars"}

// Synthetic generates profit boosts from a seeded RNG. The same seed, band
// and clock produce the same boosts, which keeps scans reproducible.
type Synthetic struct {
	mu   sync.Mutex
	rng  *rand.Rand
	band analysis.BoostBand
	now  func() time.Time
}

// NewSynthetic creates a generator. A nil clock defaults to time.Now.
func NewSynthetic(seed int64, band analysis.BoostBand, now func() time.Time) *Synthetic {
	if now == nil {
		now = time.Now
	}
	return &Synthetic{
		rng:  rand.New(rand.NewSource(seed)),
		band: band,
		now:  now,
	}
}

// Boosts implements analysis.BoostSource. Each game gets between 1 and
// band.MaxPerGame boosts.
func (s *Synthetic) Boosts(game analysis.Game) []analysis.BoostCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxPerGame := s.band.MaxPerGame
	if maxPerGame < 1 {
		maxPerGame = 1
	}
	count := 1 + s.rng.Intn(maxPerGame)

	books := gameSportsbooks(game)
	expires := s.now().Add(s.band.Lifetime)

	boosts := make([]analysis.BoostCandidate, 0, count)
	for i := 0; i < count; i++ {
		original := pickBaseline(s.rng, s.band.BaselineMin, s.band.BaselineMax)
		multiplier := mathutil.RoundTo(mathutil.Lerp(s.band.MultiplierMin, s.band.MultiplierMax, s.rng.Float64()), 2)

		boosted, err := analysis.ApplyBoost(original, multiplier)
		if err != nil {
			continue
		}

		side, team := odds.SideHome, game.HomeTeam
		if s.rng.Intn(2) == 1 {
			side, team = odds.SideAway, game.AwayTeam
		}

		boosts = append(boosts, analysis.BoostCandidate{
			Sportsbook:   books[s.rng.Intn(len(books))],
			Description:  fmt.Sprintf("%s to win (%.0f%% profit boost)", team, (multiplier-1)*100),
			Side:         side,
			OriginalOdds: original,
			BoostedOdds:  boosted,
			Multiplier:   multiplier,
			ExpiresAt:    expires,
		})
	}
	return boosts
}

// pickBaseline draws a valid American price from [lo, hi], skipping the
// (-100, +100) hole. An empty range falls back to -110.
func pickBaseline(rng *rand.Rand, lo, hi int) int {
	var neg, pos int
	if lo <= -100 {
		neg = min(hi, -100) - lo + 1
	}
	if hi >= 100 {
		pos = hi - max(lo, 100) + 1
	}
	if neg <= 0 && pos <= 0 {
		return -110
	}
	neg, pos = max(neg, 0), max(pos, 0)

	n := rng.Intn(neg + pos)
	if n < neg {
		return lo + n
	}
	return max(lo, 100) + (n - neg)
}

func gameSportsbooks(game analysis.Game) []string {
	seen := make(map[string]bool)
	var books []string
	for _, q := range game.Lines {
		if q.Provider == "" || seen[q.Provider] {
			continue
		}
		seen[q.Provider] = true
		books = append(books, q.Provider)
	}
	if len(books) == 0 {
		return DefaultSportsbooks
	}
	return books
}
