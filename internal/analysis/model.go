package analysis

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cfb-edge/internal/odds"
)

// idNamespace scopes the name-based UUIDs handed out for opportunities, so
// the same inputs always produce the same ID across scans.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("cfb-edge/opportunity"))

// LineQuote is one sportsbook's quote for a game. A nil or zero line means
// the book did not post that market.
type LineQuote struct {
	Provider       string
	HomeSpread     *float64
	HomeSpreadOdds int
	AwaySpreadOdds int
	OverUnder      *float64
	OverOdds       int
	UnderOdds      int
	HomeMoneyline  int
	AwayMoneyline  int
}

// Game is a snapshot of every quote captured for one matchup.
type Game struct {
	ID        int
	Season    int
	Week      int
	StartDate time.Time
	HomeTeam  string
	AwayTeam  string
	Lines     []LineQuote
}

// MiddleLeg is one wager of a middle.
type MiddleLeg struct {
	Provider string
	Side     odds.Side
	Line     float64 // Line from the bettor's side: away spread for away, total for over/under
	Odds     int
}

// MiddleOpportunity is a pair of opposing wagers at different books whose
// lines leave a window where both win.
type MiddleOpportunity struct {
	ID                   string
	GameID               int
	HomeTeam             string
	AwayTeam             string
	Market               odds.MarketType
	LegA                 MiddleLeg
	LegB                 MiddleLeg
	Gap                  float64
	EstimatedProbability float64 // Percent
	MaxLoss              float64
	MaxProfit            float64
	ROI                  float64 // Percent of total staked
}

// BoostOpportunity is a promotional price whose edge over the pre-boost
// price clears the EV threshold.
type BoostOpportunity struct {
	ID                string
	GameID            int
	HomeTeam          string
	AwayTeam          string
	Sportsbook        string
	Description       string
	Side              odds.Side
	OriginalOdds      int
	BoostedOdds       int
	BoostValuePercent float64
	EstimatedEV       float64 // Percent, never negative
	KellyStake        float64 // Fraction of bankroll
	ExpiresAt         time.Time
}

func opportunityID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|"))).String()
}
