package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"cfb-edge/internal/analysis"
)

const (
	defaultBaseURL    = "https://api.collegefootballdata.com"
	requestsPerMinute = 60
	requestTimeout    = 15 * time.Second
	maxRetries        = 3
)

// CFBDClient fetches betting lines from collegefootballdata.com
type CFBDClient struct {
	apiKey        string
	baseURL       string
	standardPrice int
	client        *RateLimitedClient
}

// NewCFBDClient creates a new API client. standardPrice is filled in for
// spread and total juice, which the lines endpoint does not report.
func NewCFBDClient(apiKey string, standardPrice int) *CFBDClient {
	return &CFBDClient{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		standardPrice: standardPrice,
		client:        NewRateLimitedClient(requestsPerMinute, requestTimeout, maxRetries),
	}
}

// WithBaseURL points the client at another host (tests, proxies).
func (c *CFBDClient) WithBaseURL(baseURL string) *CFBDClient {
	c.baseURL = baseURL
	return c
}

// BettingGame is one game in the /lines response
type BettingGame struct {
	ID         int        `json:"id"`
	Season     int        `json:"season"`
	SeasonType string     `json:"seasonType"`
	Week       int        `json:"week"`
	StartDate  time.Time  `json:"startDate"`
	HomeTeam   string     `json:"homeTeam"`
	HomeScore  *int       `json:"homeScore"`
	AwayTeam   string     `json:"awayTeam"`
	AwayScore  *int       `json:"awayScore"`
	Lines      []CFBDLine `json:"lines"`
}

// CFBDLine is one provider's line. Spread is from the home team's side.
type CFBDLine struct {
	Provider        string   `json:"provider"`
	Spread          *float64 `json:"spread"`
	FormattedSpread string   `json:"formattedSpread"`
	SpreadOpen      *float64 `json:"spreadOpen"`
	OverUnder       *float64 `json:"overUnder"`
	OverUnderOpen   *float64 `json:"overUnderOpen"`
	HomeMoneyline   *int     `json:"homeMoneyline"`
	AwayMoneyline   *int     `json:"awayMoneyline"`
}

// LinesQuery selects the games to fetch. Zero Week fetches the whole season.
type LinesQuery struct {
	Year       int
	Week       int
	SeasonType string
	Team       string
}

func (q LinesQuery) values() url.Values {
	v := url.Values{}
	v.Set("year", strconv.Itoa(q.Year))
	if q.Week > 0 {
		v.Set("week", strconv.Itoa(q.Week))
	}
	if q.SeasonType != "" {
		v.Set("seasonType", q.SeasonType)
	}
	if q.Team != "" {
		v.Set("team", q.Team)
	}
	return v
}

// GetLines fetches raw betting lines
func (c *CFBDClient) GetLines(ctx context.Context, q LinesQuery) ([]BettingGame, error) {
	u := fmt.Sprintf("%s/lines?%s", c.baseURL, q.values().Encode())

	body, err := c.client.Get(ctx, u, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"Accept":        "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching lines: %w", err)
	}

	var games []BettingGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("parsing lines: %w", err)
	}
	return games, nil
}

// FetchGames fetches lines and converts them into analysis snapshots.
// Games that have already been scored are skipped.
func (c *CFBDClient) FetchGames(ctx context.Context, q LinesQuery) ([]analysis.Game, error) {
	raw, err := c.GetLines(ctx, q)
	if err != nil {
		return nil, err
	}

	games := make([]analysis.Game, 0, len(raw))
	for _, g := range raw {
		if g.HomeScore != nil && g.AwayScore != nil {
			continue
		}
		games = append(games, ToGame(g, c.standardPrice))
	}
	return games, nil
}

// ToGame maps a CFBD game onto the analysis model.
func ToGame(g BettingGame, standardPrice int) analysis.Game {
	game := analysis.Game{
		ID:        g.ID,
		Season:    g.Season,
		Week:      g.Week,
		StartDate: g.StartDate,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Lines:     make([]analysis.LineQuote, 0, len(g.Lines)),
	}

	for _, l := range g.Lines {
		q := analysis.LineQuote{Provider: l.Provider}
		if l.Spread != nil {
			spread := *l.Spread
			q.HomeSpread = &spread
			q.HomeSpreadOdds = standardPrice
			q.AwaySpreadOdds = standardPrice
		}
		if l.OverUnder != nil {
			total := *l.OverUnder
			q.OverUnder = &total
			q.OverOdds = standardPrice
			q.UnderOdds = standardPrice
		}
		if l.HomeMoneyline != nil {
			q.HomeMoneyline = *l.HomeMoneyline
		}
		if l.AwayMoneyline != nil {
			q.AwayMoneyline = *l.AwayMoneyline
		}
		game.Lines = append(game.Lines, q)
	}

	return game
}
