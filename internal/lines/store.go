package lines

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"cfb-edge/internal/analysis"
)

// Store keeps the latest captured snapshot of each game's lines
type Store struct {
	db *sql.DB
}

// Open creates or opens a snapshot database
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id INTEGER PRIMARY KEY,
		season INTEGER NOT NULL,
		week INTEGER NOT NULL,
		start_date DATETIME,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		captured_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS line_quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id INTEGER NOT NULL REFERENCES games(id),
		provider TEXT NOT NULL,
		home_spread REAL,
		home_spread_odds INTEGER NOT NULL DEFAULT 0,
		away_spread_odds INTEGER NOT NULL DEFAULT 0,
		over_under REAL,
		over_odds INTEGER NOT NULL DEFAULT 0,
		under_odds INTEGER NOT NULL DEFAULT 0,
		home_moneyline INTEGER NOT NULL DEFAULT 0,
		away_moneyline INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_games_week ON games(season, week);
	CREATE INDEX IF NOT EXISTS idx_line_quotes_game ON line_quotes(game_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot stores games, replacing every quote previously captured for
// each of them. Quotes are never patched in place.
func (s *Store) SaveSnapshot(ctx context.Context, games []analysis.Game, capturedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, g := range games {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO games (id, season, week, start_date, home_team, away_team, captured_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				season = excluded.season,
				week = excluded.week,
				start_date = excluded.start_date,
				home_team = excluded.home_team,
				away_team = excluded.away_team,
				captured_at = excluded.captured_at
		`, g.ID, g.Season, g.Week, g.StartDate.UTC(), g.HomeTeam, g.AwayTeam, capturedAt.UTC())
		if err != nil {
			return fmt.Errorf("saving game %d: %w", g.ID, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM line_quotes WHERE game_id = ?", g.ID); err != nil {
			return fmt.Errorf("clearing quotes for game %d: %w", g.ID, err)
		}

		for _, q := range g.Lines {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO line_quotes (game_id, provider, home_spread, home_spread_odds, away_spread_odds,
					over_under, over_odds, under_odds, home_moneyline, away_moneyline)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, g.ID, q.Provider, nullable(q.HomeSpread), q.HomeSpreadOdds, q.AwaySpreadOdds,
				nullable(q.OverUnder), q.OverOdds, q.UnderOdds, q.HomeMoneyline, q.AwayMoneyline)
			if err != nil {
				return fmt.Errorf("saving quote for game %d: %w", g.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored games for a season, ordered by start
// date. Week 0 returns the whole season.
func (s *Store) LoadSnapshot(ctx context.Context, season, week int) ([]analysis.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, season, week, start_date, home_team, away_team
		FROM games
		WHERE season = ? AND (? = 0 OR week = ?)
		ORDER BY start_date, id
	`, season, week, week)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []analysis.Game
	index := make(map[int]int)
	for rows.Next() {
		var g analysis.Game
		var start sql.NullTime
		if err := rows.Scan(&g.ID, &g.Season, &g.Week, &start, &g.HomeTeam, &g.AwayTeam); err != nil {
			return nil, fmt.Errorf("scanning game row: %w", err)
		}
		if start.Valid {
			g.StartDate = start.Time
		}
		index[g.ID] = len(games)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return games, nil
	}

	quotes, err := s.db.QueryContext(ctx, `
		SELECT q.game_id, q.provider, q.home_spread, q.home_spread_odds, q.away_spread_odds,
			q.over_under, q.over_odds, q.under_odds, q.home_moneyline, q.away_moneyline
		FROM line_quotes q
		JOIN games g ON g.id = q.game_id
		WHERE g.season = ? AND (? = 0 OR g.week = ?)
		ORDER BY q.game_id, q.id
	`, season, week, week)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}
	defer quotes.Close()

	for quotes.Next() {
		var gameID int
		var q analysis.LineQuote
		var spread, total sql.NullFloat64
		if err := quotes.Scan(&gameID, &q.Provider, &spread, &q.HomeSpreadOdds, &q.AwaySpreadOdds,
			&total, &q.OverOdds, &q.UnderOdds, &q.HomeMoneyline, &q.AwayMoneyline); err != nil {
			return nil, fmt.Errorf("scanning quote row: %w", err)
		}
		if spread.Valid {
			q.HomeSpread = &spread.Float64
		}
		if total.Valid {
			q.OverUnder = &total.Float64
		}
		if i, ok := index[gameID]; ok {
			games[i].Lines = append(games[i].Lines, q)
		}
	}

	return games, quotes.Err()
}

// CapturedAt reports when a game's snapshot was last replaced.
func (s *Store) CapturedAt(ctx context.Context, gameID int) (time.Time, bool, error) {
	var t time.Time
	err := s.db.QueryRowContext(ctx, "SELECT captured_at FROM games WHERE id = ?", gameID).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("scanning captured_at: %w", err)
	}
	return t, true, nil
}

// DeleteSeason drops every stored game and quote for a season.
func (s *Store) DeleteSeason(ctx context.Context, season int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM line_quotes WHERE game_id IN (SELECT id FROM games WHERE season = ?)
	`, season); err != nil {
		return fmt.Errorf("deleting quotes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM games WHERE season = ?", season); err != nil {
		return fmt.Errorf("deleting games: %w", err)
	}
	return tx.Commit()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
