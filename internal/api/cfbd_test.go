package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const linesFixture = `[
  {
    "id": 401628374,
    "season": 2024,
    "seasonType": "regular",
    "week": 12,
    "startDate": "2024-11-16T20:30:00.000Z",
    "homeTeam": "Georgia",
    "homeScore": null,
    "awayTeam": "Tennessee",
    "awayScore": null,
    "lines": [
      {"provider": "DraftKings", "spread": -9.5, "formattedSpread": "Georgia -9.5", "overUnder": 48.5, "homeMoneyline": -345, "awayMoneyline": 270},
      {"provider": "Bovada", "spread": -6, "formattedSpread": "Georgia -6", "overUnder": null, "homeMoneyline": null, "awayMoneyline": null}
    ]
  },
  {
    "id": 401628375,
    "season": 2024,
    "seasonType": "regular",
    "week": 12,
    "startDate": "2024-11-16T17:00:00.000Z",
    "homeTeam": "Iowa",
    "homeScore": 17,
    "awayTeam": "UCLA",
    "awayScore": 20,
    "lines": []
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *CFBDClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewCFBDClient("test-key", -110).WithBaseURL(server.URL)
	c.client.backoff = time.Millisecond
	return c
}

func TestFetchGames(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lines" {
			t.Errorf("path = %s, want /lines", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("year") != "2024" || q.Get("week") != "12" || q.Get("seasonType") != "regular" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(linesFixture))
	})

	games, err := c.FetchGames(context.Background(), LinesQuery{Year: 2024, Week: 12, SeasonType: "regular"})
	if err != nil {
		t.Fatalf("FetchGames: %v", err)
	}

	// Final Iowa game is skipped
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.ID != 401628374 || g.HomeTeam != "Georgia" || g.AwayTeam != "Tennessee" || g.Week != 12 {
		t.Errorf("game = %+v", g)
	}
	if !g.StartDate.Equal(time.Date(2024, 11, 16, 20, 30, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", g.StartDate)
	}
	if len(g.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(g.Lines))
	}

	dk := g.Lines[0]
	if dk.HomeSpread == nil || *dk.HomeSpread != -9.5 {
		t.Errorf("DraftKings spread = %v", dk.HomeSpread)
	}
	if dk.HomeSpreadOdds != -110 || dk.AwaySpreadOdds != -110 {
		t.Errorf("spread juice = %d/%d, want standard price", dk.HomeSpreadOdds, dk.AwaySpreadOdds)
	}
	if dk.OverUnder == nil || *dk.OverUnder != 48.5 || dk.OverOdds != -110 {
		t.Errorf("DraftKings total = %v @ %d", dk.OverUnder, dk.OverOdds)
	}
	if dk.HomeMoneyline != -345 || dk.AwayMoneyline != 270 {
		t.Errorf("moneyline = %d/%d", dk.HomeMoneyline, dk.AwayMoneyline)
	}

	bov := g.Lines[1]
	if bov.OverUnder != nil || bov.OverOdds != 0 {
		t.Errorf("Bovada should have no total, got %v @ %d", bov.OverUnder, bov.OverOdds)
	}
}

func TestFetchGamesRetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("[]"))
	})

	games, err := c.FetchGames(context.Background(), LinesQuery{Year: 2024})
	if err != nil {
		t.Fatalf("FetchGames: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected no games, got %d", len(games))
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestFetchGamesGivesUp(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := c.FetchGames(context.Background(), LinesQuery{Year: 2024}); err == nil {
		t.Fatal("expected error after retries")
	}
	if got := atomic.LoadInt32(&calls); got != maxRetries+1 {
		t.Errorf("calls = %d, want %d", got, maxRetries+1)
	}
}

func TestFetchGamesClientError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad key"))
	})

	if _, err := c.FetchGames(context.Background(), LinesQuery{Year: 2024}); err == nil {
		t.Fatal("expected error for 401")
	}
}

func TestFetchGamesMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	})

	if _, err := c.FetchGames(context.Background(), LinesQuery{Year: 2024}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFetchGamesCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchGames(ctx, LinesQuery{Year: 2024}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLinesQueryOmitsZeroWeek(t *testing.T) {
	v := LinesQuery{Year: 2025}.values()
	if v.Has("week") || v.Has("seasonType") || v.Has("team") {
		t.Errorf("unexpected params: %s", v.Encode())
	}
	if v.Get("year") != "2025" {
		t.Errorf("year = %q", v.Get("year"))
	}
}
