package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"cfb-edge/internal/alerts"
	"cfb-edge/internal/analysis"
	"cfb-edge/internal/api"
	"cfb-edge/internal/config"
)

// GameSource fetches the current slate of games with their quotes.
type GameSource interface {
	FetchGames(ctx context.Context, q api.LinesQuery) ([]analysis.Game, error)
}

// SnapshotStore persists captured quotes so a scan can fall back to the last
// good snapshot when the feed is down.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, games []analysis.Game, capturedAt time.Time) error
	LoadSnapshot(ctx context.Context, season, week int) ([]analysis.Game, error)
}

// Result is the outcome of one scan cycle.
type Result struct {
	Games        int
	Middles      []analysis.MiddleOpportunity
	Boosts       []analysis.BoostOpportunity
	FromSnapshot bool
}

// Engine is the main orchestrator that polls for lines, detects middles and
// +EV boosts, and alerts on them.
type Engine struct {
	source      GameSource
	store       SnapshotStore // nil disables snapshots
	boosts      analysis.BoostSource
	notifier    *alerts.Notifier
	log         *logrus.Entry
	cfg         config.Config
	analysisCfg analysis.Config

	now func() time.Time
}

// New creates a new Engine with all dependencies. store may be nil.
func New(
	source GameSource,
	store SnapshotStore,
	boosts analysis.BoostSource,
	notifier *alerts.Notifier,
	log *logrus.Entry,
	cfg config.Config,
	analysisCfg analysis.Config,
) *Engine {
	return &Engine{
		source:      source,
		store:       store,
		boosts:      boosts,
		notifier:    notifier,
		log:         log,
		cfg:         cfg,
		analysisCfg: analysisCfg,
		now:         time.Now,
	}
}

// Run scans once immediately, then on every poll tick. It blocks until ctx
// is cancelled.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	cleanupTicker := time.NewTicker(config.DefaultCleanupInterval)
	defer cleanupTicker.Stop()

	e.log.WithField("interval", e.cfg.PollInterval.String()).Info("Starting polling loop")
	e.scanAndLog(ctx)

	for {
		select {
		case <-ctx.Done():
			e.log.Info("Scanner stopped gracefully")
			return

		case <-cleanupTicker.C:
			e.notifier.CleanupOldAlerts()

		case <-ticker.C:
			e.scanAndLog(ctx)
		}
	}
}

func (e *Engine) scanAndLog(ctx context.Context) {
	if _, err := e.Scan(ctx); err != nil && !errors.Is(err, context.Canceled) {
		e.notifier.LogError("scan", err)
	}
}

// Scan performs a single cycle: fetch lines, find middles and boosts,
// filter, sort, alert. Results are returned already filtered and sorted.
func (e *Engine) Scan(ctx context.Context) (Result, error) {
	games, fromSnapshot, err := e.fetch(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{Games: len(games), FromSnapshot: fromSnapshot}
	if len(games) == 0 {
		e.notifier.LogScan(0, 0, 0)
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	if e.store != nil && !fromSnapshot {
		g.Go(func() error {
			// A failed save should not cost us this cycle's alerts.
			if err := e.store.SaveSnapshot(gctx, games, e.now()); err != nil {
				e.notifier.LogError("saving snapshot", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		res.Middles = analysis.FindAllMiddles(games, e.cfg.Market, e.cfg.MinGap, e.analysisCfg)
		return nil
	})

	if e.boosts != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Boosts = analysis.FilterBoosts(games, e.cfg.MinEV, e.boosts, e.analysisCfg)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res.Middles = analysis.Sort(
		analysis.FilterBySportsbook(res.Middles, e.cfg.Sportsbooks),
		middleSortKey(e.cfg.SortKey), e.cfg.SortDir)
	res.Boosts = analysis.Sort(
		analysis.FilterBySportsbook(res.Boosts, e.cfg.Sportsbooks),
		e.cfg.SortKey, e.cfg.SortDir)

	for _, m := range res.Middles {
		e.notifier.AlertMiddle(m)
	}
	for _, b := range res.Boosts {
		e.notifier.AlertBoost(b)
	}

	e.notifier.LogScan(res.Games, len(res.Middles), len(res.Boosts))
	return res, nil
}

func (e *Engine) fetch(ctx context.Context) ([]analysis.Game, bool, error) {
	games, err := e.source.FetchGames(ctx, api.LinesQuery{
		Year:       e.cfg.Year,
		Week:       e.cfg.Week,
		SeasonType: e.cfg.SeasonType,
	})
	if err == nil {
		return games, false, nil
	}
	if e.store == nil || ctx.Err() != nil {
		return nil, false, fmt.Errorf("fetching games: %w", err)
	}

	e.notifier.LogError("fetching games", err)
	games, snapErr := e.store.LoadSnapshot(ctx, e.cfg.Year, e.cfg.Week)
	if snapErr != nil {
		return nil, false, errors.Join(fmt.Errorf("fetching games: %w", err), snapErr)
	}
	e.log.WithField("games", len(games)).Warn("Feed unavailable, scanning last snapshot")
	return games, true, nil
}

// middleSortKey maps boost-only keys onto the closest middle field.
// Middles carry no EV or boost value; ROI is their return measure.
func middleSortKey(key analysis.SortKey) analysis.SortKey {
	switch key {
	case analysis.SortByEV, analysis.SortByBoost:
		return analysis.SortByROI
	}
	return key
}
