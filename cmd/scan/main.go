package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"cfb-edge/internal/alerts"
	"cfb-edge/internal/analysis"
	"cfb-edge/internal/api"
	"cfb-edge/internal/config"
	"cfb-edge/internal/engine"
	"cfb-edge/internal/lines"
	"cfb-edge/internal/logger"
	"cfb-edge/internal/promos"
)

func main() {
	log := logger.New(logger.OptionsFromEnv())
	cfg := config.Load()

	if err := config.Validate(cfg); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.APIKey == "" {
		log.Fatal("CFBD_API_KEY is required")
	}

	analysisCfg, err := config.LoadEngineFile(cfg.EngineFile, analysis.DefaultConfig())
	if err != nil {
		log.WithError(err).Fatal("Invalid engine configuration")
	}
	if err := config.ValidateEngine(analysisCfg); err != nil {
		log.WithError(err).Fatal("Invalid engine configuration")
	}

	client := api.NewCFBDClient(cfg.APIKey, analysisCfg.StandardPrice)
	notifier := alerts.NewNotifier(log.WithComponent("alerts"), cfg.AlertCooldown)
	boosts := promos.NewSynthetic(cfg.BoostSeed, analysisCfg.Boost, time.Now)

	// Snapshots are optional; the scanner still works straight off the feed.
	var store engine.SnapshotStore
	if cfg.SnapshotPath != "" {
		s, err := lines.Open(cfg.SnapshotPath)
		if err != nil {
			log.WithError(err).WithField("path", cfg.SnapshotPath).Warn("Snapshot store disabled")
		} else {
			defer s.Close()
			store = s
		}
	}

	notifier.LogStartup(logrus.Fields{
		"year":        cfg.Year,
		"week":        cfg.Week,
		"season_type": cfg.SeasonType,
		"market":      cfg.Market,
		"min_ev":      cfg.MinEV,
		"min_gap":     cfg.MinGap,
		"sort":        string(cfg.SortKey) + " " + string(cfg.SortDir),
		"sportsbooks": config.FormatSportsbooks(cfg.Sportsbooks),
		"poll":        cfg.PollInterval.String(),
		"snapshot_db": cfg.SnapshotPath,
		"boost_seed":  cfg.BoostSeed,
	})

	eng := engine.New(client, store, boosts, notifier, log.WithComponent("engine"), cfg, analysisCfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunOnce {
		if _, err := eng.Scan(ctx); err != nil {
			log.WithError(err).Error("Scan failed")
			stop()
			os.Exit(1)
		}
		return
	}

	if cfg.Port != "" {
		go startHealthServer(ctx, log, cfg.Port)
	}

	eng.Run(ctx)
}

func startHealthServer(ctx context.Context, log *logger.Log, port string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("CFB Edge Scanner - Running"))
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", srv.Addr).Info("Health server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("Health server error")
	}
}
