// jobboard serves job search, saved jobs and application tracking.
//
// The job catalog (fixture file and/or Adzuna, refreshed by cron) is
// searched, filtered, sorted and paginated in memory. Each user's saved
// jobs, search history and applications live in the configured storage
// backend (memory, file, Redis or PostgreSQL).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"jobmate/jobboard/internal/api"
	"jobmate/jobboard/internal/catalog"
	"jobmate/jobboard/internal/config"
	"jobmate/jobboard/internal/db"
	"jobmate/jobboard/internal/logger"
	"jobmate/jobboard/internal/scheduler"
	"jobmate/jobboard/internal/tracker"
)

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "[jobboard] .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[jobboard] Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Storage ─────────────────────────────────────────────────────────────
	res, err := db.Open(ctx, cfg, logger.Component(log, "db"))
	if err != nil {
		log.Fatal().Err(err).Msg("storage")
	}
	defer res.Close()

	// ── Catalog + scheduler ─────────────────────────────────────────────────
	cat := catalog.New(buildSources(cfg, log), cfg.ExcludeTerms, logger.Component(log, "catalog"))
	sched := scheduler.New(cat, cfg.RefreshIntervalHours, logger.Component(log, "scheduler"))
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}

	// ── HTTP server ─────────────────────────────────────────────────────────
	gin.SetMode(gin.ReleaseMode)
	h := api.NewHandler(api.Deps{
		Catalog:        cat,
		Medium:         res.Medium,
		Versioned:      cfg.StoreMode == config.StoreVersioned,
		TrackerOptions: trackerOptions(cfg, res),
		Log:            logger.Component(log, "api"),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("version", api.Version).Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	cancel()
	sched.Stop()
	log.Info().Msg("stopped")
}

func buildSources(cfg *config.Config, log zerolog.Logger) []catalog.Source {
	var sources []catalog.Source
	if cfg.JobsFile != "" {
		sources = append(sources, catalog.FileSource{Path: cfg.JobsFile})
	}
	if cfg.AdzunaAppID != "" || cfg.JobsFile == "" {
		sources = append(sources, catalog.NewAdzunaSource(
			cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry,
			cfg.AdzunaWhat, cfg.AdzunaWhere,
			logger.Component(log, "adzuna"),
		))
	}
	return sources
}

func trackerOptions(cfg *config.Config, res *db.Resources) []tracker.Option {
	var opts []tracker.Option
	if cfg.SubmitEndpoint != "" {
		opts = append(opts, tracker.WithTransport(tracker.NewHTTPTransport(cfg.SubmitEndpoint)))
	} else {
		opts = append(opts, tracker.WithTransport(tracker.LocalTransport{Latency: cfg.SubmitLatency}))
	}
	if cfg.StrictTransitions {
		opts = append(opts, tracker.WithPolicy(tracker.StrictTransitions))
	}
	if cfg.EventsEnabled && res.Redis != nil {
		opts = append(opts, tracker.WithPublisher(tracker.NewRedisPublisher(res.Redis)))
	}
	return opts
}
