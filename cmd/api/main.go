// Command api is the Scoracle Standings API server.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 scoracle-api

// @title Scoracle Standings API
// @version 1.0.0
// @description NBA day-by-day standings with official tie-breaks. Every response is pre-serialized JSON served from cache or the snapshot store.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-standings/internal/api"
	"github.com/albapepper/scoracle-standings/internal/api/handler"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/db"
	"github.com/albapepper/scoracle-standings/internal/listener"
	"github.com/albapepper/scoracle-standings/internal/provider/bdl"
	"github.com/albapepper/scoracle-standings/internal/refresh"
	"github.com/albapepper/scoracle-standings/internal/seed"

	_ "github.com/albapepper/scoracle-standings/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.BDLAPIKey == "" {
		logger.Error("BALLDONTLIE_API_KEY is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Snapshot store (optional)
	var (
		store  seed.Store
		health handler.HealthChecker
	)
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store, health = pool, pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Warn("DATABASE_URL not set, snapshots will not be persisted")
	}

	appCache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	client := bdl.NewClient(cfg.BDLBaseURL, cfg.BDLAPIKey, cfg.BDLRequestsPerMinute, logger)
	runner := seed.NewRunner(bdl.NewNBAHandler(client, logger), store, appCache, cfg, logger)

	// Evict cached seasons when another process writes a snapshot
	if cfg.DatabaseURL != "" {
		go listener.Start(ctx, cfg.DatabaseURL, appCache, runner, logger)
	}

	go refresh.Start(ctx, runner, refresh.Config{
		Season:      cfg.CurrentSeason,
		Format:      cfg.FormatFor(cfg.CurrentSeason),
		Interval:    cfg.RefreshInterval,
		WarmOnStart: true,
	}, logger)

	router := api.NewRouter(handler.New(runner, health, appCache, cfg), cfg)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // a cold season computation pages through the provider
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Scoracle Standings API",
			"addr", addr,
			"environment", cfg.Environment,
			"current_season", cfg.CurrentSeason,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// newCache picks Redis when REDIS_URL is set and reachable, the in-process
// cache otherwise.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func()) {
	if cfg.RedisURL != "" && cfg.CacheEnabled {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
		if err == nil {
			logger.Info("Cache initialized", "backend", "redis")
			return rc, func() { rc.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory cache", "error", err)
	}
	mc := cache.NewMemory(cfg.CacheEnabled)
	logger.Info("Cache initialized", "backend", "memory", "enabled", cfg.CacheEnabled)
	return mc, mc.Close
}
