// Package refresh runs periodic standings recomputation as Go tickers, so
// the in-progress season stays current without an external scheduler.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-standings/internal/seed"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// Seeder is the part of seed.Runner the refresher drives.
type Seeder interface {
	SeedSeason(ctx context.Context, year int, format standings.PlayoffFormat) seed.SeedResult
}

// Config controls refresh tasks. Zero duration disables a task.
type Config struct {
	Season   int
	Format   standings.PlayoffFormat
	Interval time.Duration // Recompute the current season
	// WarmOnStart seeds the current season once before the first tick.
	WarmOnStart bool
}

// Start launches the configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, s Seeder, cfg Config, logger *slog.Logger) {
	logger.Info("Refresh ticker started",
		"season", cfg.Season,
		"format", cfg.Format,
		"interval", cfg.Interval)

	task := func() { refreshSeason(ctx, s, cfg, logger) }
	if cfg.WarmOnStart {
		task()
	}

	if cfg.Interval > 0 {
		t := time.NewTicker(cfg.Interval)
		defer t.Stop()
		runLoop(ctx, t.C, task)
	} else {
		<-ctx.Done()
	}
	logger.Info("Refresh ticker stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

func refreshSeason(ctx context.Context, s Seeder, cfg Config, logger *slog.Logger) {
	start := time.Now()
	res := s.SeedSeason(ctx, cfg.Season, cfg.Format)
	dur := time.Since(start).Round(time.Millisecond)
	if !res.OK() {
		for _, e := range res.Errors {
			logger.Warn("Refresh: season failed", "season", cfg.Season, "duration", dur, "error", e)
		}
		return
	}
	logger.Info("Refresh: season updated", "season", cfg.Season, "duration", dur, "summary", res.Summary())
}
