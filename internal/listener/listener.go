// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps API
// caches in step with the snapshot store. It holds a dedicated pgx connection
// (not from the pool) listening on the standings_updated channel.
//
// A trigger on season_standings fires pg_notify on every write, so a snapshot
// seeded by the CLI or another API instance evicts the stale cache entry here.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// SnapshotEvent is the JSON payload from pg_notify('standings_updated', ...).
type SnapshotEvent struct {
	Season int    `json:"season"`
	Format string `json:"format"`
	RunID  string `json:"run_id"`
	Final  bool   `json:"final"`
}

// Evicter is the part of a cache the listener needs.
type Evicter interface {
	Delete(ctx context.Context, key string)
}

// RunFilter recognizes snapshot runs written by this process. Their cache
// entries were just filled with the same payload, so evicting them is waste.
type RunFilter interface {
	OwnRun(runID string) bool
}

// retryDelay doubles from min up to max between failed sessions.
type retryDelay struct {
	cur, min, max time.Duration
}

func newRetryDelay(lo, hi time.Duration) *retryDelay {
	return &retryDelay{cur: lo, min: lo, max: hi}
}

func (d *retryDelay) next() time.Duration {
	wait := d.cur
	d.cur = min(d.cur*2, d.max)
	return wait
}

func (d *retryDelay) reset() { d.cur = d.min }

// Start opens a dedicated connection and listens for snapshot writes. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`. own may be nil.
func Start(ctx context.Context, dbURL string, c Evicter, own RunFilter, logger *slog.Logger) {
	reconnectLoop(ctx, newRetryDelay(reconnectBackoff, maxReconnect), func(ctx context.Context, onConnected func()) error {
		return listenLoop(ctx, dbURL, c, own, onConnected, logger)
	}, logger)
}

// reconnectLoop runs session until ctx is cancelled, waiting d between
// attempts. A session that reaches the connected state resets d.
func reconnectLoop(ctx context.Context, d *retryDelay, session func(ctx context.Context, onConnected func()) error, logger *slog.Logger) {
	for {
		err := session(ctx, d.reset)
		if ctx.Err() != nil {
			logger.Info("Standings listener stopped (context cancelled)")
			return
		}

		wait := d.next()
		logger.Error("Standings listener disconnected, reconnecting...",
			"error", err, "backoff", wait)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, c Evicter, own RunFilter, onConnected func(), logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+config.StandingsChannel); err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.StandingsChannel, err)
	}
	onConnected()
	logger.Info("Standings listener connected", "channel", config.StandingsChannel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		key, evicted, err := handleNotification(ctx, c, own, n.Payload)
		if err != nil {
			logger.Warn("Failed to parse standings event", "payload", n.Payload, "error", err)
			continue
		}
		if evicted {
			logger.Debug("Standings cache entry evicted", "key", key)
		} else {
			logger.Debug("Skipped own standings write", "key", key)
		}
	}
}

// handleNotification evicts the cache entry named by payload unless own
// claims the run. It returns the entry's key and whether it was evicted.
func handleNotification(ctx context.Context, c Evicter, own RunFilter, payload string) (string, bool, error) {
	var ev SnapshotEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return "", false, err
	}
	if ev.Season == 0 || ev.Format == "" {
		return "", false, fmt.Errorf("incomplete event")
	}
	key := cache.StandingsKey(ev.Season, ev.Format)
	if own != nil && ev.RunID != "" && own.OwnRun(ev.RunID) {
		return key, false, nil
	}
	c.Delete(ctx, key)
	return key, true, nil
}
