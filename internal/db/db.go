// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema migrations and the season_standings snapshot store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/scoracle-standings/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New migrates the schema, then creates and validates a connection pool.
// Migrations run first because statements are prepared against the tables
// they create.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Pool, error) {
	if err := Migrate(ctx, cfg.DatabaseURL, logger); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, stmtHealthCheck).Scan(&n)
}

const (
	stmtHealthCheck     = "health_check"
	stmtStandingsGet    = "standings_get"
	stmtStandingsUpsert = "standings_upsert"
	stmtStandingsList   = "standings_list"
)

// registerPreparedStatements registers all statements the API and CLI use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		stmtHealthCheck: "SELECT 1",

		stmtStandingsGet: `SELECT season, format, run_id, final, payload, computed_at
			FROM season_standings WHERE season = $1 AND format = $2`,

		// Final snapshots are never overwritten by a later, non-final run.
		stmtStandingsUpsert: `INSERT INTO season_standings (season, format, run_id, final, payload, computed_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (season, format) DO UPDATE
			SET run_id = EXCLUDED.run_id, final = EXCLUDED.final,
			    payload = EXCLUDED.payload, computed_at = EXCLUDED.computed_at
			WHERE NOT season_standings.final OR EXCLUDED.final`,

		stmtStandingsList: `SELECT season, format, run_id, final, computed_at
			FROM season_standings ORDER BY season DESC, format`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
