package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when no snapshot exists for a season and format.
var ErrNotFound = errors.New("standings snapshot not found")

// Snapshot is one stored computation of a season's standings. Payload is the
// serialized season result, passed through untouched.
type Snapshot struct {
	Season     int       `json:"season"`
	Format     string    `json:"format"`
	RunID      uuid.UUID `json:"run_id"`
	Final      bool      `json:"final"`
	Payload    []byte    `json:"-"`
	ComputedAt time.Time `json:"computed_at"`
}

// LoadStandings returns the stored snapshot for season and format.
func (p *Pool) LoadStandings(ctx context.Context, season int, format string) (*Snapshot, error) {
	var s Snapshot
	err := p.QueryRow(ctx, stmtStandingsGet, season, format).
		Scan(&s.Season, &s.Format, &s.RunID, &s.Final, &s.Payload, &s.ComputedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load standings %d/%s: %w", season, format, err)
	}
	return &s, nil
}

// SaveStandings upserts s. It reports false when an existing final snapshot
// was kept instead.
func (p *Pool) SaveStandings(ctx context.Context, s *Snapshot) (bool, error) {
	tag, err := p.Exec(ctx, stmtStandingsUpsert, s.Season, s.Format, s.RunID, s.Final, s.Payload, s.ComputedAt)
	if err != nil {
		return false, fmt.Errorf("save standings %d/%s: %w", s.Season, s.Format, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListStandings returns the metadata of every stored snapshot, newest season
// first. Payloads are not loaded.
func (p *Pool) ListStandings(ctx context.Context) ([]Snapshot, error) {
	rows, err := p.Query(ctx, stmtStandingsList)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.Season, &s.Format, &s.RunID, &s.Final, &s.ComputedAt); err != nil {
			return nil, fmt.Errorf("scan standings row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
