package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/db"
	"github.com/albapepper/scoracle-standings/internal/metrics"
	"github.com/albapepper/scoracle-standings/internal/season"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// Store persists rendered season snapshots. *db.Pool implements it.
type Store interface {
	LoadStandings(ctx context.Context, year int, format string) (*db.Snapshot, error)
	SaveStandings(ctx context.Context, s *db.Snapshot) (bool, error)
}

// ErrComputeFailed wraps failures to produce standings on a miss.
var ErrComputeFailed = errors.New("standings computation failed")

// Where a rendered payload came from.
const (
	OriginCache    = "cache"
	OriginStore    = "store"
	OriginComputed = "computed"
	OriginStale    = "stale"
)

// Rendered is a serialized season result ready to send.
type Rendered struct {
	Data   []byte
	ETag   string
	Origin string
	TTL    time.Duration
}

// Runner computes standings from a data source and keeps the store and cache
// up to date. Store and cache are optional.
type Runner struct {
	source season.Source
	store  Store
	cache  cache.Cache
	cfg    *config.Config
	logger *slog.Logger

	flight singleflight.Group
	now    func() time.Time
	own    ownRuns
}

// ownRunTTL bounds how long a written run ID waits for its notification.
const ownRunTTL = 10 * time.Minute

// ownRuns remembers the snapshot runs this process saved until the
// store's change notification for them comes back.
type ownRuns struct {
	mu  sync.Mutex
	ids map[string]time.Time
}

func (o *ownRuns) add(id string, now time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ids == nil {
		o.ids = make(map[string]time.Time)
	}
	for k, at := range o.ids {
		if now.Sub(at) > ownRunTTL {
			delete(o.ids, k)
		}
	}
	o.ids[id] = now
}

func (o *ownRuns) take(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.ids[id]
	delete(o.ids, id)
	return ok
}

// NewRunner wires a runner. Pass nil store or cache to run without them.
func NewRunner(source season.Source, store Store, c cache.Cache, cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{
		source: source,
		store:  store,
		cache:  c,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Compute fetches, builds and simulates one season.
func (r *Runner) Compute(ctx context.Context, year int, format standings.PlayoffFormat) (res *season.Result, err error) {
	start := r.now()
	defer func() { metrics.ObserveCompute(start, err) }()

	raw, err := season.Fetch(ctx, r.source, year)
	if err != nil {
		return nil, err
	}
	ds, err := season.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("build season %d: %w", year, err)
	}
	res, err = season.Compute(ds, format)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Season computed",
		"season", year, "format", format,
		"teams", len(res.Teams), "days", len(res.Dates),
		"duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// SeedSeason computes one season and writes it to the store and cache.
func (r *Runner) SeedSeason(ctx context.Context, year int, format standings.PlayoffFormat) SeedResult {
	_, result := r.seed(ctx, year, format)
	return result
}

// seed is SeedSeason that also hands back the payload it rendered, nil when
// the computation failed.
func (r *Runner) seed(ctx context.Context, year int, format standings.PlayoffFormat) ([]byte, SeedResult) {
	var result SeedResult

	res, err := r.Compute(ctx, year, format)
	if err != nil {
		result.AddErrorf("compute season %d: %v", year, err)
		return nil, result
	}

	data, err := json.Marshal(res)
	if err != nil {
		result.AddErrorf("encode season %d: %v", year, err)
		return nil, result
	}
	result.SeasonsComputed++

	if r.store != nil {
		runID := uuid.New()
		r.own.add(runID.String(), r.now())
		saved, err := r.store.SaveStandings(ctx, &db.Snapshot{
			Season:     year,
			Format:     format.String(),
			RunID:      runID,
			Final:      r.isFinal(year),
			Payload:    data,
			ComputedAt: res.ComputedAt,
		})
		switch {
		case err != nil:
			r.own.take(runID.String())
			result.AddErrorf("save season %d: %v", year, err)
		case saved:
			result.SnapshotsSaved++
			metrics.SnapshotsSaved.Inc()
		default:
			r.own.take(runID.String())
			result.SnapshotsKept++
		}
	}

	if r.cache != nil {
		r.cache.Set(ctx, cache.StandingsKey(year, format.String()), data, r.ttl(year))
		result.CacheWrites++
	}
	return data, result
}

// Standings returns the rendered season, trying the cache, then the store,
// then computing it. Concurrent misses for the same key share one
// computation. A stored snapshot that has gone stale is still served when a
// fresh computation fails.
func (r *Runner) Standings(ctx context.Context, year int, format standings.PlayoffFormat) (*Rendered, error) {
	key := cache.StandingsKey(year, format.String())
	ttl := r.ttl(year)

	if r.cache != nil {
		if data, etag, ok := r.cache.Get(ctx, key); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return &Rendered{Data: data, ETag: etag, Origin: OriginCache, TTL: ttl}, nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	// The shared computation outlives any single caller's request.
	detached := context.WithoutCancel(ctx)
	v, err, _ := r.flight.Do(key, func() (interface{}, error) {
		return r.loadOrCompute(detached, key, year, format, ttl)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Rendered), nil
}

func (r *Runner) loadOrCompute(ctx context.Context, key string, year int, format standings.PlayoffFormat, ttl time.Duration) (*Rendered, error) {
	var stale *db.Snapshot
	if r.store != nil {
		snap, err := r.store.LoadStandings(ctx, year, format.String())
		switch {
		case err == nil && r.fresh(snap):
			return r.remember(ctx, key, snap.Payload, OriginStore, ttl), nil
		case err == nil:
			stale = snap
		case !errors.Is(err, db.ErrNotFound):
			r.logger.Warn("Snapshot lookup failed", "season", year, "error", err)
		}
	}

	data, result := r.seed(ctx, year, format)
	if data == nil {
		if stale != nil {
			r.logger.Warn("Serving stale snapshot", "season", year, "computed_at", stale.ComputedAt, "error", result.Errors[0])
			return r.remember(ctx, key, stale.Payload, OriginStale, r.refreshWindow()), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrComputeFailed, result.Errors[0])
	}
	for _, e := range result.Errors {
		r.logger.Warn("Season seeded with errors", "season", year, "error", e)
	}
	return &Rendered{Data: data, ETag: cache.ComputeETag(data), Origin: OriginComputed, TTL: ttl}, nil
}

func (r *Runner) remember(ctx context.Context, key string, data []byte, origin string, ttl time.Duration) *Rendered {
	etag := cache.ComputeETag(data)
	if r.cache != nil {
		etag = r.cache.Set(ctx, key, data, ttl)
	}
	return &Rendered{Data: data, ETag: etag, Origin: origin, TTL: ttl}
}

// isFinal reports whether a season is over and its standings can no longer
// change.
func (r *Runner) isFinal(year int) bool {
	return year < r.cfg.CurrentSeason
}

// OwnRun reports whether this process saved the snapshot run runID and has
// not yet seen its change notification. Each run matches once.
func (r *Runner) OwnRun(runID string) bool {
	return r.own.take(runID)
}

func (r *Runner) fresh(s *db.Snapshot) bool {
	return s.Final || r.now().Sub(s.ComputedAt) < r.refreshWindow()
}

// refreshWindow is how long a stored current-season snapshot stays fresh,
// never shorter than the current-season cache TTL.
func (r *Runner) refreshWindow() time.Duration {
	return max(r.cfg.RefreshInterval, cache.TTLCurrentSeason)
}

func (r *Runner) ttl(year int) time.Duration {
	if r.isFinal(year) {
		return cache.TTLHistorical
	}
	return cache.TTLCurrentSeason
}
