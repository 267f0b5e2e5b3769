package seed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Backfill seeds every season in [from, to] with at most workers seasons in
// flight, each under the format it was played with. Failed seasons are
// recorded in the result; they do not stop the others.
func (r *Runner) Backfill(ctx context.Context, from, to, workers int) (SeedResult, error) {
	var total SeedResult
	if from > to {
		return total, fmt.Errorf("invalid range %d-%d", from, to)
	}
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := r.now()
	for year := from; year <= to; year++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			format := r.cfg.FormatFor(year)
			res := r.SeedSeason(gctx, year, format)
			r.logger.Info("Season seeded", "season", year, "format", format, "summary", res.Summary())

			mu.Lock()
			total.Add(res)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	r.logger.Info("Backfill finished",
		"from", from, "to", to, "workers", workers,
		"duration", time.Since(start).Round(time.Second),
		"summary", total.Summary())
	return total, err
}
