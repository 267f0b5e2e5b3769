package refresh

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/albapepper/scoracle-standings/internal/seed"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

type countingSeeder struct {
	calls  atomic.Int32
	season atomic.Int32
}

func (c *countingSeeder) SeedSeason(_ context.Context, year int, _ standings.PlayoffFormat) seed.SeedResult {
	c.calls.Add(1)
	c.season.Store(int32(year))
	return seed.SeedResult{SeasonsComputed: 1}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartWarmsAndStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &countingSeeder{}
	done := make(chan struct{})
	go func() {
		Start(ctx, s, Config{Season: 2024, Format: standings.Modern, WarmOnStart: true}, quietLogger())
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for s.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("warm refresh never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if s.season.Load() != 2024 || s.calls.Load() != 1 {
		t.Errorf("calls=%d season=%d", s.calls.Load(), s.season.Load())
	}
}

func TestRunLoopFiresOnTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := make(chan time.Time)
	fired := make(chan struct{}, 3)

	go runLoop(ctx, ch, func() { fired <- struct{}{} })
	for i := 0; i < 3; i++ {
		ch <- time.Now()
		<-fired
	}
}

func TestRefreshSeasonLogsFailures(t *testing.T) {
	failing := seederFunc(func(context.Context, int, standings.PlayoffFormat) seed.SeedResult {
		var r seed.SeedResult
		r.AddError("boom")
		return r
	})
	// Must not panic on an error result.
	refreshSeason(context.Background(), failing, Config{Season: 2024}, quietLogger())
}

type seederFunc func(context.Context, int, standings.PlayoffFormat) seed.SeedResult

func (f seederFunc) SeedSeason(ctx context.Context, year int, format standings.PlayoffFormat) seed.SeedResult {
	return f(ctx, year, format)
}
