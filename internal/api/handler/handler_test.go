package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-standings/internal/api/respond"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/seed"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

const samplePayload = `{"season":2023,"format":"modern","dates":["2023-10-24"],"computed_at":"2023-10-25T00:00:00Z","teams":[` +
	`{"id":2,"name":"Boston Celtics","slug":"BOS","league_rank":1,"conference_seed":1,"wins":1,"losses":0},` +
	`{"id":24,"name":"Phoenix Suns","slug":"PHX","league_rank":2,"conference_seed":1,"wins":0,"losses":1}]}`

type fakeService struct {
	err      error
	calls    int
	gotYear  int
	gotFmt   standings.PlayoffFormat
	rendered *seed.Rendered
}

func (f *fakeService) Standings(_ context.Context, year int, format standings.PlayoffFormat) (*seed.Rendered, error) {
	f.calls++
	f.gotYear, f.gotFmt = year, format
	if f.err != nil {
		return nil, f.err
	}
	if f.rendered != nil {
		return f.rendered, nil
	}
	data := []byte(samplePayload)
	return &seed.Rendered{Data: data, ETag: cache.ComputeETag(data), Origin: seed.OriginComputed, TTL: time.Hour}, nil
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{CurrentSeason: 2024}
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health/db", h.HealthCheckDB)
	r.Get("/health/cache", h.HealthCheckCache)
	r.Get("/api/v1/seasons", h.GetSeasons)
	r.Get("/api/v1/standings/{season}", h.GetStandings)
	r.Get("/api/v1/standings/{season}/teams/{team}", h.GetTeamStandings)
	return r
}

func do(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp respond.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error.Code
}

func TestGetStandings(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(New(svc, nil, nil, testConfig()))

	rec := do(t, router, "/api/v1/standings/2023", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != samplePayload {
		t.Errorf("body was not passed through: %s", rec.Body.String())
	}
	if svc.gotYear != 2023 || svc.gotFmt != standings.Modern {
		t.Errorf("service got %d %s", svc.gotYear, svc.gotFmt)
	}
	if rec.Header().Get("X-Standings-Origin") != seed.OriginComputed || rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("headers = %v", rec.Header())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	rec = do(t, router, "/api/v1/standings/2023", http.Header{"If-None-Match": {etag}})
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Errorf("conditional request: status %d, body %q", rec.Code, rec.Body.String())
	}
}

func TestGetStandingsFormat(t *testing.T) {
	tests := []struct {
		path string
		want standings.PlayoffFormat
	}{
		{"/api/v1/standings/2010", standings.Legacy},
		{"/api/v1/standings/2021", standings.Modern},
		{"/api/v1/standings/2021?format=legacy", standings.Legacy},
		{"/api/v1/standings/1995?format=MODERN", standings.Modern},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &fakeService{}
			rec := do(t, newTestRouter(New(svc, nil, nil, testConfig())), tt.path, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if svc.gotFmt != tt.want {
				t.Errorf("format = %s, want %s", svc.gotFmt, tt.want)
			}
		})
	}
}

func TestGetStandingsConfiguredFormat(t *testing.T) {
	cfg := testConfig()
	cfg.PlayoffFormat = "legacy"
	svc := &fakeService{}
	do(t, newTestRouter(New(svc, nil, nil, cfg)), "/api/v1/standings/2023", nil)
	if svc.gotFmt != standings.Legacy {
		t.Errorf("format = %s, want the configured legacy", svc.gotFmt)
	}
}

func TestGetStandingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"not a year", "/api/v1/standings/latest", nil, http.StatusBadRequest, "INVALID_SEASON"},
		{"too early", "/api/v1/standings/1950", nil, http.StatusNotFound, "SEASON_NOT_FOUND"},
		{"future", "/api/v1/standings/2030", nil, http.StatusNotFound, "SEASON_NOT_FOUND"},
		{"bad format", "/api/v1/standings/2023?format=bracket", nil, http.StatusBadRequest, "INVALID_FORMAT"},
		{"compute failed", "/api/v1/standings/2023", fmt.Errorf("%w: timeout", seed.ErrComputeFailed), http.StatusBadGateway, "UPSTREAM_FAILED"},
		{"other error", "/api/v1/standings/2023", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := do(t, newTestRouter(New(svc, nil, nil, testConfig())), tt.path, nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
			if tt.err == nil && svc.calls != 0 {
				t.Error("service called for an invalid request")
			}
		})
	}
}

func TestGetTeamStandings(t *testing.T) {
	router := newTestRouter(New(&fakeService{}, nil, nil, testConfig()))

	for _, team := range []string{"24", "phx", "PHX"} {
		rec := do(t, router, "/api/v1/standings/2023/teams/"+team, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", team, rec.Code)
		}
		var got struct {
			ID   int    `json:"id"`
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != 24 || got.Slug != "PHX" {
			t.Errorf("%s: got %+v", team, got)
		}
	}

	rec := do(t, router, "/api/v1/standings/2023/teams/LAL", nil)
	if rec.Code != http.StatusNotFound || errorCode(t, rec) != "TEAM_NOT_FOUND" {
		t.Errorf("unknown team: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestGetSeasons(t *testing.T) {
	rec := do(t, newTestRouter(New(&fakeService{}, nil, nil, testConfig())), "/api/v1/seasons", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []SeasonInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := 2024 - config.Seasons.FirstSeason + 1; len(got) != want {
		t.Fatalf("len = %d, want %d", len(got), want)
	}
	first, last := got[0], got[len(got)-1]
	if first.Season != 2024 || first.Label != "2024-25" || first.DefaultFormat != "modern" || first.PlayInSlots != 4 {
		t.Errorf("first = %+v", first)
	}
	if last.Season != config.Seasons.FirstSeason || last.DefaultFormat != "legacy" || last.PlayoffSlots != 8 {
		t.Errorf("last = %+v", last)
	}
}

func TestHealthCheckDB(t *testing.T) {
	tests := []struct {
		name   string
		db     HealthChecker
		status int
		field  string
	}{
		{"disabled", nil, http.StatusOK, "disabled"},
		{"connected", fakeDB{}, http.StatusOK, "connected"},
		{"down", fakeDB{err: errors.New("refused")}, http.StatusServiceUnavailable, "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestRouter(New(&fakeService{}, tt.db, nil, testConfig())), "/health/db", nil)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["database"] != tt.field {
				t.Errorf("database = %v, want %s", body["database"], tt.field)
			}
		})
	}
}

func TestHealthCheckCache(t *testing.T) {
	c := cache.NewMemory(true)
	defer c.Close()
	c.Set(context.Background(), "k", []byte("v"), time.Minute)

	rec := do(t, newTestRouter(New(&fakeService{}, nil, c, testConfig())), "/health/cache", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Cache map[string]interface{} `json:"cache"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Cache == nil {
		t.Error("missing cache stats")
	}
}
