// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/standings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/scoracle-standings/internal/standings"
)

// --------------------------------------------------------------------------
// Season registry
// --------------------------------------------------------------------------

// SeasonConfig describes the league calendar the service knows about.
type SeasonConfig struct {
	League            string
	FirstSeason       int
	FirstPlayInSeason int
	CurrentSeason     int
}

// Seasons is the default registry. CurrentSeason is overridden by the
// CURRENT_SEASON environment variable.
var Seasons = SeasonConfig{
	League:            "NBA",
	FirstSeason:       1979,
	FirstPlayInSeason: standings.FirstPlayInSeason,
	CurrentSeason:     2025,
}

// --------------------------------------------------------------------------
// Postgres names
// --------------------------------------------------------------------------

// StandingsChannel is the LISTEN/NOTIFY channel a snapshot write announces
// itself on.
const StandingsChannel = "standings_updated"

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database (optional: persistence is disabled when empty)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Redis (optional: in-memory cache when empty)
	RedisURL string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// BallDontLie
	BDLAPIKey            string
	BDLBaseURL           string
	BDLRequestsPerMinute int

	// Standings
	PlayoffFormat   string // empty: derived from the season
	CurrentSeason   int
	RefreshInterval time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", "")),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		RedisURL: envOr("REDIS_URL", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		BDLAPIKey:            envOr("BALLDONTLIE_API_KEY", ""),
		BDLBaseURL:           envOr("BDL_BASE_URL", "https://api.balldontlie.io/v1"),
		BDLRequestsPerMinute: envInt("BDL_REQUESTS_PER_MINUTE", 60),

		PlayoffFormat:   strings.ToLower(envOr("PLAYOFF_FORMAT", "")),
		CurrentSeason:   envInt("CURRENT_SEASON", Seasons.CurrentSeason),
		RefreshInterval: time.Duration(envInt("REFRESH_INTERVAL_MINUTES", 60)) * time.Minute,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if cfg.PlayoffFormat != "" {
		if _, err := standings.ParsePlayoffFormat(cfg.PlayoffFormat); err != nil {
			return nil, fmt.Errorf("PLAYOFF_FORMAT: %w", err)
		}
	}
	if cfg.BDLRequestsPerMinute <= 0 {
		return nil, fmt.Errorf("BDL_REQUESTS_PER_MINUTE must be positive, got %d", cfg.BDLRequestsPerMinute)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// FormatFor returns the playoff format to use for season: the configured
// override if any, otherwise the format that season was played under.
func (c *Config) FormatFor(season int) standings.PlayoffFormat {
	if f, err := standings.ParsePlayoffFormat(c.PlayoffFormat); err == nil {
		return f
	}
	return standings.FormatForSeason(season)
}

// ValidSeason reports whether season lies in the known range.
func (c *Config) ValidSeason(season int) bool {
	return season >= Seasons.FirstSeason && season <= c.CurrentSeason
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
