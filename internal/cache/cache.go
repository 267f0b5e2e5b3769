// Package cache provides TTL caches with ETag support for serialized
// standings: an in-process map and a Redis backend for multi-instance
// deployments.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"
)

// TTL constants.
const (
	TTLCurrentSeason = 1 * time.Hour  // Still changing as games are played
	TTLHistorical    = 24 * time.Hour // Finished seasons
	TTLMeta          = 10 * time.Minute
)

// Cache is the contract handlers and the refresher depend on.
type Cache interface {
	// Get returns data, its etag, and whether a live entry was found.
	Get(ctx context.Context, key string) (data []byte, etag string, ok bool)
	// Set stores data for ttl and returns its etag.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) string
	Delete(ctx context.Context, key string)
	Stats(ctx context.Context) map[string]interface{}
}

// StandingsKey is the cache key for a season rendered under a format.
func StandingsKey(season int, format string) string {
	return fmt.Sprintf("standings:%d:%s", season, format)
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	return ifNoneMatch == etag
}

var (
	_ Cache = (*Memory)(nil)
	_ Cache = (*Redis)(nil)
)
