// Package seed computes season standings and writes them to the snapshot
// store and cache. It backs the CLI, the periodic refresher and the API's
// compute-on-miss path.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	SeasonsComputed int
	SnapshotsSaved  int
	SnapshotsKept   int // existing final snapshot left untouched
	CacheWrites     int
	Errors          []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.SeasonsComputed += other.SeasonsComputed
	r.SnapshotsSaved += other.SnapshotsSaved
	r.SnapshotsKept += other.SnapshotsKept
	r.CacheWrites += other.CacheWrites
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether the operation finished without errors.
func (r *SeedResult) OK() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"seasons=%d saved=%d kept=%d cached=%d errors=%d",
		r.SeasonsComputed, r.SnapshotsSaved,
		r.SnapshotsKept, r.CacheWrites,
		len(r.Errors),
	)
}
