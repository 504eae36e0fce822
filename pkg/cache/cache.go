// Package cache provides pluggable byte caches and deterministic key
// construction for blueprint analysis artifacts. Backends cover in-memory
// (tests), file (CLI), and Redis (server) usage behind one interface.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache with per-entry TTLs.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores the entry without
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts captures everything that changes an analysis result for the
// same document bytes.
type ReportKeyOpts struct {
	Categories []string
	Direction  string
	Profile    string
}

// ArtifactKeyOpts captures rendering options for derived artifacts.
type ArtifactKeyOpts struct {
	Format string
	Tier   int
}

// Keyer builds cache keys for the three cacheable stages: parsed documents,
// analysis reports, and rendered artifacts.
type Keyer interface {
	// DocumentKey keys a parsed document by the hash of its raw bytes.
	DocumentKey(contentHash string) string

	// ReportKey keys an analysis report derived from a document.
	ReportKey(contentHash string, opts ReportKeyOpts) string

	// ArtifactKey keys a rendered artifact derived from a report.
	ArtifactKey(reportHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates versioned, hash-based keys. Bump the version
// constants when an output format changes incompatibly so stale entries
// miss instead of decode-failing.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

const (
	documentKeyVersion = "v1"
	reportKeyVersion   = "v1"
	artifactKeyVersion = "v1"
)

// DocumentKey generates a key for parsed document caching.
func (k *DefaultKeyer) DocumentKey(contentHash string) string {
	return hashKey("doc", documentKeyVersion, contentHash)
}

// ReportKey generates a key for analysis report caching.
func (k *DefaultKeyer) ReportKey(contentHash string, opts ReportKeyOpts) string {
	return hashKey("report", reportKeyVersion, contentHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(reportHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", artifactKeyVersion, reportHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
