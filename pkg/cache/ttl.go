package cache

import "time"

// Default TTLs per cached stage. Documents and reports are keyed by content
// hash, so staleness only matters for disk usage, not correctness.
const (
	// TTLDocument is how long parsed documents stay cached.
	TTLDocument = 24 * time.Hour

	// TTLReport is how long analysis reports stay cached.
	TTLReport = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)
