// Package history records completed conversion runs so they can be listed
// and undone later.
//
// This package defines a storage interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for the server
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := history.NewMemoryStore()
//
//	// CLI
//	store, err := history.NewFileStore("")  // Uses ~/.config/blockswap/history/
//
//	// Server
//	store, err := history.NewMongoStore(ctx, history.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Record a run:
//
//	run := history.NewRun("MyShip", []string{"armor"}, "forward")
//	run.Replaced = changes.Replaced
//	store.Put(ctx, run)
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for history operations.
var (
	// ErrNotFound is returned when a run does not exist.
	ErrNotFound = errors.New("not found")
)

// Run is one recorded conversion.
type Run struct {
	ID         string    `json:"id" bson:"_id"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	Blueprint  string    `json:"blueprint" bson:"blueprint"`
	Output     string    `json:"output,omitempty" bson:"output,omitempty"`
	Categories []string  `json:"categories" bson:"categories"`
	Direction  string    `json:"direction" bson:"direction"`
	Replaced   int       `json:"replaced" bson:"replaced"`
	Passed     int       `json:"passed" bson:"passed"`
	PCUDelta   int       `json:"pcu_delta,omitempty" bson:"pcu_delta,omitempty"`
	MassDelta  float64   `json:"mass_delta,omitempty" bson:"mass_delta,omitempty"`
}

// NewRun creates a run record with a fresh identifier and the current time.
func NewRun(blueprint string, categories []string, direction string) *Run {
	return &Run{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Blueprint:  blueprint,
		Categories: categories,
		Direction:  direction,
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Put stores a run.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs sorted newest first, at most limit entries.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run. Deleting an absent run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
