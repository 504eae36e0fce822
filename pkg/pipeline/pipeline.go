// Package pipeline provides the core conversion pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// A full run consists of four stages:
//
//  1. Load: Parse the blueprint document from disk
//  2. Convert: Apply the resolved substitution rules
//  3. Analyze: Compute resource reports before and after, plus the delta
//  4. Audit: Run health rules over the converted document
//
// Analysis reports are cached by document content hash, so repeated runs
// over unchanged blueprints skip the decomposition work.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger, registry, costdb.Default())
//	opts := pipeline.Options{
//	    Blueprint:  "/blueprints/MyShip",
//	    Categories: []string{"armor"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Changes.Replaced, "blocks replaced")
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blockswap/blockswap/pkg/analytics"
	"github.com/blockswap/blockswap/pkg/audit"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/cache"
	"github.com/blockswap/blockswap/pkg/convert"
)

// Direction constants, the wire form of convert.Direction.
const (
	DirectionForward = "forward"
	DirectionReverse = "reverse"
)

// DefaultCategories is applied when a run names no categories and no
// profile.
var DefaultCategories = []string{"armor"}

// Options contains all configuration for a conversion run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Blueprint is the path to a blueprint folder or document file.
	// Either Blueprint or Content must be set.
	Blueprint string `json:"blueprint,omitempty"`

	// Content carries raw document bytes for API callers that upload
	// instead of pointing at a path. Name labels the upload.
	Content []byte `json:"content,omitempty"`
	Name    string `json:"name,omitempty"`

	// Categories selects the rule categories to apply.
	Categories []string `json:"categories,omitempty"`

	// Direction is "forward" or "reverse".
	Direction string `json:"direction,omitempty"`

	// Profile restricts category resolution to one profile's namespace.
	Profile string `json:"profile,omitempty"`

	// Output is the directory converted blueprints are written to.
	// Empty means alongside the source.
	Output string `json:"output,omitempty"`

	// DryRun computes everything but writes nothing.
	DryRun bool `json:"dry_run,omitempty"`

	// SkipAudit disables the audit stage.
	SkipAudit bool `json:"skip_audit,omitempty"`

	// Refresh bypasses cached analysis reports.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Blueprint == "" && len(o.Content) == 0 {
		return fmt.Errorf("blueprint path or content is required")
	}
	if len(o.Content) > 0 && o.Name == "" {
		return fmt.Errorf("name is required with inline content")
	}
	switch o.Direction {
	case "":
		o.Direction = DirectionForward
	case DirectionForward, DirectionReverse:
	default:
		return fmt.Errorf("invalid direction: %q (must be forward or reverse)", o.Direction)
	}
	if len(o.Categories) == 0 {
		o.Categories = append([]string(nil), DefaultCategories...)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ConvertDirection returns the typed direction for the convert stage.
func (o *Options) ConvertDirection() convert.Direction {
	if o.Direction == DirectionReverse {
		return convert.Reverse
	}
	return convert.Forward
}

// ReportKeyOpts returns cache key options for analysis report caching.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Categories: o.Categories,
		Direction:  o.Direction,
		Profile:    o.Profile,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in history.
	RunID string

	// Document is the converted document.
	Document *blueprint.Document

	// Changes summarizes the substitution stage.
	Changes *convert.ChangeSet

	// Before and After are the analysis reports around the conversion.
	Before *analytics.Report
	After  *analytics.Report

	// Delta is the before/after difference.
	Delta *analytics.DeltaReport

	// Findings holds audit results for the converted document.
	Findings []audit.Finding

	// OutputPath is where the converted blueprint was written. Empty on
	// dry runs.
	OutputPath string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount  int
	LoadTime    time.Duration
	ConvertTime time.Duration
	AnalyzeTime time.Duration
	AuditTime   time.Duration
}

// CacheInfo tracks cache hits for the analysis stages.
type CacheInfo struct {
	BeforeHit bool // Whether the pre-conversion report came from cache
	AfterHit  bool // Whether the post-conversion report came from cache
}
