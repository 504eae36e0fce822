package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blockswap/blockswap/pkg/analytics"
	"github.com/blockswap/blockswap/pkg/audit"
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/cache"
	"github.com/blockswap/blockswap/pkg/convert"
	"github.com/blockswap/blockswap/pkg/costdb"
	"github.com/blockswap/blockswap/pkg/history"
	"github.com/blockswap/blockswap/pkg/mapping"
	"github.com/blockswap/blockswap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, history store, and logger.
// Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Registry *mapping.Registry
	DB       *costdb.DB
	History  history.Store
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If db is nil, the embedded cost table is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, reg *mapping.Registry, db *costdb.DB) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if db == nil {
		db = costdb.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Registry: reg,
		DB:       db,
	}
}

// Execute runs the complete load → convert → analyze → audit pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	lookup, err := r.ResolveLookup(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	label := blueprintLabel(opts)

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, label)
	doc, err := r.loadDocument(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	blockCount := 0
	if doc != nil {
		blockCount = len(doc.Parts)
	}
	observability.Pipeline().OnLoadComplete(ctx, label, blockCount, result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.BlockCount = len(doc.Parts)

	opts.Logger.Info("loaded blueprint",
		"name", doc.Name,
		"blocks", len(doc.Parts),
		"grid", doc.GridSize,
		"duration", result.Stats.LoadTime)

	// Stage 2: Analyze before, then convert, then analyze after
	analyzeStart := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, label)
	before, beforeHit, err := r.AnalyzeWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Before = before
	result.CacheInfo.BeforeHit = beforeHit

	convertStart := time.Now()
	observability.Pipeline().OnConvertStart(ctx, label, opts.Categories)
	converted, changes, err := convert.Convert(doc, lookup, opts.ConvertDirection())
	result.Stats.ConvertTime = time.Since(convertStart)
	observability.Pipeline().OnConvertComplete(ctx, label, changes.Replaced, result.Stats.ConvertTime, err)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	result.Document = converted
	result.Changes = changes

	opts.Logger.Info("converted blueprint",
		"replaced", changes.Replaced,
		"passed", changes.PassedThrough,
		"duration", result.Stats.ConvertTime)

	after, afterHit, err := r.AnalyzeWithCacheInfo(ctx, converted, opts)
	result.Stats.AnalyzeTime = time.Since(analyzeStart) - result.Stats.ConvertTime
	observability.Pipeline().OnAnalyzeComplete(ctx, label, result.Stats.AnalyzeTime, err)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.After = after
	result.CacheInfo.AfterHit = afterHit
	result.Delta = analytics.Delta(before, after)

	// Stage 3: Audit
	if !opts.SkipAudit {
		auditStart := time.Now()
		observability.Pipeline().OnAuditStart(ctx, label)
		result.Findings = r.auditor(lookup).Audit(converted)
		result.Stats.AuditTime = time.Since(auditStart)
		observability.Pipeline().OnAuditComplete(ctx, label, len(result.Findings), result.Stats.AuditTime, nil)
	}

	// Stage 4: Write output
	if !opts.DryRun && opts.Blueprint != "" {
		path, err := WriteConverted(converted, opts)
		if err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		result.OutputPath = path
		opts.Logger.Info("wrote converted blueprint", "path", path)
	}

	r.record(ctx, result, opts)
	return result, nil
}

// Analyze computes a report for a document, consulting the cache first.
func (r *Runner) Analyze(ctx context.Context, doc *blueprint.Document, opts Options) (*analytics.Report, error) {
	report, _, err := r.AnalyzeWithCacheInfo(ctx, doc, opts)
	return report, err
}

// AnalyzeWithCacheInfo computes a report with caching and returns cache
// hit info. The key covers the document bytes and every option that
// changes the report, so stale hits are impossible.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, doc *blueprint.Document, opts Options) (*analytics.Report, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.ReportKey(cache.Hash(doc.Raw), opts.ReportKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var report analytics.Report
			if err := json.Unmarshal(data, &report); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return &report, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "report")

	engine := analytics.New(r.DB)
	report, err := engine.Analyze(doc)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(report); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLReport) == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}
	return report, false, nil // Cache miss
}

// Audit runs the health rules against a document using the run's lookup.
func (r *Runner) Audit(doc *blueprint.Document, opts Options) ([]audit.Finding, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	lookup, err := r.ResolveLookup(opts)
	if err != nil {
		return nil, err
	}
	return r.auditor(lookup).Audit(doc), nil
}

// ResolveLookup resolves the run's categories into a single lookup.
// When a profile is named, bare category names resolve inside that
// profile's namespace first.
func (r *Runner) ResolveLookup(opts Options) (mapping.Lookup, error) {
	names := make([]string, 0, len(opts.Categories))
	for _, name := range opts.Categories {
		if opts.Profile != "" {
			namespaced := "profile:" + mapping.Key(opts.Profile) + ":" + mapping.Key(name)
			if r.Registry.Has(namespaced) {
				names = append(names, namespaced)
				continue
			}
		}
		names = append(names, name)
	}
	return r.Registry.Resolve(names...)
}

func (r *Runner) auditor(lookup mapping.Lookup) *audit.Auditor {
	known := func(subtype string) bool {
		_, ok := r.DB.Block(subtype)
		return ok
	}
	return audit.New(known, lookup)
}

func (r *Runner) loadDocument(opts Options) (*blueprint.Document, error) {
	if len(opts.Content) > 0 {
		return blueprint.Parse(opts.Name, opts.Content)
	}
	return blueprint.Load(opts.Blueprint)
}

// record persists the run. History failures are logged, never fatal; a
// conversion that wrote its output already succeeded.
func (r *Runner) record(ctx context.Context, result *Result, opts Options) {
	run := history.NewRun(blueprintLabel(opts), opts.Categories, opts.Direction)
	result.RunID = run.ID
	if r.History == nil {
		return
	}
	run.Output = result.OutputPath
	run.Replaced = result.Changes.Replaced
	run.Passed = result.Changes.PassedThrough
	run.PCUDelta = result.Delta.PCU
	run.MassDelta = result.Delta.Mass
	if err := r.History.Put(ctx, run); err != nil {
		opts.Logger.Warn("failed to record run", "err", err)
	}
}

func blueprintLabel(opts Options) string {
	if opts.Blueprint != "" {
		return opts.Blueprint
	}
	return opts.Name
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
