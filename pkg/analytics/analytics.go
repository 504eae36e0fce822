// Package analytics computes resource and economy reports for blueprint
// documents: per-category block counts, tiered raw-material totals via the
// cost model, PCU and mass aggregates, and before/after deltas.
package analytics

import (
	"fmt"

	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/costdb"
)

// Tier indexes into Report.Tiers. The cost model resolves blueprints in four
// tiers: the blocks themselves, the components to weld them, the ingots to
// build the components, and the ores to refine the ingots.
const (
	TierBlocks = iota
	TierComponents
	TierIngots
	TierOres
)

// TierNames labels the tiers for presentation layers.
var TierNames = []string{"blocks", "components", "ingots", "ores"}

// Report is the analysis result for one document.
// Reports are plain data; the engine performs no I/O and keeps no reference
// to the analyzed document.
type Report struct {
	Blueprint string `json:"blueprint"`
	GridSize  string `json:"grid_size"`

	BlockCount     int            `json:"block_count"`
	BlockCounts    map[string]int `json:"block_counts"`
	CategoryCounts map[string]int `json:"category_counts"`

	// Tiers holds the tier-indexed decomposition (see the Tier constants).
	Tiers []map[string]float64 `json:"tiers"`

	// Unpriced lists block subtypes absent from the cost model, sorted.
	Unpriced []string `json:"unpriced,omitempty"`

	PCU  int     `json:"pcu"`
	Mass float64 `json:"mass"`
}

// Tier returns the aggregate at tier i, or nil when the report has none.
func (r *Report) Tier(i int) map[string]float64 {
	if i < 0 || i >= len(r.Tiers) {
		return nil
	}
	return r.Tiers[i]
}

// Components returns the tier-1 component totals.
func (r *Report) Components() map[string]float64 { return r.Tier(TierComponents) }

// Ingots returns the tier-2 ingot totals.
func (r *Report) Ingots() map[string]float64 { return r.Tier(TierIngots) }

// Ores returns the tier-3 ore totals.
func (r *Report) Ores() map[string]float64 { return r.Tier(TierOres) }

// Engine analyzes documents against a cost model. Safe for concurrent use.
type Engine struct {
	db *costdb.DB
}

// New creates an analytics engine backed by the given cost model.
func New(db *costdb.DB) *Engine {
	return &Engine{db: db}
}

// Analyze computes the full report for a document: block and category
// counts, the tiered decomposition, and PCU/mass totals. Unknown block
// subtypes are reported as unpriced, never as an error.
func (e *Engine) Analyze(doc *blueprint.Document) (*Report, error) {
	counts := doc.PartCounts()

	decomp, err := e.db.Decompose(counts)
	if err != nil {
		return nil, fmt.Errorf("decompose %s: %w", doc.Name, err)
	}

	categories := make(map[string]int)
	for subtype, n := range counts {
		if _, ok := e.db.Block(subtype); !ok {
			categories["unknown"] += n
			continue
		}
		categories[e.db.Category(subtype)] += n
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &Report{
		Blueprint:      doc.Name,
		GridSize:       doc.GridSize,
		BlockCount:     total,
		BlockCounts:    counts,
		CategoryCounts: categories,
		Tiers:          decomp.Tiers,
		Unpriced:       decomp.Unpriced,
		PCU:            decomp.TotalPCU,
		Mass:           decomp.TotalMass,
	}, nil
}
