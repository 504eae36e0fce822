// Package costdb holds the static cost model: block cost entries, component
// to ingot conversions, and ore yields, plus the tiered back-calculation
// that turns part counts into raw-resource totals.
//
// The model forms a DAG of resources: blocks decompose into components,
// components into ingots, ingots into ores. [DB.Decompose] walks that DAG
// with an explicit stack, accumulating a tier-indexed aggregate, and fails
// with *CyclicCostModelError rather than looping if the data is cyclic.
// Parts without entries are reported as unpriced leaves, never as failures,
// so partial reports remain possible for blueprints with modded blocks.
package costdb

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/blockswap/blockswap/pkg/errors"
)

// Entry is the cost model record for one block subtype.
type Entry struct {
	// Category is the block's category tag ("armor", "thrusters", ...).
	Category string `json:"category"`

	// PCU is the block's processing cost units.
	PCU int `json:"pcu"`

	// Mass is the block mass in kilograms.
	Mass float64 `json:"mass"`

	// Components maps component identifiers to the quantity needed to weld
	// the block.
	Components map[string]float64 `json:"components"`
}

// Metadata describes the provenance of a cost table.
type Metadata struct {
	Source      string `json:"source,omitempty"`
	GameVersion string `json:"game_version,omitempty"`
	Generated   string `json:"generated,omitempty"`
}

// DB is a queryable cost model. It performs no I/O after construction and is
// safe for concurrent reads.
type DB struct {
	meta             Metadata
	blocks           map[string]Entry
	componentToIngot map[string]map[string]float64
	oreYields        map[string]float64
	infer            bool
}

// file is the on-disk JSON shape.
type file struct {
	Metadata         Metadata                      `json:"metadata"`
	ComponentToIngot map[string]map[string]float64 `json:"component_to_ingot"`
	OreYields        map[string]float64            `json:"ore_yields"`
	Blocks           map[string]Entry              `json:"blocks"`
}

// Option configures a DB.
type Option func(*DB)

// WithInference toggles the heuristic cost fallback for unlisted armor,
// thruster, and power block variants. Enabled by default.
func WithInference(on bool) Option {
	return func(db *DB) { db.infer = on }
}

// Parse reads a cost table from JSON data.
func Parse(data []byte, opts ...Option) (*DB, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cost table: %w", err)
	}
	db := &DB{
		meta:             f.Metadata,
		blocks:           f.Blocks,
		componentToIngot: f.ComponentToIngot,
		oreYields:        f.OreYields,
		infer:            true,
	}
	if db.blocks == nil {
		db.blocks = map[string]Entry{}
	}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

// LoadFile reads a cost table from a JSON file.
func LoadFile(path string, opts ...Option) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cost table: %w", err)
	}
	return Parse(data, opts...)
}

// Metadata returns the table's provenance record.
func (db *DB) Metadata() Metadata { return db.meta }

// Block returns the cost entry for a subtype. When no entry exists and
// inference is enabled, a heuristic entry is derived for recognizable
// armor/thruster/power variants; ok is false only when neither applies.
func (db *DB) Block(subtype string) (Entry, bool) {
	if e, ok := db.blocks[subtype]; ok {
		return e, true
	}
	// Component and ingot names ("Thrust", "Reactor") would pattern-match
	// the family heuristics and decompose into themselves.
	if db.infer && !db.isResource(subtype) {
		return inferEntry(subtype)
	}
	return Entry{}, false
}

// isResource reports whether id names a component, ingot, or ore rather
// than a block.
func (db *DB) isResource(id string) bool {
	if _, ok := db.componentToIngot[id]; ok {
		return true
	}
	_, ok := db.oreYields[id]
	return ok
}

// Category returns the category tag for a subtype, falling back to a name
// heuristic for unknown blocks so grouping still works on modded content.
func (db *DB) Category(subtype string) string {
	if e, ok := db.Block(subtype); ok && e.Category != "" {
		return e.Category
	}
	lowered := strings.ToLower(subtype)
	switch {
	case strings.Contains(lowered, "armor"):
		return "armor"
	case strings.Contains(lowered, "thrust"):
		return "thrusters"
	case strings.Contains(lowered, "turret"),
		strings.Contains(lowered, "gatling"),
		strings.Contains(lowered, "artillery"):
		return "weapons"
	}
	return "utility"
}

// KnownBlockIDs returns the subtypes with explicit entries, sorted.
func (db *DB) KnownBlockIDs() []string {
	out := make([]string, 0, len(db.blocks))
	for id := range db.blocks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Resources returns the direct decomposition of a resource identifier,
// or nil for terminal resources. The returned map must not be mutated.
func (db *DB) Resources(id string) map[string]float64 {
	return db.subResources(id)
}

// subResources returns the direct decomposition of a resource identifier at
// any tier: block → components, component → ingots, ingot → ore.
func (db *DB) subResources(id string) map[string]float64 {
	// Components and ingots win over block lookup so a resource identifier
	// is never routed through block inference.
	if ingots, ok := db.componentToIngot[id]; ok {
		return ingots
	}
	if yield, ok := db.oreYields[id]; ok && yield > 0 {
		return map[string]float64{id + " Ore": 1 / yield}
	}
	if e, ok := db.Block(id); ok && len(e.Components) > 0 {
		return e.Components
	}
	return nil
}

// CyclicCostModelError reports a cycle in the cost model's decomposition
// DAG. Cycle lists the identifiers along the loop, ending where it started.
type CyclicCostModelError struct {
	Cycle []string
}

func (e *CyclicCostModelError) Error() string {
	return "cyclic cost model: " + strings.Join(e.Cycle, " -> ")
}

// Code implements errors.Coder.
func (e *CyclicCostModelError) Code() errors.Code { return errors.ErrCodeCyclicCostModel }
