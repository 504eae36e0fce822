// Package pkg provides the core libraries for Blockswap blueprint conversion.
//
// # Overview
//
// Blockswap rewrites Space Engineers blueprint files by substituting block
// subtypes according to named rule categories, and reports what each swap
// costs. The pkg directory is organized into four main areas:
//
//  1. Blueprint handling ([blueprint], [convert]) - parsing and rewriting grids
//  2. Rules ([mapping], [profile]) - substitution categories and user profiles
//  3. Analytics ([costdb], [analytics], [audit]) - cost reports and health checks
//  4. Infrastructure ([cache], [history], [pipeline], [settings]) - orchestration
//
// # Architecture
//
// The typical data flow through Blockswap:
//
//	Blueprint file (bp.sbc)
//	         ↓
//	    [blueprint] package (parse cube grids, exact byte offsets)
//	         ↓
//	    [convert] package (apply mapping rules, splice replacements)
//	         ↓
//	    [analytics] package (component tiers, PCU, mass, deltas)
//	         ↓
//	    [audit] package (health findings and fixes)
//
// # Quick Start
//
// Convert a blueprint and inspect the cost delta:
//
//	import (
//	    "context"
//	    "github.com/blockswap/blockswap/pkg/mapping/builtin"
//	    "github.com/blockswap/blockswap/pkg/pipeline"
//	)
//
//	reg, err := builtin.Registry()
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, nil, reg, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Blueprint:  "path/to/bp.sbc",
//	    Categories: []string{"armor"},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("replaced %d blocks, PCU %+.0f\n",
//	    result.Changes.Replaced, result.Delta.PCU)
//
// # Main Packages
//
// ## Blueprint Handling
//
//   - [blueprint]: Offset-exact blueprint parsing and byte-level rewriting
//   - [convert]: Rule application with forward and reverse directions
//
// ## Rules
//
//   - [mapping]: Rule categories, validation, and the registry
//   - [mapping/builtin]: Embedded stock categories (armor, conveyor, thruster)
//   - [profile]: User-defined category bundles with namespaced registration
//
// ## Analytics
//
//   - [costdb]: Block cost table with component decomposition
//   - [analytics]: Tiered resource reports and before/after deltas
//   - [audit]: Rule-based health findings with optional fixes
//
// ## Infrastructure
//
//   - [cache]: Content-addressed report caching (file, memory, Redis)
//   - [history]: Conversion run records (memory, file, MongoDB)
//   - [pipeline]: The load, convert, analyze, audit orchestrator
//   - [scan]: Blueprint directory discovery
//   - [settings]: Persisted user preferences
//   - [render/costgraph]: Component decomposition diagrams via Graphviz
//   - [observability]: Optional instrumentation hooks
package pkg
