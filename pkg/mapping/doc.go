// Package mapping defines substitution rule categories and the registry that
// merges them into resolvable lookups.
//
// A [Category] is an immutable, validated set of source→target [Rule] pairs
// with grid-size applicability. Categories are registered once at startup;
// the [Registry] then resolves any subset of enabled categories into a
// combined [Lookup], rejecting cross-category conflicts instead of silently
// picking a winner.
//
// # Validation
//
// Per-category invariants, checked at registration:
//   - at least one rule
//   - no empty or identity pairs
//   - no source mapped to two different targets
//   - no two rules forming a swap (A→B alongside B→A)
//
// Resolution additionally rejects the same source mapping to different
// targets across two simultaneously enabled categories.
package mapping
