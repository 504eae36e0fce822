// Package convert applies mapping lookups to blueprint documents.
//
// Conversion is a single pass over a document's part entries: each
// identifier found in the lookup is replaced exactly once per occurrence,
// everything else passes through byte-identical. Inputs are never mutated;
// the original document stays usable for before/after comparison.
package convert

import (
	"github.com/blockswap/blockswap/pkg/blueprint"
	"github.com/blockswap/blockswap/pkg/mapping"
)

// Direction selects which way the lookup is applied.
type Direction int

const (
	// Forward applies the lookup as resolved (source → target).
	Forward Direction = iota

	// Reverse applies the lookup's inverse. Only defined when the lookup is
	// injective; otherwise conversion fails with *mapping.AmbiguousReverseError.
	Reverse
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// ChangeSet records what one conversion pass actually altered.
// It is created fresh per call and must not be modified afterwards.
type ChangeSet struct {
	// Applied counts occurrences replaced per rule, in applied orientation
	// (for reverse conversions the rule's Source is the original target).
	Applied map[mapping.Rule]int

	// Replaced is the total number of replaced occurrences.
	Replaced int

	// PassedThrough is the number of part occurrences with no matching rule,
	// left unchanged.
	PassedThrough int
}

// NoOp reports whether the conversion changed nothing.
func (cs *ChangeSet) NoOp() bool {
	return cs.Replaced == 0
}

// Convert applies the lookup to every part entry of doc and returns a new
// document plus the change-set. Unknown identifiers are pass-through, never
// an error; the only failure mode is a reverse request against a
// non-injective lookup.
func Convert(doc *blueprint.Document, lookup mapping.Lookup, dir Direction) (*blueprint.Document, *ChangeSet, error) {
	applied := lookup
	if dir == Reverse {
		inv, err := lookup.Inverse()
		if err != nil {
			return nil, nil, err
		}
		applied = inv
	}

	cs := &ChangeSet{Applied: make(map[mapping.Rule]int)}
	replacements := make(map[int]string)

	for i, part := range doc.Parts {
		target, ok := applied[part.Subtype]
		if !ok {
			cs.PassedThrough++
			continue
		}
		replacements[i] = target
		cs.Applied[mapping.Rule{Source: part.Subtype, Target: target}]++
		cs.Replaced++
	}

	return doc.Rewrite(replacements), cs, nil
}
