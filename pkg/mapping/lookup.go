package mapping

import "sort"

// Lookup is a combined source→target substitution table resolved from one or
// more categories. Lookups are value maps; callers must not mutate a lookup
// obtained from a registry.
type Lookup map[string]string

// Inverse returns the target→source inversion of the lookup.
// It fails with *AmbiguousReverseError when the lookup is not injective,
// listing every target claimed by more than one source.
func (l Lookup) Inverse() (Lookup, error) {
	inv := make(Lookup, len(l))
	claims := make(map[string][]string)

	for source, target := range l {
		claims[target] = append(claims[target], source)
		inv[target] = source
	}

	ambiguous := make(map[string][]string)
	for target, sources := range claims {
		if len(sources) > 1 {
			ambiguous[target] = sources
		}
	}
	if len(ambiguous) > 0 {
		return nil, &AmbiguousReverseError{Targets: ambiguous}
	}
	return inv, nil
}

// Sources returns the lookup's source identifiers in sorted order.
func (l Lookup) Sources() []string {
	out := make([]string, 0, len(l))
	for s := range l {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
