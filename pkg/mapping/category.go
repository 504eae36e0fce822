package mapping

import (
	"strings"
)

// Rule is an ordered source→target substitution pair.
type Rule struct {
	Source string `json:"source" toml:"source"`
	Target string `json:"target" toml:"target"`
}

// String renders the rule as "Source -> Target".
func (r Rule) String() string {
	return r.Source + " -> " + r.Target
}

// Category is a named, immutable set of substitution rules with
// applicability constraints. Construct with the exported fields and validate
// through [Registry.Register] or [Category.Validate]; never mutate a
// registered category.
type Category struct {
	// Name is the stable category identifier (e.g. "armor", "thrusters").
	Name string

	// Description is the user-facing category description.
	Description string

	// Rules lists the substitution pairs in definition order.
	Rules []Rule

	// GridSizes restricts applicability ("Large", "Small"). Empty means
	// unrestricted.
	GridSizes []string

	// Origin records where the category came from ("built-in" or
	// "profile:<name>").
	Origin string

	// EnabledByDefault marks categories that are active without explicit
	// selection.
	EnabledByDefault bool

	// Tags carries free-form labels ("upgrade", "combat", ...).
	Tags []string
}

// Key returns the normalized registry key for a category name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the category's rules as a source→target map.
func (c Category) Lookup() Lookup {
	m := make(Lookup, len(c.Rules))
	for _, r := range c.Rules {
		m[r.Source] = r.Target
	}
	return m
}

// AppliesTo reports whether the category covers the given grid size.
// Categories without grid-size restrictions apply to everything.
func (c Category) AppliesTo(gridSize string) bool {
	if len(c.GridSizes) == 0 {
		return true
	}
	for _, g := range c.GridSizes {
		if strings.EqualFold(g, gridSize) {
			return true
		}
	}
	return false
}

// Validate checks the category's internal invariants.
// It returns a *ValidationError naming every offending rule.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Category: c.Name, Reason: "category name cannot be empty"}
	}
	if len(c.Rules) == 0 {
		return &ValidationError{Category: c.Name, Reason: "category has no rules"}
	}

	var bad []Rule
	seen := make(map[string]string, len(c.Rules))
	pairs := make(map[Rule]bool, len(c.Rules))

	for _, r := range c.Rules {
		switch {
		case r.Source == "" || r.Target == "":
			bad = append(bad, r)
		case r.Source == r.Target:
			bad = append(bad, r)
		}
		pairs[r] = true
	}
	if len(bad) > 0 {
		return &ValidationError{Category: c.Name, Rules: bad, Reason: "empty or identity rules"}
	}

	for _, r := range c.Rules {
		if prev, ok := seen[r.Source]; ok && prev != r.Target {
			bad = append(bad, Rule{Source: r.Source, Target: prev}, r)
		}
		seen[r.Source] = r.Target
	}
	if len(bad) > 0 {
		return &ValidationError{Category: c.Name, Rules: bad, Reason: "duplicate sources with differing targets"}
	}

	for _, r := range c.Rules {
		if pairs[Rule{Source: r.Target, Target: r.Source}] {
			bad = append(bad, r)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Category: c.Name, Rules: bad, Reason: "rules form a swap cycle"}
	}

	return nil
}

// normalized returns a copy with trimmed name and rule identifiers.
func (c Category) normalized() Category {
	c.Name = strings.TrimSpace(c.Name)
	rules := make([]Rule, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = Rule{
			Source: strings.TrimSpace(r.Source),
			Target: strings.TrimSpace(r.Target),
		}
	}
	c.Rules = rules
	return c
}
