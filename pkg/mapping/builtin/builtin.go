// Package builtin provides the stock mapping categories shipped with
// blockswap: armor light↔heavy conversions plus thruster, weapon, and
// functional block tier upgrades.
package builtin

import "github.com/blockswap/blockswap/pkg/mapping"

// All returns the built-in categories in their canonical registration order.
func All() []mapping.Category {
	return []mapping.Category{
		Armor(),
		Thrusters(),
		Weapons(),
		Functional(),
	}
}

// Registry returns a new registry preloaded with every built-in category.
func Registry(opts ...mapping.Option) (*mapping.Registry, error) {
	r := mapping.NewRegistry(opts...)
	for _, c := range All() {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// pairs converts an ordered [source, target] table into rules.
func pairs(table [][2]string) []mapping.Rule {
	rules := make([]mapping.Rule, len(table))
	for i, p := range table {
		rules[i] = mapping.Rule{Source: p[0], Target: p[1]}
	}
	return rules
}
