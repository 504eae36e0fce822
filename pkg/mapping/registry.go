package mapping

import (
	"fmt"
	"sort"
)

// CollisionPolicy controls what happens when a registered category name
// collides with an existing one.
type CollisionPolicy int

const (
	// CollisionNamespace prefixes the incoming category with its origin
	// ("profile:custom:armor") instead of overwriting.
	CollisionNamespace CollisionPolicy = iota

	// CollisionReject fails registration on a name collision.
	CollisionReject
)

// Registry holds validated categories and resolves enabled subsets into
// combined lookups. Register is the only mutating operation; Resolve and the
// read accessors are safe for concurrent use once registration is complete.
type Registry struct {
	order  []string
	byKey  map[string]Category
	policy CollisionPolicy
}

// Option configures a Registry.
type Option func(*Registry)

// WithCollisionPolicy sets how name collisions are handled during Register.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(r *Registry) { r.policy = p }
}

// NewRegistry creates an empty registry. The default collision policy is
// CollisionNamespace.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{byKey: make(map[string]Category)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates the category and inserts it under its name.
// Name collisions are namespaced by origin or rejected per the registry's
// collision policy. Returns *ValidationError when validation fails.
func (r *Registry) Register(c Category) error {
	c = c.normalized()
	if err := c.Validate(); err != nil {
		return err
	}

	key := Key(c.Name)
	if _, exists := r.byKey[key]; exists {
		if r.policy == CollisionReject {
			return &ValidationError{Category: c.Name, Reason: "category name already registered"}
		}
		if c.Origin == "" {
			return &ValidationError{Category: c.Name, Reason: "category name already registered and no origin to namespace with"}
		}
		c.Name = fmt.Sprintf("%s:%s", c.Origin, c.Name)
		key = Key(c.Name)
		if _, exists := r.byKey[key]; exists {
			return &ValidationError{Category: c.Name, Reason: "namespaced category name already registered"}
		}
	}

	r.byKey[key] = c
	r.order = append(r.order, key)
	return nil
}

// Get returns the named category. Names are matched case-insensitively.
func (r *Registry) Get(name string) (Category, error) {
	c, ok := r.byKey[Key(name)]
	if !ok {
		return Category{}, &UnknownCategoryError{Name: name}
	}
	return c, nil
}

// Has reports whether the named category is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byKey[Key(name)]
	return ok
}

// Categories returns all registered categories in registration order.
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.order))
	for i, key := range r.order {
		out[i] = r.byKey[key]
	}
	return out
}

// DefaultNames returns the names of categories enabled by default, in
// registration order.
func (r *Registry) DefaultNames() []string {
	var out []string
	for _, key := range r.order {
		if c := r.byKey[key]; c.EnabledByDefault {
			out = append(out, c.Name)
		}
	}
	return out
}

// Resolve builds the combined source→target lookup for exactly the named
// categories. All names must exist (*UnknownCategoryError otherwise), and a
// source mapped to different targets by two categories fails with
// *ConflictError listing every conflicting source. Resolve is read-only and
// may be called repeatedly with different subsets.
func (r *Registry) Resolve(names ...string) (Lookup, error) {
	selected := make([]Category, 0, len(names))
	for _, name := range names {
		c, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, c)
	}

	merged := make(Lookup)
	owners := make(map[string][]string)   // source -> categories defining it
	targets := make(map[string][]string)  // source -> distinct targets seen
	conflicted := make(map[string]bool)

	for _, c := range selected {
		for _, rule := range c.Rules {
			if prev, ok := merged[rule.Source]; ok {
				if prev != rule.Target {
					conflicted[rule.Source] = true
					targets[rule.Source] = appendUnique(targets[rule.Source], rule.Target)
				}
				owners[rule.Source] = appendUnique(owners[rule.Source], c.Name)
				continue
			}
			merged[rule.Source] = rule.Target
			owners[rule.Source] = []string{c.Name}
			targets[rule.Source] = []string{rule.Target}
		}
	}

	if len(conflicted) > 0 {
		sources := make([]string, 0, len(conflicted))
		for s := range conflicted {
			sources = append(sources, s)
		}
		sort.Strings(sources)

		conflicts := make([]Conflict, len(sources))
		for i, s := range sources {
			conflicts[i] = Conflict{Source: s, Targets: targets[s], Categories: owners[s]}
		}
		return nil, &ConflictError{Conflicts: conflicts}
	}

	return merged, nil
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
