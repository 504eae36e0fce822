package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blockswap/blockswap/pkg/errors"
)

// ValidationError reports a malformed or self-conflicting category.
// Rules lists the offending pairs, when the problem is rule-level.
type ValidationError struct {
	Category string
	Rules    []Rule
	Reason   string
}

func (e *ValidationError) Error() string {
	if len(e.Rules) == 0 {
		return fmt.Sprintf("invalid category %q: %s", e.Category, e.Reason)
	}
	rules := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		rules[i] = r.String()
	}
	return fmt.Sprintf("invalid category %q: %s: %s", e.Category, e.Reason, strings.Join(rules, "; "))
}

// Code implements errors.Coder.
func (e *ValidationError) Code() errors.Code { return errors.ErrCodeInvalidCategory }

// UnknownCategoryError reports a reference to a category that was never
// registered.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown mapping category: %s", e.Name)
}

// Code implements errors.Coder.
func (e *UnknownCategoryError) Code() errors.Code { return errors.ErrCodeUnknownCategory }

// Conflict records one source identifier mapped to different targets by two
// simultaneously enabled categories.
type Conflict struct {
	Source     string
	Targets    []string
	Categories []string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s -> {%s} (from %s)",
		c.Source, strings.Join(c.Targets, ", "), strings.Join(c.Categories, ", "))
}

// ConflictError reports every cross-category source conflict found while
// resolving a category subset. Resolution never silently picks one target.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return "conflicting mappings: " + strings.Join(parts, "; ")
}

// Code implements errors.Coder.
func (e *ConflictError) Code() errors.Code { return errors.ErrCodeMappingConflict }

// Sources returns the conflicting source identifiers in sorted order.
func (e *ConflictError) Sources() []string {
	out := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		out[i] = c.Source
	}
	sort.Strings(out)
	return out
}

// AmbiguousReverseError reports a reverse conversion request against a
// non-injective lookup: two or more sources share each listed target.
type AmbiguousReverseError struct {
	Targets map[string][]string // target -> sources mapping to it
}

func (e *AmbiguousReverseError) Error() string {
	targets := make([]string, 0, len(e.Targets))
	for t := range e.Targets {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	parts := make([]string, len(targets))
	for i, t := range targets {
		sources := append([]string(nil), e.Targets[t]...)
		sort.Strings(sources)
		parts[i] = fmt.Sprintf("%s <- {%s}", t, strings.Join(sources, ", "))
	}
	return "lookup is not reversible: " + strings.Join(parts, "; ")
}

// Code implements errors.Coder.
func (e *AmbiguousReverseError) Code() errors.Code { return errors.ErrCodeAmbiguousReverse }
