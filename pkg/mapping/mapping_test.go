package mapping

import (
	stderrors "errors"
	"testing"

	"github.com/blockswap/blockswap/pkg/errors"
)

func validCategory(name string) Category {
	return Category{
		Name:   name,
		Origin: "built-in",
		Rules: []Rule{
			{Source: "LightBlock", Target: "HeavyBlock"},
			{Source: "LightSlope", Target: "HeavySlope"},
		},
	}
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
	}{
		{"valid", validCategory("armor"), false},
		{"empty name", Category{Rules: []Rule{{Source: "a", Target: "b"}}}, true},
		{"no rules", Category{Name: "empty"}, true},
		{
			"empty source",
			Category{Name: "bad", Rules: []Rule{{Source: "", Target: "b"}}},
			true,
		},
		{
			"identity rule",
			Category{Name: "bad", Rules: []Rule{{Source: "a", Target: "a"}}},
			true,
		},
		{
			"duplicate source differing targets",
			Category{Name: "bad", Rules: []Rule{
				{Source: "a", Target: "b"},
				{Source: "a", Target: "c"},
			}},
			true,
		},
		{
			"duplicate source same target",
			Category{Name: "ok", Rules: []Rule{
				{Source: "a", Target: "b"},
				{Source: "a", Target: "b"},
			}},
			false,
		},
		{
			"swap cycle",
			Category{Name: "bad", Rules: []Rule{
				{Source: "a", Target: "b"},
				{Source: "b", Target: "a"},
			}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCategory) {
				t.Errorf("Validate() code = %v, want INVALID_CATEGORY", errors.CodeOf(err))
			}
		})
	}
}

func TestCategoryAppliesTo(t *testing.T) {
	c := Category{Name: "armor", GridSizes: []string{"Large"}}
	if !c.AppliesTo("Large") || !c.AppliesTo("large") {
		t.Error("AppliesTo should match grid sizes case-insensitively")
	}
	if c.AppliesTo("Small") {
		t.Error("AppliesTo(Small) = true for a Large-only category")
	}

	unrestricted := Category{Name: "any"}
	if !unrestricted.AppliesTo("Small") {
		t.Error("category without grid sizes should apply everywhere")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(validCategory("Armor")); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	got, err := r.Get("armor")
	if err != nil {
		t.Fatalf("Get(armor) error: %v", err)
	}
	if got.Name != "Armor" {
		t.Errorf("Get(armor).Name = %q, want Armor", got.Name)
	}
	if !r.Has("ARMOR") {
		t.Error("Has() should match case-insensitively")
	}

	_, err = r.Get("missing")
	var unknown *UnknownCategoryError
	if !stderrors.As(err, &unknown) {
		t.Fatalf("Get(missing) error = %T, want *UnknownCategoryError", err)
	}
	if !errors.Is(err, errors.ErrCodeUnknownCategory) {
		t.Errorf("Get(missing) code = %v, want UNKNOWN_CATEGORY", errors.CodeOf(err))
	}
}

func TestRegistryCollisionNamespace(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(validCategory("armor")); err != nil {
		t.Fatal(err)
	}

	second := validCategory("armor")
	second.Origin = "profile:custom"
	if err := r.Register(second); err != nil {
		t.Fatalf("Register() with collision error: %v", err)
	}
	if !r.Has("profile:custom:armor") {
		t.Error("colliding category was not namespaced by origin")
	}
	// The original stays untouched.
	if got, _ := r.Get("armor"); got.Origin != "built-in" {
		t.Errorf("original category origin = %q, want built-in", got.Origin)
	}
}

func TestRegistryCollisionReject(t *testing.T) {
	r := NewRegistry(WithCollisionPolicy(CollisionReject))
	if err := r.Register(validCategory("armor")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(validCategory("armor")); err == nil {
		t.Fatal("Register() with CollisionReject succeeded, want error")
	}
}

func TestRegistryResolveDisjoint(t *testing.T) {
	r := NewRegistry()
	a := Category{Name: "a", Rules: []Rule{{Source: "x", Target: "y"}}}
	b := Category{Name: "b", Rules: []Rule{{Source: "p", Target: "q"}}}
	for _, c := range []Category{a, b} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	lookup, err := r.Resolve("a", "b")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if lookup["x"] != "y" || lookup["p"] != "q" {
		t.Errorf("Resolve() = %v, want union of both categories", lookup)
	}
}

func TestRegistryResolveIdenticalRules(t *testing.T) {
	r := NewRegistry()
	a := Category{Name: "a", Rules: []Rule{{Source: "x", Target: "y"}}}
	b := Category{Name: "b", Rules: []Rule{{Source: "x", Target: "y"}}}
	for _, c := range []Category{a, b} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	// Identical rules never conflict.
	lookup, err := r.Resolve("a", "b")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if lookup["x"] != "y" {
		t.Errorf("lookup[x] = %q, want y", lookup["x"])
	}
}

func TestRegistryResolveConflict(t *testing.T) {
	r := NewRegistry()
	a := Category{Name: "a", Rules: []Rule{{Source: "x", Target: "y"}}}
	b := Category{Name: "b", Rules: []Rule{{Source: "x", Target: "z"}}}
	for _, c := range []Category{a, b} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	_, err := r.Resolve("a", "b")
	var conflict *ConflictError
	if !stderrors.As(err, &conflict) {
		t.Fatalf("Resolve() error = %T, want *ConflictError", err)
	}
	if got := conflict.Sources(); len(got) != 1 || got[0] != "x" {
		t.Errorf("Sources() = %v, want [x]", got)
	}
	if !errors.Is(err, errors.ErrCodeMappingConflict) {
		t.Errorf("Resolve() code = %v, want MAPPING_CONFLICT", errors.CodeOf(err))
	}
}

func TestRegistryResolveUnknownName(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Resolve("nope"); !errors.Is(err, errors.ErrCodeUnknownCategory) {
		t.Errorf("Resolve(nope) code = %v, want UNKNOWN_CATEGORY", errors.CodeOf(err))
	}
}

func TestRegistryDefaultNames(t *testing.T) {
	r := NewRegistry()
	def := validCategory("armor")
	def.EnabledByDefault = true
	for _, c := range []Category{def, validCategory("extra")} {
		if err := r.Register(c); err != nil {
			t.Fatal(err)
		}
	}
	names := r.DefaultNames()
	if len(names) != 1 || names[0] != "armor" {
		t.Errorf("DefaultNames() = %v, want [armor]", names)
	}
}

func TestLookupInverse(t *testing.T) {
	l := Lookup{"a": "x", "b": "y"}
	inv, err := l.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	if inv["x"] != "a" || inv["y"] != "b" {
		t.Errorf("Inverse() = %v", inv)
	}
}

func TestLookupInverseAmbiguous(t *testing.T) {
	l := Lookup{"a": "x", "b": "x"}
	_, err := l.Inverse()
	var ambiguous *AmbiguousReverseError
	if !stderrors.As(err, &ambiguous) {
		t.Fatalf("Inverse() error = %T, want *AmbiguousReverseError", err)
	}
	if sources := ambiguous.Targets["x"]; len(sources) != 2 {
		t.Errorf("Targets[x] = %v, want two sources", sources)
	}
	if !errors.Is(err, errors.ErrCodeAmbiguousReverse) {
		t.Errorf("Inverse() code = %v, want AMBIGUOUS_REVERSE", errors.CodeOf(err))
	}
}

func TestRegisterNormalizesWhitespace(t *testing.T) {
	r := NewRegistry()
	c := Category{
		Name:  "  padded  ",
		Rules: []Rule{{Source: " a ", Target: " b "}},
	}
	if err := r.Register(c); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	got, err := r.Get("padded")
	if err != nil {
		t.Fatalf("Get(padded) error: %v", err)
	}
	if got.Rules[0].Source != "a" || got.Rules[0].Target != "b" {
		t.Errorf("rules not trimmed: %v", got.Rules[0])
	}
}
