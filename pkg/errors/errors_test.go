package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidCategory, "category %q has no rules", "armor")
	want := `INVALID_CATEGORY: category "armor" has no rules`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodeInvalidProfile, err, "loading profile")
	if wrapped.Unwrap() != err {
		t.Error("Unwrap should return the cause")
	}
	if !stderrors.Is(wrapped, err) {
		t.Error("errors.Is should find the cause in the chain")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"coded", New(ErrCodeMappingConflict, "boom"), ErrCodeMappingConflict},
		{"wrapped coded", fmt.Errorf("resolve: %w", New(ErrCodeUnknownCategory, "nope")), ErrCodeUnknownCategory},
		{"plain", stderrors.New("plain"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeAmbiguousReverse, "two sources map to the same target")
	if !Is(err, ErrCodeAmbiguousReverse) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeMappingConflict) {
		t.Error("Is should not match a different code")
	}
}
