// Package errors provides structured error types for blockswap.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_*/NOT_FOUND_*: Resource not found
//   - MAPPING_CONFLICT/AMBIGUOUS_*/CYCLIC_*: Configuration problems detected at runtime
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidProfile, "profile %q has no categories", name)
//	if errors.Is(err, errors.ErrCodeInvalidProfile) {
//	    // Handle validation error
//	}
//
// Domain packages (mapping, convert, costdb) define richer error types that
// carry the offending identifiers as struct fields. Those types implement
// [Coder] so this package can still classify them:
//
//	code := errors.CodeOf(err) // e.g. MAPPING_CONFLICT
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidCategory  Code = "INVALID_CATEGORY"
	ErrCodeInvalidProfile   Code = "INVALID_PROFILE"
	ErrCodeInvalidBlueprint Code = "INVALID_BLUEPRINT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeUnknownCategory  Code = "UNKNOWN_CATEGORY"
	ErrCodeUnknownProfile   Code = "UNKNOWN_PROFILE"
	ErrCodeBlueprintMissing Code = "BLUEPRINT_NOT_FOUND"

	// Configuration conflicts detected when combining rule sets
	ErrCodeMappingConflict  Code = "MAPPING_CONFLICT"
	ErrCodeAmbiguousReverse Code = "AMBIGUOUS_REVERSE"
	ErrCodeCyclicCostModel  Code = "CYCLIC_COST_MODEL"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Coder is implemented by domain error types that carry their own code.
type Coder interface {
	error
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	ErrCode Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the error code, implementing [Coder].
func (e *Error) Code() Code {
	return e.ErrCode
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		ErrCode: code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		ErrCode: code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the error code from an error, if available.
// Returns ErrCodeInternal for non-nil errors that carry no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if c, ok := e.(Coder); ok {
			return c.Code()
		}
	}
	return ErrCodeInternal
}
