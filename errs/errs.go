// Package errs defines the error taxonomy shared by the trap, memory,
// segment and scheduler packages.
//
// The taxonomy models kinds, not types: every failure returned across a
// package boundary is a *Error carrying one of the Kind values below, an
// operation tag, and (optionally) a wrapped cause. Callers that need to
// branch on the kind of failure use errors.Is against the Kind sentinels;
// callers that need the original cause use errors.Unwrap / errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Kind enumerates the error taxonomy from the design's error handling
// section. Kind values are themselves errors, so they can be used directly
// with errors.Is(err, errs.NotFound).
type Kind string

const (
	// Null indicates a required reference (context, pointer, slice) was absent.
	Null Kind = "null"
	// NotInitialized indicates a context was used before its init/constructor ran.
	NotInitialized Kind = "not_initialized"
	// Full indicates a bounded table is at capacity.
	Full Kind = "full"
	// NotFound indicates a handle is not present in its owning table.
	NotFound Kind = "not_found"
	// BadHandle indicates a handle value is the invalid sentinel (0) or otherwise malformed.
	BadHandle Kind = "bad_handle"
	// BadVector indicates a trap vector number is out of the dispatchable range.
	BadVector Kind = "bad_vector"
	// AllocFailure indicates a buffer allocation failed.
	AllocFailure Kind = "alloc_failure"
	// IO indicates a bounds-checked file-image read failed.
	IO Kind = "io"
	// StateError indicates an operation is forbidden in the object's current state.
	StateError Kind = "state_error"
	// ZeroSize indicates an allocation of size 0 was requested.
	ZeroSize Kind = "zero_size"
	// BadData indicates a structurally malformed record was rejected by an external parser.
	BadData Kind = "bad_data"
)

// Error implements the error interface for Kind, so sentinel comparison via
// errors.Is works without constructing a full *Error.
func (k Kind) Error() string {
	return string(k)
}

// Error is the concrete error type returned by every fallible operation in
// this module. Op names the failing operation (e.g. "gmem.alloc"); Kind is
// one of the taxonomy values above; Cause, if non-nil, is the underlying
// error that triggered this one (e.g. a short read from a file image).
type Error struct {
	Op    string
	Kind  Kind
	Cause error
}

// New constructs an *Error with no wrapped cause.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

// Wrap constructs an *Error wrapping cause.
func Wrap(op string, kind Kind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap supports errors.Is / errors.As against both Kind and Cause.
func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Is reports whether target is the same Kind as e, so errors.Is(err,
// errs.NotFound) works even when err is a *Error wrapping some other cause.
func (e *Error) Is(target error) bool {
	var k Kind
	if errors.As(target, &k) {
		return e.Kind == k
	}
	return false
}
