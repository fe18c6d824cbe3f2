// Package errors provides error handling for tser.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//   - Reference marks for classifying errors across wrapping layers
//
// Usage:
//
//	// Classify a failure so callers can test for it with errors.Is
//	return errors.Mark(errors.Newf("interface %s has type parameters", name), errors.ErrUnsupportedSyntax)
//
//	// Wrap with context
//	if err := compile(path); err != nil {
//	    return errors.Wrapf(err, "failed to compile %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "remove the type parameters; the IR has no generics")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Mark           = crdb.Mark
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the compile pipeline.
// Use these with errors.Is() to classify a failure without matching on messages.
var (
	// ErrSyntax indicates the schema source could not be tokenized or parsed
	ErrSyntax = New("syntax error")

	// ErrUnsupportedSyntax indicates well-formed source that uses a construct
	// outside the subset the IR can represent (generics, inheritance, mixed enums, ...)
	ErrUnsupportedSyntax = New("unsupported syntax")

	// ErrUnsupportedDeclaration indicates a declaration kind the code generator
	// has no rendering for (currently: services)
	ErrUnsupportedDeclaration = New("unsupported declaration")

	// ErrUnknownTarget indicates a backend name that is not registered
	ErrUnknownTarget = New("unknown target")

	// ErrOutOfDate indicates generated files differ from what would be generated now
	ErrOutOfDate = New("generated files out of date")
)

// IsUnsupported reports whether err is a structural rejection, either at
// parse time (unsupported syntax) or at generation time (unsupported declaration).
func IsUnsupported(err error) bool {
	return err != nil && IsAny(err, ErrUnsupportedSyntax, ErrUnsupportedDeclaration)
}

// NewUnsupportedDeclarationError creates an unsupported-declaration error with a formatted message
func NewUnsupportedDeclarationError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupportedDeclaration)
}

// NewUnknownTargetError creates an unknown-target error with a formatted message
func NewUnknownTargetError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnknownTarget)
}
