// Package errors provides error handling for a2ml.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging (printed with %+v in verbose mode)
//   - Error wrapping and context
//   - User-facing hints
//
// Compiler failures additionally carry a Kind from a closed taxonomy (see kind.go),
// so the CLI can report the violated contract without inspecting message text.
//
// Usage:
//
//	// Create a kinded error
//	return errors.NewKind(errors.MissingField, "missing required field").
//	    InFile(path).ForField("topic")
//
//	// Wrap an I/O error with context
//	if err := os.WriteFile(path, data, 0644); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", path)
//	}
//
//	// Check the kind
//	if errors.IsKind(err, errors.DuplicateInterface) {
//	    // ...
//	}
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
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapOnce    = crdb.UnwrapOnce
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)
