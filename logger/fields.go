package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across a2ml.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Run identity
	FieldRunID = "run_id"
	FieldState = "state"

	// Backends
	FieldParser    = "parser"
	FieldGenerator = "generator"

	// Model
	FieldInterface = "interface"
	FieldSymbol    = "symbol"
	FieldKind      = "kind"
	FieldVersion   = "version"
	FieldExported  = "exported"

	// Files and paths
	FieldFile   = "file"
	FieldDir    = "dir"
	FieldSource = "source"

	// Timing and counts
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Driver struct {
//	    log *zap.SugaredLogger
//	}
//
//	func New() *Driver {
//	    return &Driver{log: logger.ComponentLogger("driver")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	runLog := logger.ChildLogger(base, logger.FieldRunID, runID)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
