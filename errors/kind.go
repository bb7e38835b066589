package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a compiler failure by the contract it violates.
// The set is closed: every failure surfaced by the driver carries one of these.
type Kind string

const (
	// Configuration errors, detected before any parsing occurs
	InvalidInput   Kind = "InvalidInput"
	InvalidOutput  Kind = "InvalidOutput"
	InvalidVersion Kind = "InvalidVersion"
	UnknownBackend Kind = "UnknownBackend"

	// Parse errors
	MalformedDocument  Kind = "MalformedDocument"
	MissingField       Kind = "MissingField"
	DuplicateInterface Kind = "DuplicateInterface"
	DuplicateMessage   Kind = "DuplicateMessage"
	DuplicateType      Kind = "DuplicateType"

	// Resolution and generation errors
	UnknownTypeReference    Kind = "UnknownTypeReference"
	UnknownMessageReference Kind = "UnknownMessageReference"
	VersionMismatch         Kind = "VersionMismatch"
	AliasCycle              Kind = "AliasCycle"

	// Publish errors
	PublishFailed Kind = "PublishFailed"
)

// Stage groups kinds by the pipeline phase that detects them.
type Stage string

const (
	StageConfiguration Stage = "configuration"
	StageParse         Stage = "parse"
	StageResolution    Stage = "resolution"
	StagePublish       Stage = "publish"
)

// Stage returns the pipeline phase that raises this kind.
func (k Kind) Stage() Stage {
	switch k {
	case InvalidInput, InvalidOutput, InvalidVersion, UnknownBackend:
		return StageConfiguration
	case MalformedDocument, MissingField, DuplicateInterface, DuplicateMessage, DuplicateType:
		return StageParse
	case UnknownTypeReference, UnknownMessageReference, VersionMismatch, AliasCycle:
		return StageResolution
	case PublishFailed:
		return StagePublish
	default:
		return ""
	}
}

// CompileError is a failure with a Kind and the location it was detected at.
type CompileError struct {
	Kind    Kind
	Message string
	File    string // definition file or output path, if known
	Symbol  string // namespace-qualified symbol, if known
	Field   string // document field, if known
	Err     error  // underlying cause (optional)
}

// NewKind creates a CompileError with a formatted message.
func NewKind(kind Kind, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapKind creates a CompileError that wraps an underlying cause.
// The cause gets a stack trace attached if it does not already carry one.
func WrapKind(err error, kind Kind, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     WithStack(err),
	}
}

// InFile records the file the error was detected in.
func (e *CompileError) InFile(path string) *CompileError {
	e.File = path
	return e
}

// ForSymbol records the symbol the error refers to.
func (e *CompileError) ForSymbol(symbol string) *CompileError {
	e.Symbol = symbol
	return e
}

// ForField records the document field the error refers to.
func (e *CompileError) ForField(field string) *CompileError {
	e.Field = field
	return e
}

// Error renders "Message (field=..., symbol=..., file=...): cause".
func (e *CompileError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	var loc []string
	if e.Field != "" {
		loc = append(loc, "field="+e.Field)
	}
	if e.Symbol != "" {
		loc = append(loc, "symbol="+e.Symbol)
	}
	if e.File != "" {
		loc = append(loc, "file="+e.File)
	}
	if len(loc) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(loc, ", "))
		sb.WriteString(")")
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first CompileError in err's chain, or "" if none.
func KindOf(err error) Kind {
	var ce *CompileError
	if As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains a CompileError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
