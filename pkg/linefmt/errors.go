package linefmt

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/linefmt/pkg/linefmt/template"
)

// Sentinel errors, usable with errors.Is on anything the generator returns.
var (
	// ErrMissingKey indicates a placeholder names a variable outside the table.
	ErrMissingKey = template.ErrMissingKey

	// ErrFormatSpec indicates a format specifier does not fit its value.
	ErrFormatSpec = template.ErrFormatSpec

	// ErrSyntax indicates a malformed placeholder.
	ErrSyntax = template.ErrSyntax

	// ErrIO indicates the input or output file could not be used.
	ErrIO = errors.New("i/o failure")

	// ErrLineTooLong indicates an input line exceeded the configured limit.
	ErrLineTooLong = errors.New("line exceeds maximum length")

	// ErrInvalidText indicates an input line is not valid UTF-8.
	ErrInvalidText = errors.New("input is not valid UTF-8")
)

// Kind classifies an error returned by the generator.
type Kind string

// Error kinds.
const (
	KindNone       Kind = ""
	KindMissingKey Kind = "missing_key"
	KindFormatSpec Kind = "format_spec"
	KindSyntax     Kind = "syntax"
	KindIO         Kind = "io"
	KindCanceled   Kind = "canceled"
	KindUnknown    Kind = "unknown"
)

// KindOf returns the kind of err, KindNone for nil.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingKey):
		return KindMissingKey
	case errors.Is(err, ErrFormatSpec):
		return KindFormatSpec
	case errors.Is(err, ErrSyntax):
		return KindSyntax
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// LineError wraps an error with the line that caused it.
type LineError struct {
	// Line is the 1-based input line number.
	Line int
	// Template is the line text without its terminator.
	Template string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Template, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LineError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure to open, read, write or close a file.
type IOError struct {
	// Op is the operation that failed ("open", "create", "read", "write", "close").
	Op string
	// Path is the file involved, empty for plain streams.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
