package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds.
var (
	// ErrMissingKey indicates a field names a variable that does not exist.
	ErrMissingKey = errors.New("missing key")

	// ErrFormatSpec indicates a format specifier is invalid for its value.
	ErrFormatSpec = errors.New("format spec mismatch")

	// ErrSyntax indicates malformed template text.
	ErrSyntax = errors.New("template syntax")
)

// UndefinedVariableError is returned when a field references a name the
// lookup does not know. Positional fields ({} and {0}) always end up here.
type UndefinedVariableError struct {
	// Name is the variable name as written in the field.
	Name string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if e.Name == "" || isPositional(e.Name) {
		return fmt.Sprintf("undefined variable: positional field {%s}", e.Name)
	}
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

// Is reports whether target is ErrMissingKey.
func (e *UndefinedVariableError) Is(target error) bool {
	return target == ErrMissingKey
}

// FormatSpecError is returned when a format specifier cannot be applied.
type FormatSpecError struct {
	// Spec is the specifier after nested fields were expanded.
	Spec string
	// TypeName is the kind of value being formatted: str, int or float.
	TypeName string
	// Message describes the mismatch.
	Message string
}

// Error implements the error interface.
func (e *FormatSpecError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("format spec %q: %s", e.Spec, e.Message)
	}
	return fmt.Sprintf("format spec %q for %s: %s", e.Spec, e.TypeName, e.Message)
}

// Is reports whether target is ErrFormatSpec.
func (e *FormatSpecError) Is(target error) bool {
	return target == ErrFormatSpec
}

// SyntaxError is returned for malformed replacement fields.
type SyntaxError struct {
	// Pos is the byte offset in the text being scanned.
	Pos int
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template syntax at offset %d: %s", e.Pos, e.Message)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
