// ABOUTME: Standardized error values with machine-readable codes
// ABOUTME: Lets the CLI and the stages classify failures without string matching

package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes used across the pipeline.
const (
	ErrMissingInput    = "missing_input"
	ErrMalformedRecord = "malformed_record"
	ErrTemplateField   = "template_field"
	ErrWriteFailed     = "write_failed"
	ErrInvalidConfig   = "invalid_config"
)

// Error is the standardized error value used across all stages.
//
// Usage:
//   return errors.New(errors.ErrMissingInput, "tickets file not found").WithPath(path)
type Error struct {
	Code    string // Machine-readable error code (e.g., "missing_input")
	Message string // Human-readable error message
	Path    string // Optional: file the error refers to
	Field   string // Optional: column or placeholder that caused the error
	Line    int    // Optional: 1-based CSV line number
	Err     error  // Optional: wrapped cause
}

// New creates an Error with a code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error that wraps cause. Returns nil when cause is nil.
func Wrap(code, message string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: cause}
}

// WithPath returns a copy of e referring to a file.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// WithField returns a copy of e referring to a column or placeholder.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// AtLine returns a copy of e referring to a CSV line.
func (e *Error) AtLine(line int) *Error {
	c := *e
	c.Line = line
	return &c
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Field)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so errors.Is(err, errors.New(ErrMissingInput, ""))
// works regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Code returns the code of the first *Error in err's chain, or "" if there is none.
func Code(err error) string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return Code(err) == code
}
