package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategorySchema     Category = "schema"
	CategoryValidation Category = "validation"
	CategoryRuntime    Category = "runtime"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// ShadowError is a structured error with a code, an explanation and an
// optional fix suggestion.
type ShadowError struct {
	// Code is a unique error identifier (e.g., "S001").
	Code string

	// Category is the error type (schema, validation, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the document or schema path the error refers to, if any.
	Path string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ShadowError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ShadowError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ShadowError with the same code.
// This lets callers match on a template: errors.Is(err, errors.New("S100")).
func (e *ShadowError) Is(target error) bool {
	t, ok := target.(*ShadowError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ShadowError) WithSuggestion(s string) *ShadowError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ShadowError) WithDetail(d string) *ShadowError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *ShadowError) WithDetailf(format string, args ...any) *ShadowError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithPath records the document path the error refers to.
func (e *ShadowError) WithPath(p string) *ShadowError {
	e.Path = p
	return e
}

// Wrap wraps another error.
func (e *ShadowError) Wrap(err error) *ShadowError {
	e.Wrapped = err
	return e
}

// New creates a ShadowError from a registered error code.
func New(code string) *ShadowError {
	template, ok := registry[code]
	if !ok {
		return &ShadowError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ShadowError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ShadowError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ShadowError {
	return &ShadowError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ShadowError.
func FromError(err error, code string) *ShadowError {
	if err == nil {
		return nil
	}
	var se *ShadowError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a ShadowError
// with the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		if se, ok := err.(*ShadowError); ok && se.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
