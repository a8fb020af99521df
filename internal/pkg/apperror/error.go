package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a rule-engine failure. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindPolicy        Kind = "policy"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
)

type AppError struct {
	Kind    Kind   // Failure class
	Code    string // Stable machine code (e.g., too_early)
	Message string // User-friendly message
	Err     error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same kind and code, so a wrapped
// copy of a sentinel still satisfies errors.Is against the sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// New creates a new AppError without wrapping
func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *AppError    { return New(KindValidation, code, message) }
func Policy(code, message string) *AppError        { return New(KindPolicy, code, message) }
func Authorization(code, message string) *AppError { return New(KindAuthorization, code, message) }
func NotFound(code, message string) *AppError      { return New(KindNotFound, code, message) }

// Wrap attaches a cause to a copy of base.
func Wrap(base *AppError, err error) *AppError {
	if err == nil {
		return base
	}
	return &AppError{Kind: base.Kind, Code: base.Code, Message: base.Message, Err: err}
}

// From extracts the first AppError in err's chain.
func From(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	if appErr, ok := From(err); ok {
		return appErr.Kind
	}
	return ""
}
