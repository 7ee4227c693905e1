// Package apperror defines the application's error taxonomy. Handlers map
// each kind to a user-visible outcome (404 page, login redirect, form
// re-render, generic 500) instead of inspecting store errors directly.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes an application error.
type Kind int

const (
	// Unknown is for unspecified errors
	Unknown Kind = iota
	// NotFound means the post or user is absent, or the id is malformed
	NotFound
	// Unauthorized means authentication is required and absent
	Unauthorized
	// Forbidden means the requester is authenticated but not the owner
	Forbidden
	// Validation means one or more form fields failed validation
	Validation
	// Store means the underlying persistence layer failed
	Store
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// Error is the application error type. Fields holds per-field messages for
// Validation errors; Err wraps the underlying cause for errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status appropriate for the error kind. Note
// that handlers usually redirect for Unauthorized/Forbidden rather than
// writing the status directly.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	case Store:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates an Error of the given kind wrapping an underlying cause.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewNotFound creates a NotFound error.
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewUnauthorized creates an Unauthorized error.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

// NewForbidden creates a Forbidden error.
func NewForbidden(message string) *Error {
	return &Error{Kind: Forbidden, Message: message}
}

// NewValidation creates a Validation error carrying field-level messages.
func NewValidation(fields []FieldError) *Error {
	return &Error{Kind: Validation, Message: "validation failed", Fields: fields}
}

// NewStore creates a Store error wrapping the persistence failure.
func NewStore(message string, err error) *Error {
	return &Error{Kind: Store, Message: message, Err: err}
}

// KindOf reports the Kind of err, or Unknown when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Unknown
}

// FieldsOf returns the field errors carried by err, if any.
func FieldsOf(err error) []FieldError {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
