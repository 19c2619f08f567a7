// Package apperror defines the domain error taxonomy shared by services and
// controllers. Each Kind maps to exactly one HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateEmail
	KindInvalidCredentials
	KindAuthRequired
	KindInvalidToken
	KindExpiredToken
	KindForbidden
	KindNotFound
	KindFileTooLarge
	KindInvalidFileType
)

// Error is a domain error carrying a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for validation errors.
	Fields map[string]string
	// Err is the underlying cause; it is logged, never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindDuplicateEmail, KindFileTooLarge, KindInvalidFileType:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindAuthRequired, KindInvalidToken, KindExpiredToken:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrValidation         = &Error{Kind: KindValidation, Message: "Validation failed"}
	ErrDuplicateEmail     = &Error{Kind: KindDuplicateEmail, Message: "Email already registered"}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password"}
	ErrAuthRequired       = &Error{Kind: KindAuthRequired, Message: "Authentication required"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Message: "Invalid token"}
	ErrExpiredToken       = &Error{Kind: KindExpiredToken, Message: "Token has expired"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Forbidden"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "Not found"}
	ErrFileTooLarge       = &Error{Kind: KindFileTooLarge, Message: "Image must be 2MB or less."}
	ErrInvalidFileType    = &Error{Kind: KindInvalidFileType, Message: "Please upload an image file (jpg/png)."}
	ErrInternal           = &Error{Kind: KindInternal, Message: "Something went wrong"}
)

// New returns an error of the given kind with a custom message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation returns a validation error for a single field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: map[string]string{field: message}}
}

// Internal wraps an unexpected failure. The message stays generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: ErrInternal.Message, Err: err}
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
