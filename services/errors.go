package services

import (
	"errors"

	"gorm.io/gorm"
)

// Kind classifies a service error into the API's error taxonomy
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Error is the error type returned by every service operation. Message is
// stable and safe to surface to the caller; Err carries the underlying
// cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument builds a 400-class error
func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// Unauthorized builds a 401-class error
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden builds a 403-class error
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound builds a 404-class error
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict builds a 409-class error
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal builds a 500-class error wrapping the underlying cause
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// AsError extracts a *Error from an error chain
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// translateDB maps a write error to the taxonomy. The store-level
// unique constraint is the final arbiter for duplicate keys; everything
// else is reported as the stable internal message so raw storage errors
// never leak to the caller.
func translateDB(err error, conflictMessage, internalMessage string) *Error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(conflictMessage)
	}
	return Internal(internalMessage, err)
}

// translateLoad maps a row-load error to the taxonomy.
func translateLoad(err error, notFoundMessage, internalMessage string) *Error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFoundMessage)
	}
	return Internal(internalMessage, err)
}
