package service

import (
	"errors"
	"fmt"
)

// ErrorType enumerates the failures surfaced by the lifecycle managers
type ErrorType int

const (
	// ValidationError input is missing or malformed
	ValidationError ErrorType = iota

	// NotFoundError referenced entity does not exist
	NotFoundError

	// InvalidStateError operation not allowed in the entity's current state
	InvalidStateError

	// InsufficientAuthorizationError capture would exceed the authorized amount
	InsufficientAuthorizationError

	// InsufficientCaptureError refund would exceed the captured amount
	InsufficientCaptureError

	// AlreadyCapturedError payment is fully captured, or captured and so cannot be canceled
	AlreadyCapturedError

	// ConflictError collection was written concurrently
	ConflictError

	// ProviderError payment provider call failed
	ProviderError

	// DatabaseError persistence call failed
	DatabaseError
)

var vals = [...]string{
	"validation-error",
	"not-found",
	"invalid-state",
	"insufficient-authorization",
	"insufficient-capture",
	"already-captured",
	"conflict",
	"provider-error",
	"database-error",
}

// String representation of `ErrorType`
func (e ErrorType) String() string {
	return vals[e]
}

// IsInvalidState reports whether e is InvalidStateError or one of its
// ledger specific forms.
func (e ErrorType) IsInvalidState() bool {
	switch e {
	case InvalidStateError, InsufficientAuthorizationError, InsufficientCaptureError, AlreadyCapturedError:
		return true
	}
	return false
}

// Error is returned by every manager operation. Message is safe to show to
// callers.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type
}

// Sentinels for errors.Is.
var (
	ErrValidation                = &Error{Type: ValidationError}
	ErrNotFound                  = &Error{Type: NotFoundError}
	ErrInvalidState              = &Error{Type: InvalidStateError}
	ErrInsufficientAuthorization = &Error{Type: InsufficientAuthorizationError}
	ErrInsufficientCapture       = &Error{Type: InsufficientCaptureError}
	ErrAlreadyCaptured           = &Error{Type: AlreadyCapturedError}
	ErrConflict                  = &Error{Type: ConflictError}
	ErrProvider                  = &Error{Type: ProviderError}
	ErrDatabase                  = &Error{Type: DatabaseError}
)

// TypeOf returns the ErrorType carried by err.
func TypeOf(err error) (ErrorType, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Type, true
	}
	return 0, false
}

func newError(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

func wrapError(t ErrorType, err error, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...), Err: err}
}

func notFound(entity, id string) *Error {
	return newError(NotFoundError, "%s with id: %s was not found", entity, id)
}
