package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them to HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
	ErrUpstream   = errors.New("upstream failure")
)

// Error is returned by every service operation. Message is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func storageError(msg string, err error) *Error {
	return &Error{Kind: ErrStorage, Message: msg, Err: err}
}

func upstreamError(msg string, err error) *Error {
	return &Error{Kind: ErrUpstream, Message: msg, Err: err}
}
