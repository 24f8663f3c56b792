// Package apperr classifies failures so that every layer can report them
// to the caller in a uniform way.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the category of a failure.
type Kind int

const (
	KindInternal Kind = iota
	// KindInvalid: malformed or incomplete input, blocked before any side effect.
	KindInvalid
	// KindNotConfigured: a provider credential is missing. Not retried.
	KindNotConfigured
	// KindProvider: network failure, timeout or non-success provider response.
	KindProvider
	KindNotFound
	KindConflict
	KindTooLarge
	// KindResource: capture device unavailable or permission denied.
	KindResource
)

// Error carries a user-facing message next to the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

// New создает ошибку заданного вида без вложенной причины
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap создает ошибку заданного вида с вложенной причиной
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err, falling back to fallback
// for errors that were never classified.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Message
	}
	return fallback
}

// HTTPStatus maps a kind onto a response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotConfigured:
		return http.StatusServiceUnavailable
	case KindProvider:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindResource:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
