// Package apperr holds the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

// Error kinds.
const (
	KindInternal     Kind = iota // unexpected failure, detail not exposed
	KindUnauthorized             // missing or bad credentials
	KindNotFound                 // entity does not exist
	KindConflict                 // write clashes with stored state
	KindValidation               // malformed or invalid input
)

// Error carries a kind and a human readable detail safe to return to clients.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Unauthorized reports a request without valid admin credentials.
func Unauthorized(detail string) *Error { return &Error{Kind: KindUnauthorized, Detail: detail} }

// NotFound reports a missing entity.
func NotFound(detail string) *Error { return &Error{Kind: KindNotFound, Detail: detail} }

// Conflict reports a write rejected by current state, such as a taken slot.
func Conflict(detail string) *Error { return &Error{Kind: KindConflict, Detail: detail} }

// Validation reports input that failed binding or validation.
func Validation(detail string) *Error { return &Error{Kind: KindValidation, Detail: detail} }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries kind k.
func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
