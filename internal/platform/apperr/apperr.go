// Package apperr classifies domain errors so handlers can map them to
// HTTP status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the class of an error.
type Kind int

const (
	// Unknown is the zero Kind; errors without a classification map to it.
	Unknown Kind = iota
	// InvalidArgument marks malformed or semantically invalid input.
	InvalidArgument
	// NotFound marks a missing record or sub-record.
	NotFound
	// Conflict marks a request that collides with existing state,
	// such as a double-booked appointment slot.
	Conflict
	// Unauthorized marks failed authentication.
	Unauthorized
	// StorageFailure marks a database read or write that failed.
	StorageFailure
)

// Error carries a Kind alongside a message and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid returns an InvalidArgument error.
func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a NotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf returns a Conflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: Conflict, Msg: fmt.Sprintf(format, args...)}
}

// Unauthenticated returns an Unauthorized error.
func Unauthenticated(msg string) *Error {
	return &Error{Kind: Unauthorized, Msg: msg}
}

// Storage wraps a low-level database error.
func Storage(err error, msg string) *Error {
	return &Error{Kind: StorageFailure, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err, walking the wrap chain.
// Errors that carry no classification report Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// HTTPStatus maps an error to the HTTP status code it should produce.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidArgument:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
