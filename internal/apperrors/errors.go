// Package apperrors holds the error taxonomy shared by the services, the
// repositories and the HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindValidation      Kind = "VALIDATION"
	KindStore           Kind = "STORE"
	KindDegraded        Kind = "DEGRADED"
)

// Sentinels for errors.Is. Any *Error matches the sentinel of its kind, and
// an unauthenticated error also matches ErrForbidden.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrForbidden       = &Error{Kind: KindForbidden}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrValidation      = &Error{Kind: KindValidation}
	ErrStore           = &Error{Kind: KindStore}
	ErrDegraded        = &Error{Kind: KindDegraded}
)

type Error struct {
	Kind    Kind              `json:"code"`
	Op      string            `json:"-"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can use errors.Is(err, apperrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind == KindForbidden && e.Kind == KindUnauthenticated {
		return true
	}
	return t.Kind == e.Kind
}

func NotFound(op, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(op, format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(op, message string) *Error {
	return &Error{Kind: KindUnauthenticated, Op: op, Message: message}
}

func Validation(op, message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Details: details}
}

// Store wraps a failure reported by the persistent store.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Message: "store request failed", Err: err}
}

// Degraded marks an operation that has a safe empty fallback.
func Degraded(op string, err error) *Error {
	return &Error{Kind: KindDegraded, Op: op, Message: "partial result", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindStore for
// anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindDegraded:
		return http.StatusOK
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text safe to show an end user. Store failures are
// reduced to a generic notice.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindStore {
		return "Something went wrong. Please try again."
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}
