// Package apperr defines the error kinds shared by the domain packages and the
// mapping from each kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindGeneral Kind = iota
	KindNotFound
	KindValidation
	KindBusinessRule
	KindUnauthorized
	KindForbidden
)

func (k Kind) Code() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindBusinessRule:
		return "BUSINESS_RULE_VIOLATION"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	default:
		return "GENERAL_ERROR"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by services. Message is safe to show to the
// caller; the wrapped cause is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() string { return e.Kind.Code() }

func (e *Error) Status() int { return e.Kind.Status() }

func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id '%v' was not found", entity, id)}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ValidationFields builds a validation error carrying per-field messages.
func ValidationFields(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "one or more validation errors occurred", Fields: fields}
}

func BusinessRule(msg string) *Error {
	return &Error{Kind: KindBusinessRule, Message: msg}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "authentication required"
	}
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "you do not have permission to perform this action"
	}
	return &Error{Kind: KindForbidden, Message: msg}
}

// General wraps an unexpected failure. The cause is kept for logging only.
func General(msg string, cause error) *Error {
	return &Error{Kind: KindGeneral, Message: msg, cause: cause}
}

// As extracts an *Error from err. Errors that are not *Error come back as a
// general failure wrapping the original.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return General("an unexpected error occurred", err)
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
