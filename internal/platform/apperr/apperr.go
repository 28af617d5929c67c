// Package apperr defines the error taxonomy shared by all domain services
// and the HTTP status mapping used by handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindNotFound means a referenced entity does not exist.
	KindNotFound Kind = iota + 1
	// KindValidation means a write carried malformed or semantically invalid input.
	KindValidation
	// KindConflict means a store-level uniqueness violation.
	KindConflict
	// KindUpstream means an external dependency failed or returned bad data.
	KindUpstream
	// KindStorage means an unexpected datastore failure.
	KindStorage
)

// Error is a classified error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending field for validation errors, when known.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that the named entity does not exist.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Validation reports invalid input. field may be empty.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Field: field}
}

// Conflict reports a uniqueness violation.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// Upstream wraps a failure from an external dependency.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// Storage wraps an unexpected datastore failure.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf returns the kind of err, or 0 if err is not a classified error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// HTTP converts err into the echo JSON response for the request.
// Unclassified errors are treated as storage failures.
func HTTP(c echo.Context, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}

	body := map[string]string{"message": e.Message}
	if e.Field != "" {
		body["field"] = e.Field
	}

	switch e.Kind {
	case KindNotFound:
		return c.JSON(http.StatusNotFound, body)
	case KindValidation:
		return c.JSON(http.StatusBadRequest, body)
	case KindConflict:
		return c.JSON(http.StatusConflict, body)
	case KindUpstream:
		return c.JSON(http.StatusBadGateway, body)
	default:
		// Storage details stay in the logs, not the response.
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}
