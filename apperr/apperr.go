// Package apperr defines the error taxonomy shared by every layer.
// A handler either returns a normal value or an *Error; the terminal
// response writer maps Status to the HTTP code and emits the uniform
// {status, message} envelope.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest covers schema validation failures and malformed input.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "Unauthorized")
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Constraint covers database-level failures that validation cannot catch:
// duplicate unique columns and foreign key violations.
func Constraint(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// StatusOf extracts the HTTP status carried by err, or 500 when err is not
// an *Error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}
