package agree_errors

import (
	"errors"
	"net/http"
)

// Common errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyExists     = errors.New("already exists")
	ErrMethodNotAllowed  = errors.New("method not allowed")
	ErrAlreadyRegistered = errors.New("path already registered")
	ErrNotRegistered     = errors.New("path not registered")
)

// StatusError is a request-scoped failure that knows how it is rendered:
// Status becomes the response code and Message the plain-text body.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func newStatusError(status int, message string, err error) *StatusError {
	return &StatusError{Status: status, Message: message, Err: err}
}

// Request errors returned by the store handlers.
var (
	ErrNeedQID           = newStatusError(http.StatusBadRequest, "NEED QID", ErrInvalidInput)
	ErrQuestionNotFound  = newStatusError(http.StatusNotFound, "QUESTION NOT FOUND", ErrNotFound)
	ErrNeedText          = newStatusError(http.StatusBadRequest, "NEED TEXT", ErrInvalidInput)
	ErrDuplicateQuestion = newStatusError(http.StatusBadRequest, "DUPLICATE QUESTION", ErrAlreadyExists)
	ErrNeedUID           = newStatusError(http.StatusBadRequest, "NEED UID", ErrInvalidInput)
	ErrUserNotFound      = newStatusError(http.StatusNotFound, "USER NOT FOUND", ErrNotFound)
	ErrCannotReaddUser   = newStatusError(http.StatusBadRequest, "CANNOT READD USER", ErrAlreadyExists)
	ErrUnsupportedMethod = newStatusError(http.StatusMethodNotAllowed, "METHOD NOT ALLOWED", ErrMethodNotAllowed)
	ErrRouteNotFound     = newStatusError(http.StatusNotFound, "NOT FOUND", ErrNotFound)
)

// StatusOf reports the HTTP status carried by err, or 500 when err is not a StatusError.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}
