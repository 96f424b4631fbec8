package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
	ErrUnreachable  = errors.New("server unreachable")
)

// AppError represents a structured application error. Message is the single
// user-facing string the view layer displays for a failed operation.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %q not found", resource, key),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error. It is also used for validation failures
// caught locally, before any request is made.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Unreachable creates the error used when the server produced no structured
// response at all (connection refused, timeout, malformed body).
func Unreachable(err error) *AppError {
	return &AppError{
		Code:    "UNREACHABLE",
		Message: "the server is not responding",
		Status:  http.StatusServiceUnavailable,
		Err:     errors.Join(ErrUnreachable, err),
	}
}

// FromStatus creates an AppError carrying a server-provided message, mapped to
// the sentinel matching the HTTP status code.
func FromStatus(status int, message string) *AppError {
	e := &AppError{Message: message, Status: status}
	switch status {
	case http.StatusNotFound:
		e.Code, e.Err = "NOT_FOUND", ErrNotFound
	case http.StatusBadRequest:
		e.Code, e.Err = "INVALID_INPUT", ErrInvalidInput
	case http.StatusUnauthorized:
		e.Code, e.Err = "UNAUTHORIZED", ErrUnauthorized
	case http.StatusForbidden:
		e.Code, e.Err = "FORBIDDEN", ErrForbidden
	case http.StatusConflict:
		e.Code, e.Err = "CONFLICT", ErrConflict
	default:
		if status >= 500 {
			e.Code, e.Err = "INTERNAL_ERROR", ErrInternal
		} else {
			e.Code = "REQUEST_FAILED"
		}
	}
	return e
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// UserMessage extracts the displayable message from an error. Any AppError
// yields its Message; everything else collapses to a generic message.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong"
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnreachable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
