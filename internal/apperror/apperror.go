// Package apperror defines the error taxonomy shared by every layer.
//
// Services and stores return *AppError values wrapping one of the sentinel
// errors below. The HTTP layer never inspects messages; it asks
// errors.Is(err, ErrXxx) and picks a status code from that.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrPayloadTooLarge = errors.New("payload too large")
)

type AppError struct {
	Err     error  // sentinel used for classification
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that resource with the given id does not exist.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a duplicate value for a unique field, e.g.
// Conflict("user", "email", "a@b.c").
func Conflict(resource, field, value string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s with %s %s already exists", resource, field, value),
		Field:   field,
	}
}

// Unauthorized is returned when credentials do not match. The message is
// deliberately the same whatever part of the credential was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// UnsupportedType rejects an upload whose extension is not allow-listed.
func UnsupportedType(ext string) *AppError {
	msg := "file type not allowed"
	if ext != "" {
		msg = fmt.Sprintf("file type %q not allowed", ext)
	}
	return &AppError{
		Err:     ErrUnsupportedType,
		Message: msg,
		Field:   "file",
	}
}

// PayloadTooLarge rejects an upload above limit bytes.
func PayloadTooLarge(limit int64) *AppError {
	return &AppError{
		Err:     ErrPayloadTooLarge,
		Message: fmt.Sprintf("file exceeds the %d byte limit", limit),
		Field:   "file",
	}
}
