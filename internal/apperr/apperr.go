// Package apperr defines the error kinds shared by the workflow, the
// repositories and the HTTP layer. Wrap them with fmt.Errorf("%w: ...") and
// test with errors.Is.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrDuplicateDay = errors.New("day already generated")
	ErrGeneration   = errors.New("generation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// Status maps an error to the HTTP status reported to the caller.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateDay), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code is the machine-readable error code included in API responses.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateDay):
		return "duplicate_day"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrGeneration):
		return "generation_error"
	default:
		return "internal_error"
	}
}

// Public reports whether the error message is safe to show to the caller.
// Internal errors may carry driver or storage details.
func Public(err error) bool {
	return Code(err) != "internal_error"
}
