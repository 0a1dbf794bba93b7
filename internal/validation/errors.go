package validation

import (
	"fmt"

	"github.com/templui/studytrail/internal/apperr"
)

// Error is a user-facing validation message. It matches apperr.ErrValidation
// under errors.Is.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return apperr.ErrValidation }

// Errorf builds a validation Error.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
