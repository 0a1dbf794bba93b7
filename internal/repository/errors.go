package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/templui/studytrail/internal/apperr"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrProfileNotFound      = fmt.Errorf("profile %w", apperr.ErrNotFound)
	ErrGoalNotFound         = fmt.Errorf("goal %w", apperr.ErrNotFound)
	ErrFileNotFound         = fmt.Errorf("file %w", apperr.ErrNotFound)
	ErrPlanNotFound         = fmt.Errorf("plan %w", apperr.ErrNotFound)
	ErrDailyContentNotFound = fmt.Errorf("daily content %w", apperr.ErrNotFound)

	ErrEmailTaken = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
)

// DuplicateDayError reports an existing (plan, day) pair.
func DuplicateDayError(planID string, day int) error {
	return fmt.Errorf("%w: plan %s day %d", apperr.ErrDuplicateDay, planID, day)
}

// isUniqueViolation recognizes unique-constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch code {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}
