package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studytrail/internal/model"
)

// GoalFilter narrows a goal listing. The zero value lists active goals only.
type GoalFilter struct {
	IncludeCompleted bool
}

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	// Goals lists a user's goals newest first.
	Goals(userID string, filter GoalFilter) ([]*model.Goal, error)
	Update(goal *model.Goal) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, priority, target_date, completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Priority,
		goal.TargetDate,
		goal.Completed,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(userID string, filter GoalFilter) ([]*model.Goal, error) {
	goals := []*model.Goal{}

	var err error
	if filter.IncludeCompleted {
		err = r.db.Select(&goals, `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	} else {
		err = r.db.Select(&goals, `SELECT * FROM goals WHERE user_id = $1 AND completed = $2 ORDER BY created_at DESC`, userID, false)
	}
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Update writes the mutable goal fields. The owner never changes.
func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, priority = $3, target_date = $4, completed = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Priority,
		goal.TargetDate,
		goal.Completed,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
