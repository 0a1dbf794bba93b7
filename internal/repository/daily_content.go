package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studytrail/internal/model"
)

type DailyContentRepository interface {
	// Create fails with a duplicate-day error when the plan already has
	// content for that day.
	Create(content *model.DailyContent) error
	ByID(userID, contentID string) (*model.DailyContent, error)
	ByPlanAndDay(planID string, day int) (*model.DailyContent, error)
	// Contents lists a plan's days in ascending day order.
	Contents(planID string) ([]*model.DailyContent, error)
	Update(content *model.DailyContent) error
}

type dailyContentRepository struct {
	db *sqlx.DB
}

func NewDailyContentRepository(db *sqlx.DB) DailyContentRepository {
	return &dailyContentRepository{db: db}
}

func (r *dailyContentRepository) Create(content *model.DailyContent) error {
	query := `INSERT INTO daily_contents (id, plan_id, user_id, day_number, content, completed, completed_at, rewarded, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		content.ID,
		content.PlanID,
		content.UserID,
		content.DayNumber,
		content.Content,
		content.Completed,
		content.CompletedAt,
		content.Rewarded,
		content.CreatedAt,
	)
	if isUniqueViolation(err) {
		return DuplicateDayError(content.PlanID, content.DayNumber)
	}

	return err
}

func (r *dailyContentRepository) ByID(userID, contentID string) (*model.DailyContent, error) {
	content := &model.DailyContent{}
	err := r.db.Get(content, `SELECT * FROM daily_contents WHERE id = $1 AND user_id = $2`, contentID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDailyContentNotFound
	}
	if err != nil {
		return nil, err
	}

	return content, nil
}

func (r *dailyContentRepository) ByPlanAndDay(planID string, day int) (*model.DailyContent, error) {
	content := &model.DailyContent{}
	err := r.db.Get(content, `SELECT * FROM daily_contents WHERE plan_id = $1 AND day_number = $2`, planID, day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDailyContentNotFound
	}
	if err != nil {
		return nil, err
	}

	return content, nil
}

func (r *dailyContentRepository) Contents(planID string) ([]*model.DailyContent, error) {
	contents := []*model.DailyContent{}
	err := r.db.Select(&contents, `SELECT * FROM daily_contents WHERE plan_id = $1 ORDER BY day_number ASC`, planID)
	if err != nil {
		return nil, err
	}

	return contents, nil
}

func (r *dailyContentRepository) Update(content *model.DailyContent) error {
	query := `UPDATE daily_contents
	          SET completed = $1, completed_at = $2, rewarded = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query, content.Completed, content.CompletedAt, content.Rewarded, content.ID, content.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrDailyContentNotFound
	}

	return nil
}
