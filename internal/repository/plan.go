package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studytrail/internal/model"
)

type PlanRepository interface {
	Create(plan *model.Plan) error
	ByID(userID, planID string) (*model.Plan, error)
	// Latest returns the current plan of a goal: the most recently created one.
	Latest(goalID string) (*model.Plan, error)
	// Plans lists every plan of a goal, newest first.
	Plans(goalID string) ([]*model.Plan, error)
}

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(plan *model.Plan) error {
	query := `INSERT INTO plans (id, goal_id, user_id, content, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, plan.ID, plan.GoalID, plan.UserID, plan.Content, plan.CreatedAt)
	return err
}

func (r *planRepository) ByID(userID, planID string) (*model.Plan, error) {
	plan := &model.Plan{}
	err := r.db.Get(plan, `SELECT * FROM plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *planRepository) Latest(goalID string) (*model.Plan, error) {
	plan := &model.Plan{}
	err := r.db.Get(plan, `SELECT * FROM plans WHERE goal_id = $1 ORDER BY created_at DESC LIMIT 1`, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *planRepository) Plans(goalID string) ([]*model.Plan, error) {
	plans := []*model.Plan{}
	err := r.db.Select(&plans, `SELECT * FROM plans WHERE goal_id = $1 ORDER BY created_at DESC`, goalID)
	if err != nil {
		return nil, err
	}

	return plans, nil
}
