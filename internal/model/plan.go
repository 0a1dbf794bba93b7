package model

import (
	"time"
)

// Plan is a generated study plan. A goal may accumulate several plans;
// the one with the latest CreatedAt is the current one.
type Plan struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"goal_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
