package model

import (
	"sort"
	"time"
)

type DailyContent struct {
	ID          string     `db:"id" json:"id"`
	PlanID      string     `db:"plan_id" json:"plan_id"`
	UserID      string     `db:"user_id" json:"user_id"`
	DayNumber   int        `db:"day_number" json:"day_number"`
	Content     string     `db:"content" json:"content"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Rewarded    bool       `db:"rewarded" json:"-"` // set once tokens were granted for this day
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// SortByDay orders contents ascending by day number in place.
func SortByDay(contents []*DailyContent) {
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].DayNumber < contents[j].DayNumber
	})
}
