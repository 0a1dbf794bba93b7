package repository

import "github.com/jmoiron/sqlx"

// Repositories groups one implementation of every repository so callers can
// swap the SQL store for the in-memory one without touching services.
type Repositories struct {
	Users         UserRepository
	Profiles      ProfileRepository
	Goals         GoalRepository
	Files         FileRepository
	Plans         PlanRepository
	DailyContents DailyContentRepository
}

func NewSQL(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Profiles:      NewProfileRepository(db),
		Goals:         NewGoalRepository(db),
		Files:         NewFileRepository(db),
		Plans:         NewPlanRepository(db),
		DailyContents: NewDailyContentRepository(db),
	}
}
