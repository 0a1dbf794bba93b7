package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/db"
	"github.com/templui/studytrail/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(database) })

	err = db.RunMigrations(database.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	return database
}

func seedUser(t *testing.T, users UserRepository, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	err := users.Create(user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestUserRepositoryEmailTaken(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)

	seedUser(t, users, "ada@example.com")

	err := users.Create(&model.User{ID: uuid.New().String(), Email: "ada@example.com", PasswordHash: "x", CreatedAt: time.Now()})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Create duplicate email: want ErrEmailTaken, got %v", err)
	}

	_, err = users.ByEmail("nobody@example.com")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ByEmail missing: want not found, got %v", err)
	}
}

func TestGoalRepositoryListsActiveGoalsNewestFirst(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	other := seedUser(t, users, "other@example.com")

	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	mk := func(userID, title string, offset time.Duration, completed bool) *model.Goal {
		g := &model.Goal{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			Priority:  model.GoalPriorityMedium,
			Completed: completed,
			CreatedAt: base.Add(offset),
			UpdatedAt: base.Add(offset),
		}
		if err := goals.Create(g); err != nil {
			t.Fatalf("create goal %q: %v", title, err)
		}
		return g
	}

	mk(owner.ID, "first", 0, false)
	mk(owner.ID, "done", time.Minute, true)
	mk(owner.ID, "third", 2*time.Minute, false)
	mk(other.ID, "someone else", 3*time.Minute, false)

	list, err := goals.Goals(owner.ID, GoalFilter{})
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Goals: want=%d got=%d", 2, len(list))
	}
	if list[0].Title != "third" || list[1].Title != "first" {
		t.Fatalf("Goals order: got %q, %q", list[0].Title, list[1].Title)
	}
	for _, g := range list {
		if g.Completed || g.UserID != owner.ID {
			t.Fatalf("Goals returned %+v", g)
		}
	}

	all, err := goals.Goals(owner.ID, GoalFilter{IncludeCompleted: true})
	if err != nil {
		t.Fatalf("Goals(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Goals(all): want=%d got=%d", 3, len(all))
	}
}

func TestGoalRepositoryUpdateScopedToOwner(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	now := time.Now()
	goal := &model.Goal{ID: uuid.New().String(), UserID: owner.ID, Title: "Learn Go", Priority: model.GoalPriorityHigh, CreatedAt: now, UpdatedAt: now}
	if err := goals.Create(goal); err != nil {
		t.Fatalf("Create: %v", err)
	}

	goal.Completed = true
	if err := goals.Update(goal); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := goals.ByID(owner.ID, goal.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if !got.Completed {
		t.Fatalf("Update did not persist completed flag")
	}

	stranger := *goal
	stranger.UserID = "someone-else"
	if err := goals.Update(&stranger); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("Update by non-owner: want ErrGoalNotFound, got %v", err)
	}
	if _, err := goals.ByID("someone-else", goal.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("ByID by non-owner: want not found, got %v", err)
	}
}

func TestPlanRepositoryLatestWins(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)
	plans := NewPlanRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	now := time.Now()
	goal := &model.Goal{ID: uuid.New().String(), UserID: owner.ID, Title: "Learn X", Priority: model.GoalPriorityHigh, CreatedAt: now, UpdatedAt: now}
	if err := goals.Create(goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if _, err := plans.Latest(goal.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("Latest with no plans: want ErrPlanNotFound, got %v", err)
	}

	older := &model.Plan{ID: uuid.New().String(), GoalID: goal.ID, UserID: owner.ID, Content: "v1", CreatedAt: now}
	newer := &model.Plan{ID: uuid.New().String(), GoalID: goal.ID, UserID: owner.ID, Content: "v2", CreatedAt: now.Add(time.Second)}
	for _, p := range []*model.Plan{older, newer} {
		if err := plans.Create(p); err != nil {
			t.Fatalf("create plan: %v", err)
		}
	}

	latest, err := plans.Latest(goal.ID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != newer.ID {
		t.Fatalf("Latest: want=%s got=%s", newer.ID, latest.ID)
	}

	all, err := plans.Plans(goal.ID)
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if len(all) != 2 || all[0].ID != newer.ID {
		t.Fatalf("Plans: want both plans newest first, got %d", len(all))
	}
}

func TestDailyContentRepository(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)
	plans := NewPlanRepository(database)
	contents := NewDailyContentRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	now := time.Now()
	goal := &model.Goal{ID: uuid.New().String(), UserID: owner.ID, Title: "Learn X", Priority: model.GoalPriorityLow, CreatedAt: now, UpdatedAt: now}
	if err := goals.Create(goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	plan := &model.Plan{ID: uuid.New().String(), GoalID: goal.ID, UserID: owner.ID, Content: "plan", CreatedAt: now}
	if err := plans.Create(plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}

	for _, day := range []int{3, 1, 2} {
		c := &model.DailyContent{ID: uuid.New().String(), PlanID: plan.ID, UserID: owner.ID, DayNumber: day, Content: "day", CreatedAt: now}
		if err := contents.Create(c); err != nil {
			t.Fatalf("create day %d: %v", day, err)
		}
	}

	dup := &model.DailyContent{ID: uuid.New().String(), PlanID: plan.ID, UserID: owner.ID, DayNumber: 2, Content: "again", CreatedAt: now}
	err := contents.Create(dup)
	if !errors.Is(err, apperr.ErrDuplicateDay) {
		t.Fatalf("Create duplicate day: want ErrDuplicateDay, got %v", err)
	}

	list, err := contents.Contents(plan.ID)
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Contents: want=%d got=%d", 3, len(list))
	}
	for i, c := range list {
		if c.DayNumber != i+1 {
			t.Fatalf("Contents order: position %d has day %d", i, c.DayNumber)
		}
	}

	day1 := list[0]
	day1.Completed = true
	completedAt := now
	day1.CompletedAt = &completedAt
	if err := contents.Update(day1); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := contents.ByPlanAndDay(plan.ID, 1)
	if err != nil {
		t.Fatalf("ByPlanAndDay: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil {
		t.Fatalf("Update not persisted: %+v", got)
	}

	if _, err := contents.ByID("someone-else", day1.ID); !errors.Is(err, ErrDailyContentNotFound) {
		t.Fatalf("ByID by non-owner: want ErrDailyContentNotFound, got %v", err)
	}
}

func TestFileRepositoryLink(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	files := NewFileRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	file := &model.File{
		ID:           uuid.New().String(),
		UserID:       owner.ID,
		OwnerType:    model.FileOwnerUser,
		OwnerID:      owner.ID,
		Type:         model.FileTypeStudyMaterial,
		Filename:     "abc.pdf",
		OriginalName: "notes.pdf",
		MimeType:     "application/pdf",
		Size:         42,
		StoragePath:  "private/study_materials/abc.pdf",
		CreatedAt:    time.Now(),
	}
	if err := files.Create(file); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := files.Link(file.ID, model.FileOwnerGoal, "goal-1"); err != nil {
		t.Fatalf("Link: %v", err)
	}
	linked, err := files.Files(model.FileOwnerGoal, "goal-1")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(linked) != 1 || linked[0].OriginalName != "notes.pdf" {
		t.Fatalf("Files: got %+v", linked)
	}

	if err := files.Link("missing", model.FileOwnerGoal, "goal-1"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Link missing: want ErrFileNotFound, got %v", err)
	}
}

func TestProfileRepositoryUpdate(t *testing.T) {
	database := newTestDB(t)
	users := NewUserRepository(database)
	profiles := NewProfileRepository(database)

	owner := seedUser(t, users, "owner@example.com")
	if err := profiles.Create(&model.Profile{ID: owner.ID, DisplayName: "Ada"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	p, err := profiles.ByUserID(owner.ID)
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	p.RecordStudyDay(time.Now(), 10)
	if err := profiles.Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := profiles.ByUserID(owner.ID)
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if got.Tokens != 10 || got.Streak != 1 || got.LastStudiedAt == nil {
		t.Fatalf("Update not persisted: %+v", got)
	}

	if err := profiles.Update(&model.Profile{ID: "missing"}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Update missing: want ErrProfileNotFound, got %v", err)
	}
}
