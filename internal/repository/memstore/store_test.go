package memstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
)

func TestGoalsActiveOnlyNewestFirst(t *testing.T) {
	repos := New().Repositories()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"a", "b", "c"} {
		g := &model.Goal{ID: title, UserID: "u1", Title: title, Priority: model.GoalPriorityMedium, CreatedAt: at, UpdatedAt: at}
		if i == 1 {
			g.Completed = true
		}
		if err := repos.Goals.Create(g); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	_ = repos.Goals.Create(&model.Goal{ID: "x", UserID: "u2", Title: "x", CreatedAt: at})

	list, err := repos.Goals.Goals("u1", repository.GoalFilter{})
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	// equal timestamps fall back to insertion order
	if len(list) != 2 || list[0].ID != "c" || list[1].ID != "a" {
		t.Fatalf("Goals: got %v", ids(list))
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	repos := New().Repositories()

	goal := &model.Goal{ID: "g1", UserID: "u1", Title: "Learn Go", CreatedAt: time.Now()}
	if err := repos.Goals.Create(goal); err != nil {
		t.Fatalf("Create: %v", err)
	}
	goal.Title = "mutated after create"

	got, err := repos.Goals.ByID("u1", "g1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.Title != "Learn Go" {
		t.Fatalf("stored goal changed through caller pointer: %q", got.Title)
	}

	got.Completed = true
	again, _ := repos.Goals.ByID("u1", "g1")
	if again.Completed {
		t.Fatalf("stored goal changed through returned pointer")
	}
}

func TestOwnershipScoping(t *testing.T) {
	repos := New().Repositories()
	now := time.Now()

	_ = repos.Goals.Create(&model.Goal{ID: "g1", UserID: "u1", CreatedAt: now})
	_ = repos.Plans.Create(&model.Plan{ID: "p1", GoalID: "g1", UserID: "u1", CreatedAt: now})
	_ = repos.DailyContents.Create(&model.DailyContent{ID: "d1", PlanID: "p1", UserID: "u1", DayNumber: 1, CreatedAt: now})

	if _, err := repos.Goals.ByID("u2", "g1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Goals.ByID: want not found, got %v", err)
	}
	if _, err := repos.Plans.ByID("u2", "p1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Plans.ByID: want not found, got %v", err)
	}
	if _, err := repos.DailyContents.ByID("u2", "d1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("DailyContents.ByID: want not found, got %v", err)
	}
	if err := repos.Goals.Update(&model.Goal{ID: "g1", UserID: "u2"}); !errors.Is(err, repository.ErrGoalNotFound) {
		t.Fatalf("Goals.Update: want ErrGoalNotFound, got %v", err)
	}
}

func TestPlansLatest(t *testing.T) {
	repos := New().Repositories()
	now := time.Now()

	if _, err := repos.Plans.Latest("g1"); !errors.Is(err, repository.ErrPlanNotFound) {
		t.Fatalf("Latest empty: want ErrPlanNotFound, got %v", err)
	}

	_ = repos.Plans.Create(&model.Plan{ID: "p1", GoalID: "g1", UserID: "u1", CreatedAt: now})
	_ = repos.Plans.Create(&model.Plan{ID: "p2", GoalID: "g1", UserID: "u1", CreatedAt: now.Add(time.Second)})

	latest, err := repos.Plans.Latest("g1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.ID != "p2" {
		t.Fatalf("Latest: want=%s got=%s", "p2", latest.ID)
	}
}

func TestDailyContentsDuplicateAndOrder(t *testing.T) {
	repos := New().Repositories()
	now := time.Now()

	for _, day := range []int{2, 5, 1} {
		c := &model.DailyContent{ID: fmt.Sprintf("d%d", day), PlanID: "p1", UserID: "u1", DayNumber: day, CreatedAt: now}
		if err := repos.DailyContents.Create(c); err != nil {
			t.Fatalf("Create day %d: %v", day, err)
		}
	}

	err := repos.DailyContents.Create(&model.DailyContent{ID: "dup", PlanID: "p1", UserID: "u1", DayNumber: 5})
	if !errors.Is(err, apperr.ErrDuplicateDay) {
		t.Fatalf("Create duplicate: want ErrDuplicateDay, got %v", err)
	}

	// same day on another plan is fine
	if err := repos.DailyContents.Create(&model.DailyContent{ID: "other", PlanID: "p2", UserID: "u1", DayNumber: 5}); err != nil {
		t.Fatalf("Create on other plan: %v", err)
	}

	list, err := repos.DailyContents.Contents("p1")
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	want := []int{1, 2, 5}
	if len(list) != len(want) {
		t.Fatalf("Contents: want=%d got=%d", len(want), len(list))
	}
	for i, c := range list {
		if c.DayNumber != want[i] {
			t.Fatalf("Contents[%d]: want=%d got=%d", i, want[i], c.DayNumber)
		}
	}
}

func TestDailyContentsConcurrentSameDay(t *testing.T) {
	repos := New().Repositories()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repos.DailyContents.Create(&model.DailyContent{ID: fmt.Sprintf("c%d", i), PlanID: "p1", UserID: "u1", DayNumber: 1})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("concurrent creates: want exactly 1 success, got %d", succeeded)
	}
}

func TestUsersEmailTaken(t *testing.T) {
	repos := New().Repositories()

	_ = repos.Users.Create(&model.User{ID: "u1", Email: "ada@example.com"})
	err := repos.Users.Create(&model.User{ID: "u2", Email: "ADA@example.com"})
	if !errors.Is(err, repository.ErrEmailTaken) {
		t.Fatalf("Create: want ErrEmailTaken, got %v", err)
	}
}

func TestFilesLinkAndList(t *testing.T) {
	repos := New().Repositories()
	now := time.Now()

	_ = repos.Files.Create(&model.File{ID: "f1", UserID: "u1", OwnerType: model.FileOwnerUser, OwnerID: "u1", OriginalName: "a.pdf", CreatedAt: now})
	_ = repos.Files.Create(&model.File{ID: "f2", UserID: "u1", OwnerType: model.FileOwnerUser, OwnerID: "u1", OriginalName: "b.pdf", CreatedAt: now.Add(time.Second)})

	if err := repos.Files.Link("f1", model.FileOwnerGoal, "g1"); err != nil {
		t.Fatalf("Link: %v", err)
	}

	linked, _ := repos.Files.Files(model.FileOwnerGoal, "g1")
	if len(linked) != 1 || linked[0].ID != "f1" {
		t.Fatalf("Files(goal): got %d", len(linked))
	}

	all, _ := repos.Files.AllUserFiles("u1")
	if len(all) != 2 || all[0].ID != "f2" {
		t.Fatalf("AllUserFiles: want newest first")
	}

	if err := repos.Files.Link("missing", model.FileOwnerGoal, "g1"); !errors.Is(err, repository.ErrFileNotFound) {
		t.Fatalf("Link missing: want ErrFileNotFound, got %v", err)
	}
}

func ids(goals []*model.Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.ID)
	}
	return out
}

func TestTimePointersAreCopies(t *testing.T) {
	repos := New().Repositories()

	target := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	goal := &model.Goal{ID: "g1", UserID: "u1", Title: "Learn Go", TargetDate: &target, CreatedAt: time.Now()}
	if err := repos.Goals.Create(goal); err != nil {
		t.Fatalf("Create goal: %v", err)
	}
	*goal.TargetDate = target.AddDate(1, 0, 0)

	got, _ := repos.Goals.ByID("u1", "g1")
	if !got.TargetDate.Equal(target) {
		t.Fatalf("TargetDate changed through caller pointer: %v", got.TargetDate)
	}
	*got.TargetDate = target.AddDate(2, 0, 0)
	again, _ := repos.Goals.ByID("u1", "g1")
	if !again.TargetDate.Equal(target) {
		t.Fatalf("TargetDate changed through returned pointer: %v", again.TargetDate)
	}

	studied := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	if err := repos.Profiles.Create(&model.Profile{ID: "u1", LastStudiedAt: &studied}); err != nil {
		t.Fatalf("Create profile: %v", err)
	}
	profile, _ := repos.Profiles.ByUserID("u1")
	*profile.LastStudiedAt = studied.Add(time.Hour)
	profile, _ = repos.Profiles.ByUserID("u1")
	if !profile.LastStudiedAt.Equal(studied) {
		t.Fatalf("LastStudiedAt changed through returned pointer: %v", profile.LastStudiedAt)
	}

	content := &model.DailyContent{ID: "d1", PlanID: "p1", UserID: "u1", DayNumber: 1}
	if err := repos.DailyContents.Create(content); err != nil {
		t.Fatalf("Create content: %v", err)
	}
	content.Completed, content.CompletedAt = true, &studied
	if err := repos.DailyContents.Update(content); err != nil {
		t.Fatalf("Update content: %v", err)
	}
	*content.CompletedAt = studied.Add(time.Hour)
	stored, _ := repos.DailyContents.ByID("u1", "d1")
	if !stored.CompletedAt.Equal(studied) {
		t.Fatalf("CompletedAt changed through caller pointer: %v", stored.CompletedAt)
	}
}
