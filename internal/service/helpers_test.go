package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/templui/studytrail/internal/generation"
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
	"github.com/templui/studytrail/internal/repository/memstore"
	"github.com/templui/studytrail/internal/storage"
)

type fakeGenerator struct {
	mu        sync.Mutex
	planCalls int
	dayCalls  int
	lastFiles []string
	planErr   error
	dayErr    error
}

func (f *fakeGenerator) GeneratePlan(_ context.Context, goal *model.Goal, fileNames []string) (generation.GeneratedText, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.planErr != nil {
		return "", f.planErr
	}
	f.planCalls++
	f.lastFiles = fileNames
	return generation.GeneratedText(fmt.Sprintf("Plan %d for %s", f.planCalls, goal.Title)), nil
}

func (f *fakeGenerator) GenerateDailyContent(_ context.Context, plan *model.Plan, goal *model.Goal, day int) (generation.GeneratedText, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dayErr != nil {
		return "", f.dayErr
	}
	f.dayCalls++
	return generation.GeneratedText(fmt.Sprintf("Day %d of %s", day, goal.Title)), nil
}

// stepClock returns a clock that moves one second forward on every call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type testEnv struct {
	repos     *repository.Repositories
	gen       *fakeGenerator
	auth      *AuthService
	users     *UserService
	profiles  *ProfileService
	files     *FileService
	goals     *GoalService
	plans     *PlanService
	dashboard *DashboardService
	setup     *SetupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := memstore.New().Repositories()
	disk, err := storage.NewDiskStorage(t.TempDir(), "http://localhost/files", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewDiskStorage: %v", err)
	}

	clock := stepClock()
	gen := &fakeGenerator{}
	email := NewEmailService("", "noreply@example.com", "http://localhost", "Studytrail", true)

	env := &testEnv{repos: repos, gen: gen}
	env.auth = NewAuthService(repos.Users, repos.Profiles, email, "test-secret", time.Hour)
	env.auth.now = clock
	env.users = NewUserService(repos.Users, repos.Profiles)
	env.profiles = NewProfileService(repos.Profiles)
	env.profiles.now = clock
	env.files = NewFileService(repos.Files, repos.Goals, disk)
	env.files.now = clock
	env.goals = NewGoalService(repos.Goals, repos.Files)
	env.goals.now = clock
	env.plans = NewPlanService(repos.Goals, repos.Plans, repos.DailyContents, repos.Profiles, repos.Users, env.files, email, gen, 10)
	env.plans.now = clock
	env.dashboard = NewDashboardService(env.goals, env.plans, env.profiles)
	env.setup = NewSetupService(env.files, env.goals, env.plans)
	return env
}

func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()

	user, _, err := e.auth.Register(context.Background(), email, "correct horse battery", "")
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return user
}

func (e *testEnv) goal(t *testing.T, userID, title string) *model.Goal {
	t.Helper()

	goal, err := e.goals.Create(userID, GoalInput{Title: title, Priority: model.GoalPriorityHigh})
	if err != nil {
		t.Fatalf("Create goal %q: %v", title, err)
	}
	return goal
}

// fileHeader builds a multipart header the same way net/http parses uploads.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write(content)
	_ = w.Close()

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}
