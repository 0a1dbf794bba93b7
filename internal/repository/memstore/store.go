// Package memstore is an in-process implementation of the repository
// interfaces. It keeps everything in maps and is selected with
// DB_DRIVER=memory for local runs and tests.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
)

// Store holds all records. Records, including their time pointers, are
// copied on the way in and out so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users    map[string]model.User
	profiles map[string]model.Profile
	goals    map[string]model.Goal
	files    map[string]model.File
	plans    map[string]model.Plan
	contents map[string]model.DailyContent

	// insertion order, used to break created_at ties deterministically
	seq   int64
	order map[string]int64
}

func New() *Store {
	return &Store{
		users:    make(map[string]model.User),
		profiles: make(map[string]model.Profile),
		goals:    make(map[string]model.Goal),
		files:    make(map[string]model.File),
		plans:    make(map[string]model.Plan),
		contents: make(map[string]model.DailyContent),
		order:    make(map[string]int64),
	}
}

func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) Profiles() repository.ProfileRepository           { return &profileRepo{s} }
func (s *Store) Goals() repository.GoalRepository                 { return &goalRepo{s} }
func (s *Store) Files() repository.FileRepository                 { return &fileRepo{s} }
func (s *Store) Plans() repository.PlanRepository                 { return &planRepo{s} }
func (s *Store) DailyContents() repository.DailyContentRepository { return &dailyContentRepo{s} }

// track must be called with the write lock held.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}
	r.s.users[user.ID] = *user
	r.s.track(user.ID)
	return nil
}

func (r *userRepo) ByID(id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) ByEmail(email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type profileRepo struct{ s *Store }

func (r *profileRepo) ByUserID(userID string) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *profileRepo) Create(profile *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.profiles[profile.ID] = *cloneProfile(*profile)
	return nil
}

func (r *profileRepo) Update(profile *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[profile.ID]; !ok {
		return repository.ErrProfileNotFound
	}
	r.s.profiles[profile.ID] = *cloneProfile(*profile)
	return nil
}

type goalRepo struct{ s *Store }

func (r *goalRepo) Create(goal *model.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.goals[goal.ID] = *cloneGoal(*goal)
	r.s.track(goal.ID)
	return nil
}

func (r *goalRepo) ByID(userID, goalID string) (*model.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}
	return cloneGoal(g), nil
}

func (r *goalRepo) Goals(userID string, filter repository.GoalFilter) ([]*model.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goals := []*model.Goal{}
	for _, g := range r.s.goals {
		if g.UserID != userID {
			continue
		}
		if g.Completed && !filter.IncludeCompleted {
			continue
		}
		goals = append(goals, cloneGoal(g))
	}

	sort.Slice(goals, func(i, j int) bool {
		return r.s.newer(goals[i].ID, goals[i].CreatedAt.UnixNano(), goals[j].ID, goals[j].CreatedAt.UnixNano())
	})
	return goals, nil
}

func (r *goalRepo) Update(goal *model.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return repository.ErrGoalNotFound
	}
	r.s.goals[goal.ID] = *cloneGoal(*goal)
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneGoal(g model.Goal) *model.Goal {
	g.TargetDate = cloneTime(g.TargetDate)
	return &g
}

func cloneProfile(p model.Profile) *model.Profile {
	p.LastStudiedAt = cloneTime(p.LastStudiedAt)
	return &p
}

func cloneContent(c model.DailyContent) *model.DailyContent {
	c.CompletedAt = cloneTime(c.CompletedAt)
	return &c
}

// newer orders by creation time descending, then by insertion order.
func (s *Store) newer(idA string, atA int64, idB string, atB int64) bool {
	if atA != atB {
		return atA > atB
	}
	return s.order[idA] > s.order[idB]
}

// Repositories exposes the store through the shared repository set.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:         s.Users(),
		Profiles:      s.Profiles(),
		Goals:         s.Goals(),
		Files:         s.Files(),
		Plans:         s.Plans(),
		DailyContents: s.DailyContents(),
	}
}
