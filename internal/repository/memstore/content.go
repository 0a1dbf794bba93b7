package memstore

import (
	"sort"

	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
)

type fileRepo struct{ s *Store }

func (r *fileRepo) Create(file *model.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.files[file.ID] = *file
	r.s.track(file.ID)
	return nil
}

func (r *fileRepo) ByID(id string) (*model.File, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.files[id]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	return &f, nil
}

func (r *fileRepo) Files(ownerType, ownerID string) ([]*model.File, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	files := []*model.File{}
	for _, f := range r.s.files {
		if f.OwnerType == ownerType && f.OwnerID == ownerID {
			files = append(files, &f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return !r.s.newer(files[i].ID, files[i].CreatedAt.UnixNano(), files[j].ID, files[j].CreatedAt.UnixNano())
	})
	return files, nil
}

func (r *fileRepo) AllUserFiles(userID string) ([]*model.File, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	files := []*model.File{}
	for _, f := range r.s.files {
		if f.UserID == userID {
			files = append(files, &f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return r.s.newer(files[i].ID, files[i].CreatedAt.UnixNano(), files[j].ID, files[j].CreatedAt.UnixNano())
	})
	return files, nil
}

func (r *fileRepo) Link(fileID, ownerType, ownerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.files[fileID]
	if !ok {
		return repository.ErrFileNotFound
	}
	f.OwnerType = ownerType
	f.OwnerID = ownerID
	r.s.files[fileID] = f
	return nil
}

func (r *fileRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.files, id)
	delete(r.s.order, id)
	return nil
}

type planRepo struct{ s *Store }

func (r *planRepo) Create(plan *model.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.plans[plan.ID] = *plan
	r.s.track(plan.ID)
	return nil
}

func (r *planRepo) ByID(userID, planID string) (*model.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.plans[planID]
	if !ok || p.UserID != userID {
		return nil, repository.ErrPlanNotFound
	}
	return &p, nil
}

func (r *planRepo) Latest(goalID string) (*model.Plan, error) {
	plans, _ := r.Plans(goalID)
	if len(plans) == 0 {
		return nil, repository.ErrPlanNotFound
	}
	return plans[0], nil
}

func (r *planRepo) Plans(goalID string) ([]*model.Plan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	plans := []*model.Plan{}
	for _, p := range r.s.plans {
		if p.GoalID == goalID {
			plans = append(plans, &p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		return r.s.newer(plans[i].ID, plans[i].CreatedAt.UnixNano(), plans[j].ID, plans[j].CreatedAt.UnixNano())
	})
	return plans, nil
}

type dailyContentRepo struct{ s *Store }

func (r *dailyContentRepo) Create(content *model.DailyContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.contents {
		if c.PlanID == content.PlanID && c.DayNumber == content.DayNumber {
			return repository.DuplicateDayError(content.PlanID, content.DayNumber)
		}
	}
	r.s.contents[content.ID] = *cloneContent(*content)
	r.s.track(content.ID)
	return nil
}

func (r *dailyContentRepo) ByID(userID, contentID string) (*model.DailyContent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contents[contentID]
	if !ok || c.UserID != userID {
		return nil, repository.ErrDailyContentNotFound
	}
	return cloneContent(c), nil
}

func (r *dailyContentRepo) ByPlanAndDay(planID string, day int) (*model.DailyContent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.contents {
		if c.PlanID == planID && c.DayNumber == day {
			return cloneContent(c), nil
		}
	}
	return nil, repository.ErrDailyContentNotFound
}

func (r *dailyContentRepo) Contents(planID string) ([]*model.DailyContent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	contents := []*model.DailyContent{}
	for _, c := range r.s.contents {
		if c.PlanID == planID {
			contents = append(contents, cloneContent(c))
		}
	}
	model.SortByDay(contents)
	return contents, nil
}

func (r *dailyContentRepo) Update(content *model.DailyContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.contents[content.ID]
	if !ok || existing.UserID != content.UserID {
		return repository.ErrDailyContentNotFound
	}
	existing.Completed = content.Completed
	existing.CompletedAt = cloneTime(content.CompletedAt)
	existing.Rewarded = content.Rewarded
	r.s.contents[content.ID] = existing
	return nil
}
