package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
	"github.com/templui/studytrail/internal/validation"
	"golang.org/x/text/unicode/norm"
)

// GoalInput carries the fields of a new goal.
type GoalInput struct {
	Title       string
	Description string
	Priority    string
	TargetDate  *time.Time
	FileID      string // optional study file to attach
}

// GoalUpdate carries optional changes; nil fields are left alone.
type GoalUpdate struct {
	Title           *string
	Description     *string
	Priority        *string
	TargetDate      *time.Time
	ClearTargetDate bool
	Completed       *bool
}

type GoalService struct {
	repo     repository.GoalRepository
	fileRepo repository.FileRepository
	now      func() time.Time
}

func NewGoalService(repo repository.GoalRepository, fileRepo repository.FileRepository) *GoalService {
	return &GoalService{
		repo:     repo,
		fileRepo: fileRepo,
		now:      time.Now,
	}
}

// normalizeTitle trims and NFC-normalizes so visually equal titles compare equal.
func normalizeTitle(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}

func (s *GoalService) Create(userID string, input GoalInput) (*model.Goal, error) {
	title := normalizeTitle(input.Title)
	err := validation.ValidateGoalTitle(title)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	err = validation.ValidateGoalDescription(description)
	if err != nil {
		return nil, err
	}

	priority := strings.ToLower(strings.TrimSpace(input.Priority))
	if priority == "" {
		priority = model.GoalPriorityMedium
	}
	err = validation.ValidatePriority(priority)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		TargetDate:  input.TargetDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	// Linking is best effort: the goal stays even if the file can't be attached
	if input.FileID != "" {
		if err := s.linkFile(userID, input.FileID, goal.ID); err != nil {
			slog.Warn("failed to link file to goal", "error", err, "file_id", input.FileID, "goal_id", goal.ID)
		}
	}

	return goal, nil
}

func (s *GoalService) linkFile(userID, fileID, goalID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return err
	}
	if file.UserID != userID {
		return repository.ErrFileNotFound
	}
	return s.fileRepo.Link(fileID, model.FileOwnerGoal, goalID)
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

// Goals lists the user's goals, newest first. Completed goals are only
// included on request.
func (s *GoalService) Goals(userID string, includeCompleted bool) ([]*model.Goal, error) {
	return s.repo.Goals(userID, repository.GoalFilter{IncludeCompleted: includeCompleted})
}

func (s *GoalService) Update(userID, goalID string, update GoalUpdate) (*model.Goal, error) {
	// Verify ownership
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := normalizeTitle(*update.Title)
		if err := validation.ValidateGoalTitle(title); err != nil {
			return nil, err
		}
		goal.Title = title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if err := validation.ValidateGoalDescription(description); err != nil {
			return nil, err
		}
		goal.Description = description
	}
	if update.Priority != nil {
		priority := strings.ToLower(strings.TrimSpace(*update.Priority))
		if err := validation.ValidatePriority(priority); err != nil {
			return nil, err
		}
		goal.Priority = priority
	}
	switch {
	case update.ClearTargetDate:
		goal.TargetDate = nil
	case update.TargetDate != nil:
		goal.TargetDate = update.TargetDate
	}
	if update.Completed != nil {
		goal.Completed = *update.Completed
	}

	goal.UpdatedAt = s.now()
	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// Complete marks the goal as done so it leaves the active list.
func (s *GoalService) Complete(userID, goalID string) (*model.Goal, error) {
	completed := true
	return s.Update(userID, goalID, GoalUpdate{Completed: &completed})
}
