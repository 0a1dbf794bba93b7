package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/generation"
	"github.com/templui/studytrail/internal/model"
	"github.com/templui/studytrail/internal/repository"
	"github.com/templui/studytrail/internal/validation"
)

// ContentGenerator produces plan and daily lesson text.
type ContentGenerator interface {
	GeneratePlan(ctx context.Context, goal *model.Goal, fileNames []string) (generation.GeneratedText, error)
	GenerateDailyContent(ctx context.Context, plan *model.Plan, goal *model.Goal, day int) (generation.GeneratedText, error)
}

type PlanService struct {
	goalRepo     repository.GoalRepository
	planRepo     repository.PlanRepository
	contentRepo  repository.DailyContentRepository
	profileRepo  repository.ProfileRepository
	userRepo     repository.UserRepository
	fileService  *FileService
	emailService *EmailService
	generator    ContentGenerator
	rewardTokens int
	now          func() time.Time
}

func NewPlanService(
	goalRepo repository.GoalRepository,
	planRepo repository.PlanRepository,
	contentRepo repository.DailyContentRepository,
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	fileService *FileService,
	emailService *EmailService,
	generator ContentGenerator,
	rewardTokens int,
) *PlanService {
	return &PlanService{
		goalRepo:     goalRepo,
		planRepo:     planRepo,
		contentRepo:  contentRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		fileService:  fileService,
		emailService: emailService,
		generator:    generator,
		rewardTokens: rewardTokens,
		now:          time.Now,
	}
}

// GeneratePlan drafts a new plan for the goal. Every call adds a plan; the
// newest one becomes current and older ones are kept.
func (s *PlanService) GeneratePlan(ctx context.Context, userID, goalID string) (*model.Plan, error) {
	goal, err := s.goalRepo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	fileNames, err := s.fileService.RelatedFileNames(userID, goalID)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.GeneratePlan(ctx, goal, fileNames)
	if err != nil {
		return nil, err
	}

	plan := &model.Plan{
		ID:        uuid.New().String(),
		GoalID:    goal.ID,
		UserID:    userID,
		Content:   string(text),
		CreatedAt: s.now(),
	}
	err = s.planRepo.Create(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	s.notifyPlanReady(ctx, userID, goal)

	return plan, nil
}

func (s *PlanService) notifyPlanReady(ctx context.Context, userID string, goal *model.Goal) {
	if s.emailService == nil {
		return
	}

	user, err := s.userRepo.ByID(userID)
	if err != nil {
		slog.Warn("plan ready email skipped", "error", err, "user_id", userID)
		return
	}
	name := user.Email
	if profile, err := s.profileRepo.ByUserID(userID); err == nil && profile.DisplayName != "" {
		name = profile.DisplayName
	}

	err = s.emailService.SendPlanReadyEmail(ctx, user.Email, name, goal.Title, goal.ID)
	if err != nil {
		slog.Warn("failed to send plan ready email", "error", err, "goal_id", goal.ID)
	}
}

// CurrentPlan returns the most recently generated plan for the goal.
func (s *PlanService) CurrentPlan(userID, goalID string) (*model.Plan, error) {
	// Verify ownership
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}
	return s.planRepo.Latest(goalID)
}

// Plans returns every plan of the goal, newest first.
func (s *PlanService) Plans(userID, goalID string) ([]*model.Plan, error) {
	if _, err := s.goalRepo.ByID(userID, goalID); err != nil {
		return nil, err
	}
	return s.planRepo.Plans(goalID)
}

func (s *PlanService) PlanByID(userID, planID string) (*model.Plan, error) {
	return s.planRepo.ByID(userID, planID)
}

// GenerateDailyContent creates the lesson for one day of a plan and returns
// all of the plan's lessons ordered by day. A day can only be generated once.
func (s *PlanService) GenerateDailyContent(ctx context.Context, userID, planID string, day int) ([]*model.DailyContent, error) {
	err := validation.ValidateDayNumber(day)
	if err != nil {
		return nil, err
	}

	plan, err := s.planRepo.ByID(userID, planID)
	if err != nil {
		return nil, err
	}

	_, err = s.contentRepo.ByPlanAndDay(planID, day)
	switch {
	case err == nil:
		return nil, repository.DuplicateDayError(planID, day)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing day: %w", err)
	}

	goal, err := s.goalRepo.ByID(userID, plan.GoalID)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.GenerateDailyContent(ctx, plan, goal, day)
	if err != nil {
		return nil, err
	}

	content := &model.DailyContent{
		ID:        uuid.New().String(),
		PlanID:    plan.ID,
		UserID:    userID,
		DayNumber: day,
		Content:   string(text),
		CreatedAt: s.now(),
	}
	err = s.contentRepo.Create(content)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateDay) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create daily content: %w", err)
	}

	return s.contentRepo.Contents(planID)
}

// DailyContents lists the plan's lessons ordered by day.
func (s *PlanService) DailyContents(userID, planID string) ([]*model.DailyContent, error) {
	if _, err := s.planRepo.ByID(userID, planID); err != nil {
		return nil, err
	}
	return s.contentRepo.Contents(planID)
}

// ToggleDayCompletion sets the completed flag of a lesson. Setting the value
// it already has changes nothing. The first completion of a lesson rewards
// the user's profile.
func (s *PlanService) ToggleDayCompletion(userID, contentID string, completed bool) (*model.DailyContent, error) {
	content, err := s.contentRepo.ByID(userID, contentID)
	if err != nil {
		return nil, err
	}

	if content.Completed == completed {
		return content, nil
	}

	now := s.now()
	content.Completed = completed
	if completed {
		content.CompletedAt = &now
	} else {
		content.CompletedAt = nil
	}

	reward := completed && !content.Rewarded
	if reward {
		content.Rewarded = true
	}

	err = s.contentRepo.Update(content)
	if err != nil {
		return nil, fmt.Errorf("failed to update daily content: %w", err)
	}

	if reward {
		s.rewardStudyDay(userID, now)
	}

	return content, nil
}

func (s *PlanService) rewardStudyDay(userID string, at time.Time) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		slog.Warn("study reward skipped", "error", err, "user_id", userID)
		return
	}

	profile.RecordStudyDay(at, s.rewardTokens)

	err = s.profileRepo.Update(profile)
	if err != nil {
		slog.Error("failed to save study reward", "error", err, "user_id", userID)
		return
	}
	slog.Debug("study reward granted", "user_id", userID, "tokens", profile.Tokens, "streak", profile.Streak)
}

// Progress summarizes completion of the plan's lessons.
func (s *PlanService) Progress(userID, planID string) (model.Progress, error) {
	contents, err := s.DailyContents(userID, planID)
	if err != nil {
		return model.Progress{}, err
	}
	return model.ComputeProgress(contents), nil
}
