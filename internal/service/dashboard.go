package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/model"
	"golang.org/x/sync/errgroup"
)

// maxDashboardConcurrency bounds the per-goal lookups run in parallel.
const maxDashboardConcurrency = 8

// GoalSummary is an active goal with its current plan and progress.
// Plan is nil until a plan has been generated.
type GoalSummary struct {
	Goal     *model.Goal    `json:"goal"`
	Plan     *model.Plan    `json:"plan,omitempty"`
	Progress model.Progress `json:"progress"`
	NextDay  int            `json:"next_day"`
}

type Dashboard struct {
	Profile *model.Profile `json:"profile"`
	Goals   []GoalSummary  `json:"goals"`
}

type DashboardService struct {
	goalService    *GoalService
	planService    *PlanService
	profileService *ProfileService
}

func NewDashboardService(goalService *GoalService, planService *PlanService, profileService *ProfileService) *DashboardService {
	return &DashboardService{
		goalService:    goalService,
		planService:    planService,
		profileService: profileService,
	}
}

// Today loads the user's active goals and, concurrently, each goal's current
// plan and progress.
func (s *DashboardService) Today(ctx context.Context, userID string) (*Dashboard, error) {
	profile, err := s.profileService.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalService.Goals(userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	summaries := make([]GoalSummary, len(goals))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDashboardConcurrency)

	for i, goal := range goals {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary, err := s.summarize(userID, goal)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{Profile: profile, Goals: summaries}, nil
}

func (s *DashboardService) summarize(userID string, goal *model.Goal) (GoalSummary, error) {
	summary := GoalSummary{Goal: goal, NextDay: 1}

	plan, err := s.planService.CurrentPlan(userID, goal.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("failed to load plan for goal %s: %w", goal.ID, err)
	}
	summary.Plan = plan

	contents, err := s.planService.DailyContents(userID, plan.ID)
	if err != nil {
		return summary, fmt.Errorf("failed to load days for plan %s: %w", plan.ID, err)
	}
	summary.Progress = model.ComputeProgress(contents)
	summary.NextDay = nextDay(contents)

	return summary, nil
}

// nextDay is the first day number not generated yet.
func nextDay(contents []*model.DailyContent) int {
	day := 1
	for _, c := range contents {
		if c.DayNumber == day {
			day++
		} else if c.DayNumber > day {
			break
		}
	}
	return day
}
