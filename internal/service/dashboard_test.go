package service

import (
	"testing"
)

func TestDashboardToday(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	owner := env.register(t, "owner@example.com")

	withPlan := env.goal(t, owner.ID, "Learn X")
	noPlan := env.goal(t, owner.ID, "Learn Y")

	plan, _ := env.plans.GeneratePlan(ctx, owner.ID, withPlan.ID)
	days, _ := env.plans.GenerateDailyContent(ctx, owner.ID, plan.ID, 1)
	_, _ = env.plans.GenerateDailyContent(ctx, owner.ID, plan.ID, 2)
	if _, err := env.plans.ToggleDayCompletion(owner.ID, days[0].ID, true); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	dash, err := env.dashboard.Today(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if dash.Profile.Tokens != 10 {
		t.Fatalf("Profile.Tokens: want=%d got=%d", 10, dash.Profile.Tokens)
	}
	if len(dash.Goals) != 2 {
		t.Fatalf("Goals: want=%d got=%d", 2, len(dash.Goals))
	}

	// newest goal first
	if dash.Goals[0].Goal.ID != noPlan.ID || dash.Goals[0].Plan != nil || dash.Goals[0].NextDay != 1 {
		t.Fatalf("goal without plan: got %+v", dash.Goals[0])
	}
	s := dash.Goals[1]
	if s.Plan == nil || s.Plan.ID != plan.ID {
		t.Fatalf("goal with plan: missing current plan")
	}
	if s.Progress.Total != 2 || s.Progress.Percentage != 50 || s.NextDay != 3 {
		t.Fatalf("goal with plan: got progress=%+v next=%d", s.Progress, s.NextDay)
	}
}
