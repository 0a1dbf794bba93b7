package service

import (
	"errors"
	"testing"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/generation"
)

func TestSetupWizardWithUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	owner := env.register(t, "owner@example.com")

	w := env.setup.Start(owner.ID)
	if w.Step() != StepUpload {
		t.Fatalf("initial step: want=%v got=%v", StepUpload, w.Step())
	}

	file, err := w.Upload(ctx, fileHeader(t, "graphs.md", []byte("# Graphs\n")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if w.Step() != StepGoal {
		t.Fatalf("after upload: want=%v got=%v", StepGoal, w.Step())
	}

	if _, err := w.SubmitGoal(ctx, GoalInput{Title: ""}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("SubmitGoal empty: want ErrValidation, got %v", err)
	}
	if w.Step() != StepGoal {
		t.Fatalf("invalid goal moved the wizard to %v", w.Step())
	}

	plan, err := w.SubmitGoal(ctx, GoalInput{Title: "Learn graphs", Priority: "high"})
	if err != nil {
		t.Fatalf("SubmitGoal: %v", err)
	}
	if w.Step() != StepDone || plan.GoalID != w.Goal.ID {
		t.Fatalf("after submit: step=%v plan=%+v", w.Step(), plan)
	}

	linked, _ := env.files.ByID(owner.ID, file.ID)
	if !linked.LinkedTo(w.Goal.ID) {
		t.Fatalf("uploaded file not linked to the new goal")
	}
	if !w.Result().File.LinkedTo(w.Goal.ID) {
		t.Fatalf("wizard result file: want owner goal/%s got %s/%s", w.Goal.ID, w.Result().File.OwnerType, w.Result().File.OwnerID)
	}
	if len(env.gen.lastFiles) != 1 || env.gen.lastFiles[0] != "graphs.md" {
		t.Fatalf("plan prompt files: got %v", env.gen.lastFiles)
	}

	if err := w.SkipUpload(); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("SkipUpload after done: want ErrInvalidStep, got %v", err)
	}
}

func TestSetupWizardRetryAfterGenerationFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	owner := env.register(t, "owner@example.com")

	w := env.setup.Start(owner.ID)
	if _, err := w.SubmitGoal(ctx, GoalInput{Title: "x"}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("SubmitGoal before upload step: want ErrInvalidStep, got %v", err)
	}
	if err := w.SkipUpload(); err != nil {
		t.Fatalf("SkipUpload: %v", err)
	}

	env.gen.planErr = &generation.Error{StatusCode: 503, Message: "busy"}
	if _, err := w.SubmitGoal(ctx, GoalInput{Title: "Learn X"}); !errors.Is(err, apperr.ErrGeneration) {
		t.Fatalf("SubmitGoal: want ErrGeneration, got %v", err)
	}
	if w.Step() != StepGenerating || w.Goal == nil {
		t.Fatalf("after failure: step=%v goal=%v", w.Step(), w.Goal)
	}

	// the goal from the failed attempt is kept
	goals, _ := env.goals.Goals(owner.ID, false)
	if len(goals) != 1 {
		t.Fatalf("Goals: want=%d got=%d", 1, len(goals))
	}

	env.gen.planErr = nil
	if _, err := w.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if w.Step() != StepDone || w.Plan == nil {
		t.Fatalf("after retry: step=%v", w.Step())
	}
	if _, err := w.Retry(ctx); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("Retry when done: want ErrInvalidStep, got %v", err)
	}
}

func TestSetupRun(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")

	res, err := env.setup.Run(t.Context(), owner.ID, nil, GoalInput{Title: "Learn X"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Step != StepDone || res.File != nil || res.Goal == nil || res.Plan == nil {
		t.Fatalf("Run: got %+v", res)
	}

	res, err = env.setup.Run(t.Context(), owner.ID, fileHeader(t, "virus.exe", []byte("MZ")), GoalInput{Title: "Learn Y"})
	if !errors.Is(err, apperr.ErrValidation) || res.Step != StepUpload {
		t.Fatalf("Run with bad file: step=%v err=%v", res.Step, err)
	}
}
