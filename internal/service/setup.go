package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/model"
)

var ErrInvalidStep = fmt.Errorf("%w: invalid step: must complete previous steps first", apperr.ErrConflict)

// SetupStep is a state of the first-run wizard.
type SetupStep int

const (
	StepUpload SetupStep = iota
	StepGoal
	StepGenerating
	StepDone
)

func (s SetupStep) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepGoal:
		return "goal"
	case StepGenerating:
		return "generating"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("SetupStep(%d)", int(s))
}

func (s SetupStep) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SetupWizard walks a user through upload -> goal -> plan generation.
// Each step keeps what earlier steps produced; a failed generation leaves
// the wizard in StepGenerating so it can be retried.
type SetupWizard struct {
	userID string
	step   SetupStep

	File *model.File
	Goal *model.Goal
	Plan *model.Plan

	fileService *FileService
	goalService *GoalService
	planService *PlanService
}

type SetupService struct {
	fileService *FileService
	goalService *GoalService
	planService *PlanService
}

func NewSetupService(fileService *FileService, goalService *GoalService, planService *PlanService) *SetupService {
	return &SetupService{
		fileService: fileService,
		goalService: goalService,
		planService: planService,
	}
}

func (s *SetupService) Start(userID string) *SetupWizard {
	return &SetupWizard{
		userID:      userID,
		step:        StepUpload,
		fileService: s.fileService,
		goalService: s.goalService,
		planService: s.planService,
	}
}

// SetupResult is the outcome of a one-shot Run.
type SetupResult struct {
	Step SetupStep   `json:"step"`
	File *model.File `json:"file,omitempty"`
	Goal *model.Goal `json:"goal,omitempty"`
	Plan *model.Plan `json:"plan,omitempty"`
}

// Run drives the whole wizard in one call. header may be nil to skip the
// upload. The result reports how far the wizard got even when err != nil.
func (s *SetupService) Run(ctx context.Context, userID string, header *multipart.FileHeader, input GoalInput) (*SetupResult, error) {
	w := s.Start(userID)

	var err error
	if header != nil {
		_, err = w.Upload(ctx, header)
	} else {
		err = w.SkipUpload()
	}
	if err == nil {
		_, err = w.SubmitGoal(ctx, input)
	}

	return w.Result(), err
}

func (w *SetupWizard) Step() SetupStep { return w.step }

func (w *SetupWizard) Result() *SetupResult {
	return &SetupResult{Step: w.step, File: w.File, Goal: w.Goal, Plan: w.Plan}
}

// Upload stores the study material and advances to StepGoal.
func (w *SetupWizard) Upload(ctx context.Context, header *multipart.FileHeader) (*model.File, error) {
	if w.step != StepUpload {
		return nil, ErrInvalidStep
	}

	file, err := w.fileService.Upload(ctx, w.userID, "", header)
	if err != nil {
		return nil, err
	}

	w.File = file
	w.step = StepGoal
	return file, nil
}

// SkipUpload advances to StepGoal without a file.
func (w *SetupWizard) SkipUpload() error {
	if w.step != StepUpload {
		return ErrInvalidStep
	}
	w.step = StepGoal
	return nil
}

// SubmitGoal creates the goal, linking the uploaded file, then generates the
// first plan. An invalid goal keeps the wizard in StepGoal.
func (w *SetupWizard) SubmitGoal(ctx context.Context, input GoalInput) (*model.Plan, error) {
	if w.step != StepGoal {
		return nil, ErrInvalidStep
	}

	if w.File != nil && input.FileID == "" {
		input.FileID = w.File.ID
	}

	goal, err := w.goalService.Create(w.userID, input)
	if err != nil {
		return nil, err
	}

	w.Goal = goal
	w.step = StepGenerating

	// Create linked the file; report the stored owner.
	if w.File != nil {
		if file, err := w.fileService.ByID(w.userID, w.File.ID); err == nil {
			w.File = file
		}
	}

	return w.generate(ctx)
}

// Retry repeats plan generation after a failure.
func (w *SetupWizard) Retry(ctx context.Context) (*model.Plan, error) {
	if w.step != StepGenerating {
		return nil, ErrInvalidStep
	}
	return w.generate(ctx)
}

func (w *SetupWizard) generate(ctx context.Context) (*model.Plan, error) {
	plan, err := w.planService.GeneratePlan(ctx, w.userID, w.Goal.ID)
	if err != nil {
		return nil, err
	}

	w.Plan = plan
	w.step = StepDone
	return plan, nil
}
