package generation

import (
	"context"
	"log/slog"
	"time"

	"github.com/templui/studytrail/internal/model"
)

// GeneratedText is model output stored exactly as received. It is never
// parsed.
type GeneratedText string

// Completer produces one chat completion.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Gateway turns goals and plans into prompts and returns the generated text.
type Gateway struct {
	completer Completer
}

func NewGateway(completer Completer) *Gateway {
	return &Gateway{completer: completer}
}

// GeneratePlan asks for a study plan for goal, listing fileNames as the
// available materials.
func (g *Gateway) GeneratePlan(ctx context.Context, goal *model.Goal, fileNames []string) (GeneratedText, error) {
	msg, err := PlanMessage(goal, fileNames)
	if err != nil {
		return "", &Error{Message: "failed to render plan prompt", Err: err}
	}

	start := time.Now()
	text, err := g.completer.Complete(ctx, planPrompt.System, msg)
	if err != nil {
		slog.Error("plan generation failed", "error", err, "goal_id", goal.ID)
		return "", err
	}

	slog.Info("plan generated", "goal_id", goal.ID, "files", len(fileNames), "duration", time.Since(start))
	return GeneratedText(text), nil
}

// GenerateDailyContent asks for the lesson for one day of plan.
func (g *Gateway) GenerateDailyContent(ctx context.Context, plan *model.Plan, goal *model.Goal, day int) (GeneratedText, error) {
	msg, err := DayMessage(plan, goal, day)
	if err != nil {
		return "", &Error{Message: "failed to render day prompt", Err: err}
	}

	start := time.Now()
	text, err := g.completer.Complete(ctx, dayPrompt.System, msg)
	if err != nil {
		slog.Error("daily content generation failed", "error", err, "plan_id", plan.ID, "day", day)
		return "", err
	}

	slog.Info("daily content generated", "plan_id", plan.ID, "day", day, "duration", time.Since(start))
	return GeneratedText(text), nil
}
