package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/templui/studytrail/internal/markdown"
	"github.com/templui/studytrail/internal/model"
)

//go:embed prompts/*.md
var promptFS embed.FS

// Prompt is a system persona plus a user message template.
type Prompt struct {
	System string
	tmpl   *template.Template
}

var (
	planPrompt = mustLoadPrompt("prompts/plan.md")
	dayPrompt  = mustLoadPrompt("prompts/day.md")
)

func mustLoadPrompt(name string) *Prompt {
	p, err := loadPrompt(name)
	if err != nil {
		panic(err)
	}
	return p
}

func loadPrompt(name string) (*Prompt, error) {
	source, err := promptFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt %s: %w", name, err)
	}

	meta := markdown.NewParser().ExtractFrontmatter(source)
	system, _ := meta["system"].(string)
	if system == "" {
		return nil, fmt.Errorf("prompt %s has no system persona", name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(markdown.Body(source)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt %s: %w", name, err)
	}

	return &Prompt{System: system, tmpl: tmpl}, nil
}

func (p *Prompt) render(data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

type planPromptData struct {
	Title       string
	Description string
	TargetDate  string
	Priority    string
	Materials   string
}

// PlanMessage renders the user message for a plan request.
func PlanMessage(goal *model.Goal, fileNames []string) (string, error) {
	data := planPromptData{
		Title:       goal.Title,
		Description: goal.Description,
		Priority:    goal.Priority,
		Materials:   strings.Join(fileNames, ", "),
	}
	if goal.TargetDate != nil {
		data.TargetDate = goal.TargetDate.Format(time.DateOnly)
	}
	return planPrompt.render(data)
}

type dayPromptData struct {
	Day         int
	GoalTitle   string
	PlanContent string
}

// DayMessage renders the user message for one day of a plan.
func DayMessage(plan *model.Plan, goal *model.Goal, day int) (string, error) {
	return dayPrompt.render(dayPromptData{
		Day:         day,
		GoalTitle:   goal.Title,
		PlanContent: plan.Content,
	})
}
