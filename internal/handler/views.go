package handler

import (
	"github.com/templui/studytrail/internal/markdown"
	"github.com/templui/studytrail/internal/model"
)

// planView adds rendered HTML next to the raw markdown.
type planView struct {
	*model.Plan
	HTML string `json:"html"`
}

type dailyContentView struct {
	*model.DailyContent
	HTML string `json:"html"`
}

func newPlanView(md *markdown.Parser, p *model.Plan) planView {
	return planView{Plan: p, HTML: md.RenderString(p.Content)}
}

func newPlanViews(md *markdown.Parser, plans []*model.Plan) []planView {
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, newPlanView(md, p))
	}
	return views
}

func newDailyContentView(md *markdown.Parser, c *model.DailyContent) dailyContentView {
	return dailyContentView{DailyContent: c, HTML: md.RenderString(c.Content)}
}

func newDailyContentViews(md *markdown.Parser, contents []*model.DailyContent) []dailyContentView {
	views := make([]dailyContentView, 0, len(contents))
	for _, c := range contents {
		views = append(views, newDailyContentView(md, c))
	}
	return views
}
