package handler

import (
	"net/http"

	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/markdown"
	"github.com/templui/studytrail/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
	md          *markdown.Parser
}

func NewPlanHandler(planService *service.PlanService, md *markdown.Parser) *PlanHandler {
	return &PlanHandler{
		planService: planService,
		md:          md,
	}
}

// Generate drafts a new plan for the goal in the path.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planService.GeneratePlan(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPlanView(h.md, plan))
}

func (h *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planService.CurrentPlan(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanView(h.md, plan))
}

func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.planService.Plans(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanViews(h.md, plans))
}

func (h *PlanHandler) Show(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planService.PlanByID(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlanView(h.md, plan))
}

func (h *PlanHandler) Days(w http.ResponseWriter, r *http.Request) {
	contents, err := h.planService.DailyContents(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDailyContentViews(h.md, contents))
}

type generateDayRequest struct {
	DayNumber int `json:"day_number"`
}

func (h *PlanHandler) GenerateDay(w http.ResponseWriter, r *http.Request) {
	var req generateDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	contents, err := h.planService.GenerateDailyContent(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"), req.DayNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newDailyContentViews(h.md, contents))
}

type toggleDayRequest struct {
	Completed *bool `json:"completed"`
}

func (h *PlanHandler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	var req toggleDayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Completed == nil {
		writeError(w, r, errCompletedRequired)
		return
	}

	content, err := h.planService.ToggleDayCompletion(ctxkeys.UserID(r.Context()), r.PathValue("id"), *req.Completed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newDailyContentView(h.md, content))
}

func (h *PlanHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.planService.Progress(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
