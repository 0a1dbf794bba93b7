package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/service"
	"github.com/templui/studytrail/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	TargetDate  string `json:"target_date"` // YYYY-MM-DD
	FileID      string `json:"file_id"`
}

// updateGoalRequest fields are optional; an empty target_date clears it.
type updateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	TargetDate  *string `json:"target_date"`
	Completed   *bool   `json:"completed"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	includeCompleted, _ := strconv.ParseBool(r.URL.Query().Get("include_completed"))

	goals, err := h.goalService.Goals(ctxkeys.UserID(r.Context()), includeCompleted)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	target, err := validation.ParseTargetDate(req.TargetDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(ctxkeys.UserID(r.Context()), service.GoalInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		TargetDate:  target,
		FileID:      req.FileID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Show(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.ByID(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	update := service.GoalUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
	}
	if req.TargetDate != nil {
		target, err := validation.ParseTargetDate(*req.TargetDate)
		if err != nil {
			writeError(w, r, err)
			return
		}
		update.TargetDate = target
		update.ClearTargetDate = target == nil
	}

	goal, err := h.goalService.Update(ctxkeys.UserID(r.Context()), r.PathValue("id"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.Complete(ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
