package handler

import (
	"net/http"

	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	dash, err := h.dashboardService.Today(r.Context(), ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
