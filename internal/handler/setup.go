package handler

import (
	"net/http"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/service"
	"github.com/templui/studytrail/internal/validation"
)

type SetupHandler struct {
	setupService *service.SetupService
}

func NewSetupHandler(setupService *service.SetupService) *SetupHandler {
	return &SetupHandler{
		setupService: setupService,
	}
}

// Run takes a multipart form with an optional "file" plus the goal fields
// and runs the whole setup wizard. On failure the response still carries
// what was created before the failing step.
func (h *SetupHandler) Run(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, r, validation.Errorf("invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	header := formFile(r)

	target, err := validation.ParseTargetDate(r.FormValue("target_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.setupService.Run(r.Context(), ctxkeys.UserID(r.Context()), header, service.GoalInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Priority:    r.FormValue("priority"),
		TargetDate:  target,
	})
	if err != nil {
		if result.Goal == nil || !apperr.Public(err) {
			writeError(w, r, err)
			return
		}
		writeJSON(w, apperr.Status(err), map[string]any{
			"error":  errorBody{Code: apperr.Code(err), Message: err.Error()},
			"result": result,
		})
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
