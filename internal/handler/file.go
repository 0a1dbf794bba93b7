package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/service"
	"github.com/templui/studytrail/internal/validation"
)

var (
	// maxUploadBody leaves room for multipart framing around the largest file.
	maxUploadBody = validation.StudyMaterialConstraints.MaxSize + 1<<20

	errCompletedRequired = validation.Errorf("completed is required")
	errFileRequired      = validation.Errorf("file is required")
	errGoalIDRequired    = validation.Errorf("goal_id is required")
)

// formFile returns the "file" part of a parsed multipart form, or nil.
// The header is opened later by the consumer, which closes it.
func formFile(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// Upload accepts a multipart form with a "file" part and an optional goal_id.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, validation.Errorf("file too large"))
			return
		}
		writeError(w, r, validation.Errorf("invalid multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	header := formFile(r)
	if header == nil {
		writeError(w, r, errFileRequired)
		return
	}

	file, err := h.fileService.Upload(r.Context(), ctxkeys.UserID(r.Context()), r.FormValue("goal_id"), header)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, file)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.AllUserFiles(ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) URL(w http.ResponseWriter, r *http.Request) {
	url, err := h.fileService.URL(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

type linkFileRequest struct {
	GoalID string `json:"goal_id"`
}

// Link attaches an uploaded file to one of the user's goals.
func (h *FileHandler) Link(w http.ResponseWriter, r *http.Request) {
	var req linkFileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.GoalID == "" {
		writeError(w, r, errGoalIDRequired)
		return
	}

	file, err := h.fileService.LinkToGoal(ctxkeys.UserID(r.Context()), r.PathValue("id"), req.GoalID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.fileService.Delete(r.Context(), ctxkeys.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
