package handler

import (
	"net/http"

	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/service"
)

type ProfileHandler struct {
	userService    *service.UserService
	profileService *service.ProfileService
}

func NewProfileHandler(userService *service.UserService, profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		userService:    userService,
		profileService: profileService,
	}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	account, err := h.userService.Account(ctxkeys.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

func (h *ProfileHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.profileService.UpdateName(ctxkeys.UserID(r.Context()), req.DisplayName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
