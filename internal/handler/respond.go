package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/studytrail/internal/apperr"
	"github.com/templui/studytrail/internal/ctxkeys"
	"github.com/templui/studytrail/internal/validation"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps err to a status and code. Messages of internal errors are
// logged but not sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	message := err.Error()

	if !apperr.Public(err) {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"user_id", ctxkeys.UserID(r.Context()),
		)
		message = "internal server error"
	} else if status == http.StatusBadGateway {
		slog.Warn("upstream generation failed", "error", err, "path", r.URL.Path)
	}

	writeJSON(w, status, map[string]any{"error": errorBody{Code: apperr.Code(err), Message: message}})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return validation.Errorf("request body is required")
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return validation.Errorf("request body too large")
		}
		return validation.Errorf("invalid JSON body: %v", err)
	}
}
