// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	commonerrors "github.com/ChinmayNakwa/Financial-AI-System/internal/common/errors"
	"github.com/ChinmayNakwa/Financial-AI-System/internal/common/logger"
)

const maxQuestionBytes = 4 << 10

type handlers struct {
	pipeline Pipeline
	logger   logger.Logger
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxQuestionBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	question := strings.TrimSpace(req.Query)
	if question == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}

	answer, err := h.pipeline.Answer(r.Context(), question)
	if err != nil {
		status, code := statusForError(err)
		h.logger.WithError(err).Error("query failed", map[string]interface{}{"status": status})
		writeError(w, status, "failed to answer the question", code)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{Answer: answer})
}

// statusForError maps pipeline failures to HTTP statuses. Fatal pipeline
// errors surface as 502 because the upstream oracle, not the caller, is at
// fault; cancellations map to 504.
func statusForError(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout, ""
	}
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return http.StatusBadGateway, string(stdErr.Code)
	}
	return http.StatusInternalServerError, ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
