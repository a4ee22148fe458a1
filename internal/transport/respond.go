package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeError maps err onto the error taxonomy. Server faults are logged and
// answered with a fixed message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, model.ErrValidation):
		writeErrorCode(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, model.ErrConflict):
		writeErrorCode(w, http.StatusBadRequest, "conflict", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request timed out", zap.String("path", r.URL.Path), zap.Error(err))
		writeErrorCode(w, http.StatusGatewayTimeout, "timeout", "request timed out, outcome unknown")
	case errors.Is(err, model.ErrUpstream):
		h.logger.Error("upstream failure", zap.String("path", r.URL.Path), zap.Error(err))
		writeErrorCode(w, http.StatusBadGateway, "upstream_failure", "upstream service unavailable")
	default:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Validationf("request body is required")
		}
		return model.Validationf("malformed request body: %v", err)
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.Validationf("invalid %s %q", name, raw)
	}
	return id, nil
}

// limitQuery parses an optional positive limit. Absent means zero.
func limitQuery(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, model.Validationf("limit must be a positive integer")
	}
	return n, nil
}
