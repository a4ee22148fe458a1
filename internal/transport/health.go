package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "ERROR",
			Message:   "Database unreachable",
			Timestamp: h.now(),
		})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Message:   "Farm Market API is running",
		Timestamp: h.now(),
	})
}
