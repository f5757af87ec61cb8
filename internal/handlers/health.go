package handlers

import (
	"net/http"
	"time"

	"github.com/nahidhasan98/changelog-viewer/internal/models"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := &models.HealthResponse{
		Status:    "ok",
		Sessions:  h.sessions.Len(),
		Timestamp: time.Now().Unix(),
	}

	if h.quota != nil {
		if quota, ok := h.quota.LastQuota(); ok {
			response.RateLimit = &quota
		}
	}

	h.writeJSON(w, response, http.StatusOK)
}
