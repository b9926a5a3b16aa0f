package handlers

import (
	"meal-delivery-service/internal/api/dto"
	"net/http"
	"time"
)

var startedAt = time.Now()

// Health is a liveness check reporting process uptime.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Uptime: time.Since(startedAt).Round(time.Second).String(),
	})
}
