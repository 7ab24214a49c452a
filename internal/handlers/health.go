package handlers

import (
	"net/http"

	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

// NewHealthHandler returns an HTTP handler reporting service liveness.
// @Summary Health check
// @Description Reports that the service is up
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "Service status"
// @Router /health [get]
func NewHealthHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Message: "currency converter agent is running",
			Version: version,
		})
	}
}
