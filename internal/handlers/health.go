package handlers

import (
	"net/http"
	"time"
)

const (
	serviceName    = "Avatar Video Generator API"
	serviceVersion = "2.2.0"
)

// HealthHandler responds with service health information.
type HealthHandler struct {
	NowFunc func() time.Time
}

// Handle implements GET /health.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": now(h.NowFunc).Format(time.RFC3339),
		"service":   serviceName,
	})
}

// Index implements GET / and lists the available endpoints.
func (h HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message": serviceName,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"test":     "/api/test",
			"avatars":  "/api/avatars",
			"voices":   "/api/heygen-voices",
			"generate": "POST /api/generate",
			"status":   "GET /api/status/:videoId",
			"health":   "/health",
		},
	})
}
