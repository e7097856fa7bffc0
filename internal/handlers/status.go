package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StatusHandler relays job status queries.
type StatusHandler struct {
	Jobs JobGateway
}

type statusResponse struct {
	Success      bool    `json:"success"`
	Status       string  `json:"status"`
	VideoURL     *string `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	CreatedAt    int64   `json:"created_at,omitempty"`
	ErrorMessage *string `json:"error_message"`
}

// Handle implements GET /api/status/{videoId}.
func (h StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Jobs == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "video status unavailable"})
		return
	}

	job, err := h.Jobs.GetStatus(ctx, chi.URLParam(r, "videoId"))
	if err != nil {
		respondGatewayError(ctx, w, err, "failed to check video status")
		return
	}

	respondJSON(ctx, w, http.StatusOK, statusResponse{
		Success:      true,
		Status:       string(job.Status),
		VideoURL:     job.VideoURL,
		ThumbnailURL: job.ThumbnailURL,
		Duration:     job.Duration,
		CreatedAt:    job.CreatedAt,
		ErrorMessage: job.ErrorMessage,
	})
}
