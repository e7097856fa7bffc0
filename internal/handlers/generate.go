package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// GenerateHandler accepts generation requests and forwards them to the provider.
type GenerateHandler struct {
	Jobs    JobGateway
	Limiter RateLimiter
}

type generateRequest struct {
	Prompt       string `json:"prompt"`
	AvatarID     string `json:"avatarId"`
	VoiceID      string `json:"voiceId"`
	Dimension    string `json:"dimension"`
	Style        string `json:"style"`
	IncludeVoice *bool  `json:"includeVoice"`
}

type generateResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	VideoID      string  `json:"video_id"`
	Status       string  `json:"status"`
	VideoURL     *string `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	VoiceUsed    string  `json:"voice_used,omitempty"`
}

// Handle implements POST /api/generate.
func (h GenerateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Jobs == nil {
		logger.Error("job gateway unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "video generation unavailable"})
		return
	}

	if !allowRequest(h.Limiter, r, "generate") {
		respondJSON(ctx, w, http.StatusTooManyRequests, errorResponse{Error: "too many generation requests, try again later"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid generate payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sub, err := h.Jobs.CreateJob(ctx, models.GenerationRequest{
		Prompt:       req.Prompt,
		AvatarID:     req.AvatarID,
		VoiceID:      req.VoiceID,
		Dimension:    models.ParseDimension(req.Dimension),
		Style:        req.Style,
		IncludeVoice: req.IncludeVoice,
	})
	if err != nil {
		respondGatewayError(ctx, w, err, "failed to generate video")
		return
	}

	respondJSON(ctx, w, http.StatusOK, generateResponse{
		Success:      true,
		Message:      "Video generation started.",
		VideoID:      sub.VideoID,
		Status:       string(sub.Status),
		VideoURL:     sub.VideoURL,
		ThumbnailURL: sub.ThumbnailURL,
		Duration:     sub.Duration,
		VoiceUsed:    sub.VoiceUsed,
	})
}
