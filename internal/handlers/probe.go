package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// ProbeHandler checks that the gateway can reach the provider.
type ProbeHandler struct {
	Prober  Prober
	NowFunc func() time.Time
}

type probeResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	User      json.RawMessage `json:"user,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// Handle implements GET /api/test.
func (h ProbeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Prober == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "provider probe unavailable"})
		return
	}

	user, err := h.Prober.Probe(ctx)
	if err != nil {
		respondGatewayError(ctx, w, err, "provider connection failed")
		return
	}

	respondJSON(ctx, w, http.StatusOK, probeResponse{
		Success:   true,
		Message:   "Connection to the provider API works",
		User:      user,
		Timestamp: now(h.NowFunc).Format(time.RFC3339),
	})
}

func now(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return time.Now().UTC()
}
