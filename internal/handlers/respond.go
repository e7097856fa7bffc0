package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/M1DES1/aigenimgtovid/internal/gateway"
	"github.com/M1DES1/aigenimgtovid/internal/logging"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondGatewayError maps gateway error types onto HTTP statuses and the JSON error shape.
func respondGatewayError(ctx context.Context, w http.ResponseWriter, err error, fallback string) {
	var vErr *gateway.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: vErr.Message})
		return
	}

	var upErr *gateway.UpstreamError
	if errors.As(err, &upErr) {
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{
			Error:   upErr.Message,
			Details: upErr.Details,
			Code:    upErr.Code,
		})
		return
	}

	respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: fallback, Details: err.Error(), Code: "unknown_error"})
}
