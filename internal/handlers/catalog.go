package handlers

import (
	"net/http"

	"github.com/M1DES1/aigenimgtovid/internal/gateway"
)

// CatalogHandler relays the provider avatar and voice catalogs.
type CatalogHandler struct {
	Catalog Catalog
}

type voicesResponse struct {
	Success bool                   `json:"success"`
	Voices  []gateway.VoiceSummary `json:"voices"`
}

// Avatars implements GET /api/avatars.
func (h CatalogHandler) Avatars(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Catalog == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}

	avatars, err := h.Catalog.Avatars(ctx)
	if err != nil {
		respondGatewayError(ctx, w, err, "failed to fetch avatars")
		return
	}
	respondJSON(ctx, w, http.StatusOK, avatars)
}

// Voices implements GET /api/voices and GET /api/heygen-voices.
func (h CatalogHandler) Voices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.Catalog == nil {
		respondJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "catalog unavailable"})
		return
	}

	voices, err := h.Catalog.Voices(ctx)
	if err != nil {
		respondGatewayError(ctx, w, err, "failed to fetch voices")
		return
	}
	if voices == nil {
		voices = []gateway.VoiceSummary{}
	}
	respondJSON(ctx, w, http.StatusOK, voicesResponse{Success: true, Voices: voices})
}
