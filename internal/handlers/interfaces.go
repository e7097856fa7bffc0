package handlers

import (
	"context"
	"encoding/json"

	"github.com/M1DES1/aigenimgtovid/internal/gateway"
	"github.com/M1DES1/aigenimgtovid/internal/heygen"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

// JobGateway captures the job operations required by the generate and status handlers.
type JobGateway interface {
	CreateJob(ctx context.Context, req models.GenerationRequest) (gateway.Submission, error)
	GetStatus(ctx context.Context, videoID string) (models.Job, error)
}

// Catalog exposes the provider catalogs relayed to the browser.
type Catalog interface {
	Avatars(ctx context.Context) ([]heygen.Avatar, error)
	Voices(ctx context.Context) ([]gateway.VoiceSummary, error)
}

// Prober checks upstream connectivity.
type Prober interface {
	Probe(ctx context.Context) (json.RawMessage, error)
}
