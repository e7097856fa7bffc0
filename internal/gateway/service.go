package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/heygen"
	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

const silenceDuration = 10.0

// Settings holds the defaults applied to every created job.
type Settings struct {
	DefaultAvatarID  string
	BackgroundColor  string
	EagerStatusDelay time.Duration
}

// Submission is the outcome of a successful CreateJob call.
type Submission struct {
	VideoID      string
	Status       models.JobStatus
	VideoURL     *string
	ThumbnailURL *string
	Duration     float64
	VoiceUsed    string
}

// Service relays generation requests to the provider. It keeps no state between calls.
type Service struct {
	provider Provider
	settings Settings
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewService constructs a gateway service on top of the provider.
func NewService(provider Provider, settings Settings) *Service {
	if strings.TrimSpace(settings.DefaultAvatarID) == "" {
		settings.DefaultAvatarID = "Abigail_expressive_2024112501"
	}
	if strings.TrimSpace(settings.BackgroundColor) == "" {
		settings.BackgroundColor = "#000000"
	}
	return &Service{provider: provider, settings: settings, sleep: sleepContext}
}

// CreateJob validates the request, resolves avatar, voice and dimension, and submits
// exactly one creation request to the provider.
func (s *Service) CreateJob(ctx context.Context, req models.GenerationRequest) (Submission, error) {
	ctx, span := logging.StartSpan(ctx, "gateway.create_job")
	defer span.End()

	sub, err := s.createJob(ctx, req)
	span.Fail(err)
	return sub, err
}

func (s *Service) createJob(ctx context.Context, req models.GenerationRequest) (Submission, error) {
	logger := logging.FromContext(ctx)

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Submission{}, &ValidationError{Field: "prompt", Message: "prompt is required"}
	}

	avatarID := strings.TrimSpace(req.AvatarID)
	if avatarID == "" {
		avatarID = s.settings.DefaultAvatarID
	}

	voice, voiceName, err := s.voiceBlock(ctx, req, prompt)
	if err != nil {
		return Submission{}, err
	}

	dimension := DimensionFor(req.Dimension)
	payload := heygen.CreateVideoRequest{
		VideoInputs: []heygen.VideoInput{{
			Character:  heygen.Character{Type: "avatar", AvatarID: avatarID},
			Voice:      voice,
			Background: heygen.Background{Type: "color", Value: s.settings.BackgroundColor},
		}},
		Dimension: dimension,
		Test:      false,
		Version:   "v2",
	}

	logger.Info("submitting video job",
		"avatar", avatarID,
		"voice", voice.VoiceID,
		"voiceType", voice.Type,
		"promptLength", len(prompt),
		"width", dimension.Width,
		"height", dimension.Height,
	)

	videoID, err := s.provider.CreateVideo(ctx, payload)
	if err != nil {
		logger.Error("video job submission failed", "error", err)
		return Submission{}, upstreamError("failed to generate video", err)
	}

	sub := Submission{VideoID: videoID, Status: models.JobStatusPending, VoiceUsed: voiceName}
	s.eagerStatus(ctx, &sub)
	return sub, nil
}

// eagerStatus performs one best-effort status check shortly after submission.
func (s *Service) eagerStatus(ctx context.Context, sub *Submission) {
	if s.settings.EagerStatusDelay <= 0 {
		return
	}
	logger := logging.FromContext(ctx)

	if err := s.sleep(ctx, s.settings.EagerStatusDelay); err != nil {
		return
	}
	status, err := s.provider.VideoStatus(ctx, sub.VideoID)
	if err != nil {
		logger.Warn("eager status check failed", "videoId", sub.VideoID, "error", err)
		return
	}
	sub.Status = models.ParseJobStatus(status.Status)
	sub.VideoURL = models.StringPtr(status.VideoURL)
	sub.ThumbnailURL = models.StringPtr(status.ThumbnailURL)
	sub.Duration = status.Duration
}

func (s *Service) voiceBlock(ctx context.Context, req models.GenerationRequest, prompt string) (heygen.VoiceInput, string, error) {
	if !req.WantsVoice() {
		return heygen.VoiceInput{Type: "silence", Duration: silenceDuration}, "", nil
	}

	if voiceID := strings.TrimSpace(req.VoiceID); voiceID != "" {
		return heygen.VoiceInput{Type: "text", InputText: prompt, VoiceID: voiceID}, voiceID, nil
	}

	voices, err := s.provider.ListVoices(ctx)
	if err != nil {
		return heygen.VoiceInput{}, "", upstreamError("failed to fetch voices", err)
	}
	voice, ok := SelectVoice(voices, PreferenceForStyle(req.Style))
	if !ok {
		return heygen.VoiceInput{}, "", upstreamError(ErrNoVoices.Error(), ErrNoVoices)
	}

	name := voice.Name
	if name == "" {
		name = voice.VoiceID
	}
	return heygen.VoiceInput{Type: "text", InputText: prompt, VoiceID: voice.VoiceID}, name, nil
}

// GetStatus relays a single status query and normalizes it into a Job snapshot.
func (s *Service) GetStatus(ctx context.Context, videoID string) (models.Job, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return models.Job{}, &ValidationError{Field: "videoId", Message: "video id is required"}
	}

	status, err := s.provider.VideoStatus(ctx, videoID)
	if err != nil {
		return models.Job{}, upstreamError("failed to check video status", err)
	}

	return models.Job{
		JobID:        videoID,
		Status:       models.ParseJobStatus(status.Status),
		VideoURL:     models.StringPtr(status.VideoURL),
		ThumbnailURL: models.StringPtr(status.ThumbnailURL),
		ErrorMessage: models.StringPtr(status.FailureMessage()),
		Duration:     status.Duration,
		CreatedAt:    status.CreatedAt,
	}, nil
}

// Avatars returns the provider avatar catalog.
func (s *Service) Avatars(ctx context.Context) ([]heygen.Avatar, error) {
	avatars, err := s.provider.ListAvatars(ctx)
	if err != nil {
		return nil, upstreamError("failed to fetch avatars", err)
	}
	return avatars, nil
}

// Voices returns the provider voice catalog in client-facing form.
func (s *Service) Voices(ctx context.Context) ([]VoiceSummary, error) {
	voices, err := s.provider.ListVoices(ctx)
	if err != nil {
		return nil, upstreamError("failed to fetch voices", err)
	}
	return summarizeVoices(voices), nil
}

// Probe checks that the provider is reachable with the configured credentials.
func (s *Service) Probe(ctx context.Context) (json.RawMessage, error) {
	user, err := s.provider.CurrentUser(ctx)
	if err != nil {
		return nil, upstreamError("failed to reach provider", err)
	}
	return user, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
