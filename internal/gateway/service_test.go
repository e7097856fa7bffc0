package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/heygen"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

type providerStub struct {
	voices     []heygen.Voice
	voicesErr  error
	avatars    []heygen.Avatar
	avatarsErr error
	videoID    string
	createErr  error
	status     heygen.VideoStatus
	statusErr  error
	user       json.RawMessage
	userErr    error

	created      []heygen.CreateVideoRequest
	voiceCalls   int
	avatarCalls  int
	statusCalls  int
	statusForIDs []string
}

func (p *providerStub) ListVoices(context.Context) ([]heygen.Voice, error) {
	p.voiceCalls++
	return p.voices, p.voicesErr
}

func (p *providerStub) ListAvatars(context.Context) ([]heygen.Avatar, error) {
	p.avatarCalls++
	return p.avatars, p.avatarsErr
}

func (p *providerStub) CreateVideo(_ context.Context, req heygen.CreateVideoRequest) (string, error) {
	p.created = append(p.created, req)
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.videoID, nil
}

func (p *providerStub) VideoStatus(_ context.Context, id string) (heygen.VideoStatus, error) {
	p.statusCalls++
	p.statusForIDs = append(p.statusForIDs, id)
	return p.status, p.statusErr
}

func (p *providerStub) CurrentUser(context.Context) (json.RawMessage, error) {
	return p.user, p.userErr
}

func noSleep(context.Context, time.Duration) error { return nil }

func TestCreateJobRejectsEmptyPrompt(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t"} {
		provider := &providerStub{videoID: "abc123"}
		svc := NewService(provider, Settings{})

		_, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: prompt})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error for %q got %v", prompt, err)
		}
		if len(provider.created) != 0 || provider.voiceCalls != 0 {
			t.Fatalf("expected no provider calls for %q", prompt)
		}
	}
}

func TestCreateJobDefaults(t *testing.T) {
	provider := &providerStub{
		videoID: "abc123",
		voices: []heygen.Voice{
			{VoiceID: "pl-1", Gender: "female", Locale: "pl-PL"},
			{VoiceID: "en-m", Gender: "male", Locale: "en-US"},
			{VoiceID: "en-f", Name: "Jenny", Gender: "Female", Locale: "en-US"},
		},
	}
	svc := NewService(provider, Settings{})

	sub, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "  Hello  "})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if sub.VideoID != "abc123" || sub.Status != models.JobStatusPending {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.VoiceUsed != "Jenny" {
		t.Fatalf("expected Jenny voice got %q", sub.VoiceUsed)
	}
	if len(provider.created) != 1 {
		t.Fatalf("expected exactly one create call got %d", len(provider.created))
	}

	req := provider.created[0]
	input := req.VideoInputs[0]
	if input.Character.AvatarID != "Abigail_expressive_2024112501" {
		t.Fatalf("unexpected default avatar %q", input.Character.AvatarID)
	}
	if input.Voice.Type != "text" || input.Voice.VoiceID != "en-f" || input.Voice.InputText != "Hello" {
		t.Fatalf("unexpected voice block %+v", input.Voice)
	}
	if input.Background.Value != "#000000" {
		t.Fatalf("unexpected background %+v", input.Background)
	}
	if req.Dimension != (heygen.Dimension{Width: 1080, Height: 1920}) {
		t.Fatalf("expected portrait dimension got %+v", req.Dimension)
	}
	if provider.statusCalls != 0 {
		t.Fatalf("expected no eager status without delay got %d", provider.statusCalls)
	}
}

func TestCreateJobExplicitVoiceSkipsCatalog(t *testing.T) {
	provider := &providerStub{videoID: "abc123"}
	svc := NewService(provider, Settings{DefaultAvatarID: "fallback"})

	_, err := svc.CreateJob(context.Background(), models.GenerationRequest{
		Prompt:    "Hi",
		AvatarID:  "custom-avatar",
		VoiceID:   "voice-9",
		Dimension: models.DimensionLandscape,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if provider.voiceCalls != 0 {
		t.Fatalf("expected no catalog lookup got %d", provider.voiceCalls)
	}
	req := provider.created[0]
	if req.VideoInputs[0].Character.AvatarID != "custom-avatar" || req.VideoInputs[0].Voice.VoiceID != "voice-9" {
		t.Fatalf("unexpected payload %+v", req.VideoInputs[0])
	}
	if req.Dimension != (heygen.Dimension{Width: 1920, Height: 1080}) {
		t.Fatalf("expected landscape got %+v", req.Dimension)
	}
}

func TestCreateJobSilentVoice(t *testing.T) {
	provider := &providerStub{videoID: "abc123"}
	svc := NewService(provider, Settings{})
	off := false

	if _, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi", IncludeVoice: &off}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	voice := provider.created[0].VideoInputs[0].Voice
	if voice.Type != "silence" || voice.VoiceID != "" || voice.Duration <= 0 {
		t.Fatalf("expected silence block got %+v", voice)
	}
}

func TestCreateJobFallsBackToFirstVoice(t *testing.T) {
	provider := &providerStub{
		videoID: "abc123",
		voices:  []heygen.Voice{{VoiceID: "de-1", Gender: "male", Locale: "de-DE"}, {VoiceID: "fr-1", Gender: "male", Locale: "fr-FR"}},
	}
	svc := NewService(provider, Settings{})

	sub, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hallo"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if got := provider.created[0].VideoInputs[0].Voice.VoiceID; got != "de-1" {
		t.Fatalf("expected first voice fallback got %s", got)
	}
	if sub.VoiceUsed != "de-1" {
		t.Fatalf("expected voice id as name got %q", sub.VoiceUsed)
	}
}

func TestCreateJobEmptyVoiceCatalog(t *testing.T) {
	provider := &providerStub{videoID: "abc123"}
	svc := NewService(provider, Settings{})

	_, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) || !errors.Is(err, ErrNoVoices) {
		t.Fatalf("expected upstream no voices error got %v", err)
	}
	if len(provider.created) != 0 {
		t.Fatal("expected no create call without voices")
	}
}

func TestCreateJobUpstreamFailureCarriesPayload(t *testing.T) {
	apiErr := &heygen.APIError{StatusCode: 400, Code: "invalid_parameter", Message: "bad", Body: json.RawMessage(`{"error":{"code":"invalid_parameter"}}`)}
	provider := &providerStub{voices: []heygen.Voice{{VoiceID: "v"}}, createErr: apiErr}
	svc := NewService(provider, Settings{})

	_, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected upstream error got %v", err)
	}
	if upErr.Code != "invalid_parameter" {
		t.Fatalf("unexpected code %q", upErr.Code)
	}
	if raw, ok := upErr.Details.(json.RawMessage); !ok || len(raw) == 0 {
		t.Fatalf("expected provider payload as details got %#v", upErr.Details)
	}
}

func TestCreateJobTransportFailureUsesMessage(t *testing.T) {
	provider := &providerStub{voices: []heygen.Voice{{VoiceID: "v"}}, createErr: errors.New("dial tcp: refused")}
	svc := NewService(provider, Settings{})

	_, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi"})
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected upstream error got %v", err)
	}
	if upErr.Details != "dial tcp: refused" || upErr.Code != "unknown_error" {
		t.Fatalf("unexpected error details %+v", upErr)
	}
}

func TestCreateJobEagerStatus(t *testing.T) {
	provider := &providerStub{
		videoID: "abc123",
		voices:  []heygen.Voice{{VoiceID: "v"}},
		status:  heygen.VideoStatus{Status: "processing", ThumbnailURL: "https://x/t.jpg"},
	}
	svc := NewService(provider, Settings{EagerStatusDelay: 2 * time.Second})
	var slept time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) error {
		slept = d
		return nil
	}

	sub, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if slept != 2*time.Second {
		t.Fatalf("expected 2s eager delay got %v", slept)
	}
	if provider.statusCalls != 1 || provider.statusForIDs[0] != "abc123" {
		t.Fatalf("expected one eager status call got %v", provider.statusForIDs)
	}
	if sub.Status != models.JobStatusProcessing || models.Deref(sub.ThumbnailURL) != "https://x/t.jpg" {
		t.Fatalf("unexpected submission %+v", sub)
	}
}

func TestCreateJobEagerStatusFailureIsTolerated(t *testing.T) {
	provider := &providerStub{
		videoID:   "abc123",
		voices:    []heygen.Voice{{VoiceID: "v"}},
		statusErr: errors.New("timeout"),
	}
	svc := NewService(provider, Settings{EagerStatusDelay: time.Second})
	svc.sleep = noSleep

	sub, err := svc.CreateJob(context.Background(), models.GenerationRequest{Prompt: "Hi"})
	if err != nil {
		t.Fatalf("expected eager failure to be tolerated got %v", err)
	}
	if sub.Status != models.JobStatusPending || sub.VideoID != "abc123" {
		t.Fatalf("unexpected submission %+v", sub)
	}
}

func TestGetStatusNormalizes(t *testing.T) {
	provider := &providerStub{status: heygen.VideoStatus{
		Status:       "completed",
		VideoURL:     "https://x/abc123.mp4",
		ThumbnailURL: "https://x/abc123.jpg",
		Duration:     12.5,
	}}
	svc := NewService(provider, Settings{})

	job, err := svc.GetStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if job.JobID != "abc123" || job.Status != models.JobStatusCompleted {
		t.Fatalf("unexpected job %+v", job)
	}
	if models.Deref(job.VideoURL) != "https://x/abc123.mp4" || job.ErrorMessage != nil {
		t.Fatalf("unexpected job urls %+v", job)
	}

	// Repeated queries are pure passthroughs.
	if _, err := svc.GetStatus(context.Background(), "abc123"); err != nil {
		t.Fatalf("get status: %v", err)
	}
	if provider.statusCalls != 2 {
		t.Fatalf("expected two passthrough calls got %d", provider.statusCalls)
	}
}

func TestGetStatusFailedAndErrors(t *testing.T) {
	provider := &providerStub{status: heygen.VideoStatus{Status: "failed", ErrorMessage: "avatar not found"}}
	svc := NewService(provider, Settings{})

	job, err := svc.GetStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	if job.Status != models.JobStatusFailed || models.Deref(job.ErrorMessage) != "avatar not found" || job.VideoURL != nil {
		t.Fatalf("unexpected failed job %+v", job)
	}

	if _, err := svc.GetStatus(context.Background(), " "); err == nil {
		t.Fatal("expected validation error for empty id")
	}

	provider.statusErr = errors.New("boom")
	_, err = svc.GetStatus(context.Background(), "abc123")
	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected upstream error got %v", err)
	}
}

func TestCatalogPassthroughs(t *testing.T) {
	provider := &providerStub{
		voices:  []heygen.Voice{{VoiceID: "v1", Gender: "female", Locale: "en-US"}},
		avatars: []heygen.Avatar{{AvatarID: "a1"}},
		user:    json.RawMessage(`{"username":"demo"}`),
	}
	svc := NewService(provider, Settings{})

	voices, err := svc.Voices(context.Background())
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	if len(voices) != 1 || voices[0].Name != "Voice (en-US)" || voices[0].Language != "en-US" {
		t.Fatalf("unexpected voices %+v", voices)
	}

	avatars, err := svc.Avatars(context.Background())
	if err != nil || len(avatars) != 1 {
		t.Fatalf("unexpected avatars %+v err %v", avatars, err)
	}

	user, err := svc.Probe(context.Background())
	if err != nil || string(user) != `{"username":"demo"}` {
		t.Fatalf("unexpected probe result %s err %v", user, err)
	}

	provider.userErr = errors.New("unauthorized")
	if _, err := svc.Probe(context.Background()); err == nil {
		t.Fatal("expected probe failure")
	}
}
