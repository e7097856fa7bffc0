package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/logging"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

const maxBodySize = 1 << 20

// JobHandle identifies a job accepted by the gateway.
type JobHandle struct {
	JobID        string
	Status       models.JobStatus
	VideoURL     *string
	ThumbnailURL *string
	VoiceUsed    string
}

// Client talks to the gateway HTTP surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a client for the gateway at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Client{baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"), httpClient: httpClient}
}

type submitPayload struct {
	Prompt       string `json:"prompt"`
	AvatarID     string `json:"avatarId,omitempty"`
	VoiceID      string `json:"voiceId,omitempty"`
	Dimension    string `json:"dimension,omitempty"`
	Style        string `json:"style,omitempty"`
	IncludeVoice *bool  `json:"includeVoice,omitempty"`
}

type submitResult struct {
	VideoID      string  `json:"video_id"`
	Status       string  `json:"status"`
	VideoURL     *string `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	VoiceUsed    string  `json:"voice_used"`
}

type statusResult struct {
	Status       string  `json:"status"`
	VideoURL     *string `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	CreatedAt    int64   `json:"created_at"`
	ErrorMessage *string `json:"error_message"`
}

// Submit posts one generation request. A blank prompt fails without touching the network.
func (c *Client) Submit(ctx context.Context, req models.GenerationRequest) (JobHandle, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return JobHandle{}, &ValidationError{Field: "prompt", Message: "prompt is required"}
	}

	ctx, span := logging.StartSpan(ctx, "client.submit")
	defer span.End()

	var out submitResult
	err := c.do(ctx, http.MethodPost, "/api/generate", submitPayload{
		Prompt:       prompt,
		AvatarID:     strings.TrimSpace(req.AvatarID),
		VoiceID:      strings.TrimSpace(req.VoiceID),
		Dimension:    string(req.Dimension),
		Style:        req.Style,
		IncludeVoice: req.IncludeVoice,
	}, &out)
	if err != nil {
		span.Fail(err)
		return JobHandle{}, err
	}
	if strings.TrimSpace(out.VideoID) == "" {
		err := &GatewayError{StatusCode: http.StatusOK, Message: "gateway response did not include a video id"}
		span.Fail(err)
		return JobHandle{}, err
	}

	logging.FromContext(ctx).Info("generation submitted", "videoId", out.VideoID, "status", out.Status)
	return JobHandle{
		JobID:        out.VideoID,
		Status:       models.ParseJobStatus(out.Status),
		VideoURL:     nonEmpty(out.VideoURL),
		ThumbnailURL: nonEmpty(out.ThumbnailURL),
		VoiceUsed:    out.VoiceUsed,
	}, nil
}

// Status reads the current job snapshot. It is safe to call repeatedly.
func (c *Client) Status(ctx context.Context, jobID string) (models.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return models.Job{}, &ValidationError{Field: "jobId", Message: "job id is required"}
	}

	var out statusResult
	if err := c.do(ctx, http.MethodGet, "/api/status/"+url.PathEscape(jobID), nil, &out); err != nil {
		return models.Job{}, err
	}

	return models.Job{
		JobID:        jobID,
		Status:       models.ParseJobStatus(out.Status),
		VideoURL:     nonEmpty(out.VideoURL),
		ThumbnailURL: nonEmpty(out.ThumbnailURL),
		ErrorMessage: nonEmpty(out.ErrorMessage),
		Duration:     out.Duration,
		CreatedAt:    out.CreatedAt,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &ConnectivityError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &ConnectivityError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newGatewayError(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &GatewayError{StatusCode: resp.StatusCode, Message: "invalid gateway response", Code: "invalid_response"}
	}
	return nil
}

func nonEmpty(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}
