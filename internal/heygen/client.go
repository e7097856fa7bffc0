package heygen

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("heygen-client")

const maxErrorBody = 64 << 10

// Options tunes per-call deadlines of the client.
type Options struct {
	CreateTimeout time.Duration
	StatusTimeout time.Duration
	HTTPClient    *http.Client
}

// Client is a minimal HeyGen API client covering video creation, status and catalogs.
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	createTimeout time.Duration
	statusTimeout time.Duration
}

// NewClient creates a HeyGen client for the given base URL and API key.
func NewClient(baseURL, apiKey string, opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if opts.CreateTimeout <= 0 {
		opts.CreateTimeout = 30 * time.Second
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = 10 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		apiKey:        apiKey,
		httpClient:    opts.HTTPClient,
		createTimeout: opts.CreateTimeout,
		statusTimeout: opts.StatusTimeout,
	}
}

// ListVoices fetches the provider voice catalog.
func (c *Client) ListVoices(ctx context.Context) ([]Voice, error) {
	ctx, span := tracer.Start(ctx, "heygen_list_voices")
	defer span.End()

	var out envelope[voiceList]
	if err := c.do(ctx, span, http.MethodGet, "/v2/voices", nil, 0, &out); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("heygen.voice_count", len(out.Data.Voices)))
	return out.Data.Voices, nil
}

// ListAvatars fetches the provider avatar catalog.
func (c *Client) ListAvatars(ctx context.Context) ([]Avatar, error) {
	ctx, span := tracer.Start(ctx, "heygen_list_avatars")
	defer span.End()

	var out envelope[avatarList]
	if err := c.do(ctx, span, http.MethodGet, "/v2/avatars", nil, 0, &out); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("heygen.avatar_count", len(out.Data.Avatars)))
	return out.Data.Avatars, nil
}

// CreateVideo submits a generation job and returns the provider video id.
func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "heygen_create_video")
	defer span.End()

	var out envelope[createResult]
	if err := c.do(ctx, span, http.MethodPost, "/v2/video/generate", req, c.createTimeout, &out); err != nil {
		return "", err
	}
	if out.Data.VideoID == "" {
		span.RecordError(ErrMissingVideoID)
		span.SetStatus(codes.Error, ErrMissingVideoID.Error())
		return "", ErrMissingVideoID
	}

	span.SetAttributes(attribute.String("heygen.video_id", out.Data.VideoID))
	return out.Data.VideoID, nil
}

// VideoStatus queries the status of a previously created video. It never mutates provider state.
func (c *Client) VideoStatus(ctx context.Context, videoID string) (VideoStatus, error) {
	ctx, span := tracer.Start(ctx, "heygen_video_status")
	defer span.End()
	span.SetAttributes(attribute.String("heygen.video_id", videoID))

	path := "/v1/video_status.get?video_id=" + url.QueryEscape(videoID)
	var out envelope[VideoStatus]
	if err := c.do(ctx, span, http.MethodGet, path, nil, c.statusTimeout, &out); err != nil {
		return VideoStatus{}, err
	}

	span.SetAttributes(attribute.String("heygen.status", out.Data.Status))
	return out.Data, nil
}

// CurrentUser returns the account payload, used as a connectivity probe.
func (c *Client) CurrentUser(ctx context.Context) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "heygen_current_user")
	defer span.End()

	var out envelope[json.RawMessage]
	if err := c.do(ctx, span, http.MethodGet, "/v1/user", nil, 0, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, span trace.Span, method, path string, payload any, timeout time.Duration, out any) error {
	if c == nil || c.apiKey == "" {
		return ErrNotConfigured
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return fmt.Errorf("heygen %s %s: %w", method, strings.SplitN(path, "?", 2)[0], err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(resp.StatusCode, respBody)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
