package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/M1DES1/aigenimgtovid/internal/gateway"
	"github.com/M1DES1/aigenimgtovid/internal/models"
)

func TestStatusHandlerCompleted(t *testing.T) {
	jobs := &jobGatewayStub{job: models.Job{
		JobID:        "abc123",
		Status:       models.JobStatusCompleted,
		VideoURL:     models.StringPtr("https://x/abc123.mp4"),
		ThumbnailURL: models.StringPtr("https://x/abc123.jpg"),
		Duration:     7,
	}}
	router := newTestRouter(Dependencies{Jobs: jobs})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status/abc123", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(jobs.statusIDs) != 1 || jobs.statusIDs[0] != "abc123" {
		t.Fatalf("unexpected status ids %v", jobs.statusIDs)
	}

	var resp statusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Status != "completed" || models.Deref(resp.VideoURL) != "https://x/abc123.mp4" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.ErrorMessage != nil {
		t.Fatalf("expected null error message got %v", *resp.ErrorMessage)
	}
}

func TestStatusHandlerUpstreamError(t *testing.T) {
	jobs := &jobGatewayStub{statusErr: &gateway.UpstreamError{Message: "failed to check video status", Code: "unknown_error", Details: "timeout"}}
	router := newTestRouter(Dependencies{Jobs: jobs})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status/abc123", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error != "failed to check video status" || resp.Details != "timeout" {
		t.Fatalf("unexpected body %+v", resp)
	}
}
