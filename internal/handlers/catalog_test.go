package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/M1DES1/aigenimgtovid/internal/gateway"
	"github.com/M1DES1/aigenimgtovid/internal/heygen"
)

type catalogStub struct {
	avatars []heygen.Avatar
	voices  []gateway.VoiceSummary
	err     error
}

func (c catalogStub) Avatars(context.Context) ([]heygen.Avatar, error) {
	return c.avatars, c.err
}

func (c catalogStub) Voices(context.Context) ([]gateway.VoiceSummary, error) {
	return c.voices, c.err
}

type proberStub struct {
	user json.RawMessage
	err  error
}

func (p proberStub) Probe(context.Context) (json.RawMessage, error) {
	return p.user, p.err
}

func TestCatalogHandlerVoicesAliases(t *testing.T) {
	catalog := catalogStub{voices: []gateway.VoiceSummary{{ID: "v1", Name: "Jenny", Gender: "female", Language: "en-US"}}}
	router := newTestRouter(Dependencies{Catalog: catalog})

	for _, path := range []string{"/api/voices", "/api/heygen-voices"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, rec.Code)
		}
		var resp voicesResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !resp.Success || len(resp.Voices) != 1 || resp.Voices[0].ID != "v1" {
			t.Fatalf("%s: unexpected response %+v", path, resp)
		}
	}
}

func TestCatalogHandlerAvatars(t *testing.T) {
	router := newTestRouter(Dependencies{Catalog: catalogStub{avatars: []heygen.Avatar{{AvatarID: "a1", AvatarName: "Abigail"}}}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/avatars", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var avatars []heygen.Avatar
	if err := json.NewDecoder(rec.Body).Decode(&avatars); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(avatars) != 1 || avatars[0].AvatarID != "a1" {
		t.Fatalf("unexpected avatars %+v", avatars)
	}
}

func TestCatalogHandlerErrors(t *testing.T) {
	router := newTestRouter(Dependencies{Catalog: catalogStub{err: &gateway.UpstreamError{Message: "failed to fetch voices"}}})

	for _, path := range []string{"/api/avatars", "/api/voices"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500 got %d", path, rec.Code)
		}
	}
}

func TestProbeHandler(t *testing.T) {
	fixed := time.Date(2024, time.March, 3, 8, 0, 0, 0, time.UTC)
	router := newTestRouter(Dependencies{
		Prober:  proberStub{user: json.RawMessage(`{"username":"demo"}`)},
		NowFunc: func() time.Time { return fixed },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var resp probeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || string(resp.User) != `{"username":"demo"}` || resp.Timestamp != "2024-03-03T08:00:00Z" {
		t.Fatalf("unexpected response %+v", resp)
	}

	router = newTestRouter(Dependencies{Prober: proberStub{err: errors.New("unauthorized")}})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/test", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
