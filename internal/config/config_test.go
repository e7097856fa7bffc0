package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HEYGEN_API_KEY", "")
	t.Setenv("AVATARGEN_POLL_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != 3000 {
		t.Fatalf("expected default port 3000 got %d", cfg.AppPort)
	}
	if cfg.Client.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval got %v", cfg.Client.PollInterval)
	}
	if cfg.Client.MaxAttempts != 60 {
		t.Fatalf("expected 60 attempts got %d", cfg.Client.MaxAttempts)
	}
	if cfg.Gateway.DefaultAvatarID != "Abigail_expressive_2024112501" {
		t.Fatalf("unexpected default avatar %q", cfg.Gateway.DefaultAvatarID)
	}
	if err := cfg.ValidateGateway(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected missing api key got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("HEYGEN_API_KEY", "key")
	t.Setenv("AVATARGEN_POLL_INTERVAL", "250ms")
	t.Setenv("AVATARGEN_POLL_MAX_ATTEMPTS", "120")
	t.Setenv("AVATARGEN_REQUIRE_IMAGE", "true")
	t.Setenv("AVATARGEN_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != 8081 {
		t.Fatalf("expected port override got %d", cfg.AppPort)
	}
	if cfg.Client.PollInterval != 250*time.Millisecond {
		t.Fatalf("unexpected poll interval %v", cfg.Client.PollInterval)
	}
	if cfg.Client.MaxAttempts != 120 {
		t.Fatalf("unexpected max attempts %d", cfg.Client.MaxAttempts)
	}
	if !cfg.Client.RequireImage {
		t.Fatal("expected image requirement enabled")
	}
	if len(cfg.Gateway.AllowedOrigins) != 2 || cfg.Gateway.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.Gateway.AllowedOrigins)
	}
	if err := cfg.ValidateGateway(); err != nil {
		t.Fatalf("expected valid gateway config got %v", err)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("AVATARGEN_POLL_INTERVAL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppPort != 3000 {
		t.Fatalf("expected fallback port got %d", cfg.AppPort)
	}
	if cfg.Client.PollInterval != 5*time.Second {
		t.Fatalf("expected fallback interval got %v", cfg.Client.PollInterval)
	}
}
