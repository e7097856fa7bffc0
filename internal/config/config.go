package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures the runtime configuration for the avatar video gateway and client.
type Config struct {
	AppPort  int
	LogLevel string

	Provider ProviderConfig
	Gateway  GatewayConfig
	Client   ClientConfig
}

// ProviderConfig describes how the gateway reaches the HeyGen API.
type ProviderConfig struct {
	APIKey          string
	BaseURL         string
	CreateTimeout   time.Duration
	StatusTimeout   time.Duration
	CatalogCacheTTL time.Duration
}

// GatewayConfig holds defaults applied while building provider jobs and HTTP limits.
type GatewayConfig struct {
	DefaultAvatarID  string
	BackgroundColor  string
	EagerStatusDelay time.Duration
	AllowedOrigins   []string
	GenerateRate     int
	GenerateWindow   time.Duration
	GenerateBurst    int
	WriteTimeout     time.Duration
}

// ClientConfig controls the submission client and status poller.
type ClientConfig struct {
	GatewayURL     string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	MaxAttempts    int
	ProgressFloor  int
	RequireImage   bool
}

// ErrMissingAPIKey is returned by ValidateGateway when no provider key is configured.
var ErrMissingAPIKey = errors.New("HEYGEN_API_KEY is not set")

// Load reads configuration from environment variables, applying sensible defaults
// for local development. Values from .env and .env.local are loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := Config{
		AppPort:  getInt("PORT", getInt("AVATARGEN_PORT", 3000)),
		LogLevel: getString("AVATARGEN_LOG_LEVEL", "info"),
		Provider: ProviderConfig{
			APIKey:          getString("HEYGEN_API_KEY", ""),
			BaseURL:         getString("HEYGEN_BASE_URL", "https://api.heygen.com"),
			CreateTimeout:   getDuration("AVATARGEN_CREATE_TIMEOUT", 30*time.Second),
			StatusTimeout:   getDuration("AVATARGEN_STATUS_TIMEOUT", 10*time.Second),
			CatalogCacheTTL: getDuration("AVATARGEN_CATALOG_CACHE_TTL", 10*time.Minute),
		},
		Gateway: GatewayConfig{
			DefaultAvatarID:  getString("AVATARGEN_DEFAULT_AVATAR", "Abigail_expressive_2024112501"),
			BackgroundColor:  getString("AVATARGEN_BACKGROUND_COLOR", "#000000"),
			EagerStatusDelay: getDuration("AVATARGEN_EAGER_STATUS_DELAY", 2*time.Second),
			AllowedOrigins:   getList("AVATARGEN_ALLOWED_ORIGINS", []string{"*"}),
			GenerateRate:     getInt("AVATARGEN_GENERATE_RATE", 10),
			GenerateWindow:   getDuration("AVATARGEN_GENERATE_WINDOW", time.Minute),
			GenerateBurst:    getInt("AVATARGEN_GENERATE_BURST", 3),
			WriteTimeout:     getDuration("AVATARGEN_WRITE_TIMEOUT", time.Minute),
		},
		Client: ClientConfig{
			GatewayURL:     getString("AVATARGEN_GATEWAY_URL", "http://localhost:3000"),
			RequestTimeout: getDuration("AVATARGEN_CLIENT_TIMEOUT", time.Minute),
			PollInterval:   getDuration("AVATARGEN_POLL_INTERVAL", 5*time.Second),
			MaxAttempts:    getInt("AVATARGEN_POLL_MAX_ATTEMPTS", 60),
			ProgressFloor:  getInt("AVATARGEN_PROGRESS_FLOOR", 40),
			RequireImage:   getBool("AVATARGEN_REQUIRE_IMAGE", false),
		},
	}

	return cfg, nil
}

// ValidateGateway checks the settings the serve command cannot run without.
func (c Config) ValidateGateway() error {
	if strings.TrimSpace(c.Provider.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
