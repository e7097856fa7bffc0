package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/M1DES1/aigenimgtovid/internal/client"
	"github.com/M1DES1/aigenimgtovid/internal/config"
	"github.com/M1DES1/aigenimgtovid/internal/gateway"
	"github.com/M1DES1/aigenimgtovid/internal/generation"
	"github.com/M1DES1/aigenimgtovid/internal/handlers"
	"github.com/M1DES1/aigenimgtovid/internal/heygen"
	"github.com/M1DES1/aigenimgtovid/internal/middleware"
	"github.com/M1DES1/aigenimgtovid/internal/poller"
)

// buildGateway wires the provider client, the catalog cache and the relay service.
func buildGateway(cfg config.Config) *gateway.Service {
	provider := heygen.NewClient(cfg.Provider.BaseURL, cfg.Provider.APIKey, heygen.Options{
		CreateTimeout: cfg.Provider.CreateTimeout,
		StatusTimeout: cfg.Provider.StatusTimeout,
	})
	catalog := gateway.NewCachingCatalog(provider, cfg.Provider.CatalogCacheTTL)

	return gateway.NewService(catalog, gateway.Settings{
		DefaultAvatarID:  cfg.Gateway.DefaultAvatarID,
		BackgroundColor:  cfg.Gateway.BackgroundColor,
		EagerStatusDelay: cfg.Gateway.EagerStatusDelay,
	})
}

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(cfg config.Config) handlers.Dependencies {
	svc := buildGateway(cfg)

	return handlers.Dependencies{
		Jobs:    svc,
		Catalog: svc,
		Prober:  svc,
		GenerateLimiter: middleware.NewKeyedLimiter(middleware.LimitConfig{
			Requests: cfg.Gateway.GenerateRate,
			Window:   cfg.Gateway.GenerateWindow,
			Burst:    cfg.Gateway.GenerateBurst,
		}),
	}
}

// buildRouter assembles the middleware chain and the routes.
func buildRouter(cfg config.Config, logger *slog.Logger, deps handlers.Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Gateway.AllowedOrigins))

	handlers.RegisterRoutes(r, deps)
	return r
}

// buildController wires the submission client and the poller behind a generation controller.
func buildController(cfg config.Config, logger *slog.Logger, onProgress func(generation.Progress)) *generation.Controller {
	httpClient := &http.Client{Timeout: cfg.Client.RequestTimeout}
	gw := client.New(cfg.Client.GatewayURL, httpClient)
	jobPoller := poller.New(gw, poller.Options{
		Interval:      cfg.Client.PollInterval,
		MaxAttempts:   cfg.Client.MaxAttempts,
		ProgressFloor: cfg.Client.ProgressFloor,
		Logger:        logger,
	})

	return generation.NewController(gw, jobPoller, generation.Options{
		RequireImage: cfg.Client.RequireImage,
		OnProgress:   onProgress,
	})
}
