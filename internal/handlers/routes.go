package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Jobs            JobGateway
	Catalog         Catalog
	Prober          Prober
	GenerateLimiter RateLimiter
	NowFunc         func() time.Time
}

// RegisterRoutes wires HTTP handlers into the provided router.
func RegisterRoutes(r chi.Router, deps Dependencies) {
	health := HealthHandler{NowFunc: deps.NowFunc}
	generate := GenerateHandler{Jobs: deps.Jobs, Limiter: deps.GenerateLimiter}
	status := StatusHandler{Jobs: deps.Jobs}
	catalog := CatalogHandler{Catalog: deps.Catalog}
	probe := ProbeHandler{Prober: deps.Prober, NowFunc: deps.NowFunc}

	r.Get("/", health.Index)
	r.Get("/health", health.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Get("/test", probe.Handle)
		r.Get("/avatars", catalog.Avatars)
		r.Get("/voices", catalog.Voices)
		r.Get("/heygen-voices", catalog.Voices)
		r.Post("/generate", generate.Handle)
		r.Get("/status/{videoId}", status.Handle)
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
}

// NotFound answers unknown routes with a JSON error.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "endpoint not found"})
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
