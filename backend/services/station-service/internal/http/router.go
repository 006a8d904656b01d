package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"evstation/backend/services/station-service/internal/http/handlers"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	StationHandlers  *handlers.StationHandlers
	SessionsHandlers *handlers.SessionsHandlers
	HealthHandler    http.HandlerFunc
	LogStream        http.HandlerFunc
	AllowedOrigins   []string
}

// NewRouter wires HTTP routes. Cross-origin requests are allowed from AllowedOrigins.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if deps.HealthHandler != nil {
		r.Get("/health", deps.HealthHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/station-data", deps.StationHandlers.StationData)
		r.Get("/revenue", deps.StationHandlers.Revenue)
		r.Get("/logs", deps.StationHandlers.Logs)
		if deps.LogStream != nil {
			r.Get("/logs/stream", deps.LogStream)
		}

		r.Get("/sessions", deps.SessionsHandlers.List)
		r.Post("/sessions/priority", deps.SessionsHandlers.SetPriority)
		r.Post("/sessions/toggle-ai", deps.SessionsHandlers.ToggleAI)
		r.Post("/sessions/pause", deps.SessionsHandlers.Pause)
	})

	return r
}
