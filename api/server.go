/*
server.go - HTTP router and middleware configuration

PURPOSE:

	Configures the HTTP router (chi), middleware stack, and route definitions.
	This is the wiring layer that connects URLs to handlers.

ROUTER: chi

	Chi was chosen for:
	- Lightweight and fast
	- Context-based
	- Middleware support
	- RESTful route patterns

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:

	/api/adjudications/*  Claim evaluation and history
	/api/rules            Rule catalog
	/api/scenarios/*      Canned demo scenarios
	/api/admin/*          Admin operations (dev only)
	/                     Plain index page listing endpoints

SECURITY NOTE:

	No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/adjudications", func(r chi.Router) {
			r.Post("/", h.Adjudicate)
			r.Get("/", h.ListAdjudications)
			r.Get("/{id}", h.GetAdjudication)
			r.Get("/{id}/report", h.GetAdjudicationReport)
		})

		r.Get("/rules", h.ListRules)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reset", h.ResetHistory)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Claims Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Claims Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/adjudications - Evaluate a policy+claim pair</li>
<li><a href="/api/adjudications">/api/adjudications</a> - List past adjudications</li>
<li><a href="/api/rules">/api/rules</a> - Rule catalog</li>
</ul>
</body>
</html>`))
	})

	return r
}
