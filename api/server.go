/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     One slog line per request (see middleware.go)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the presentation front end

ROUTE GROUPS:
  /api/settlements      Compute a settlement
  /api/reasons          Reason catalog of the active rule table
  /api/categories       Category rule-sets of the active rule table
  /api/tax-tables       INSS/IRRF schedules of the active rule table
  /api/rule-tables/*    Stored rule-table versions (read only)
  /api/scenarios/*      Canned demo cases
  /healthz              Liveness and database ping

SECURITY NOTE:
  No authentication middleware. The service holds no personal data; every
  request carries its own case and nothing is persisted.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
// allowedOrigins defaults to every origin when empty.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/settlements", h.ComputeSettlement)

		r.Get("/reasons", h.ListReasons)
		r.Get("/categories", h.ListCategories)
		r.Get("/tax-tables", h.GetTaxTables)

		r.Route("/rule-tables", func(r chi.Router) {
			r.Get("/", h.ListRuleTables)
			r.Get("/active", h.GetActiveRuleTable)
			r.Get("/{version}", h.GetRuleTable)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	return r
}
