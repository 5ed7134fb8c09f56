// Package api wires the HTTP surface: router, middleware stack, and JSON
// handlers delegating to the service layer.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/middleware"
)

// NewRouter creates the router with all routes configured. Everything under
// /api except auth requires a valid Bearer token.
func NewRouter(h *Handler, jwtManager *auth.JWTManager, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Route("/groups", func(r chi.Router) {
				r.Get("/", h.ListGroups)
				r.Post("/", h.CreateGroup)
				r.Get("/{groupID}", h.GetGroup)
				r.Post("/{groupID}/members", h.AddMembers)
				r.Get("/{groupID}/expenses", h.ListGroupExpenses)
				r.Get("/{groupID}/payments", h.ListGroupPayments)
				r.Get("/{groupID}/balances", h.GetBalances)
				r.Get("/{groupID}/settlement", h.GetSettlementPlan)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", h.CreateExpense)
				r.Get("/{expenseID}", h.GetExpense)
				r.Post("/{expenseID}/amend", h.AmendExpense)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.RecordPayment)
				r.Post("/{paymentID}/complete", h.CompletePayment)
				r.Post("/{paymentID}/cancel", h.CancelPayment)
			})
		})
	})

	return r
}
