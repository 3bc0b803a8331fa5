package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kalendo/kalendo/internal/middleware/metrics"
	"github.com/kalendo/kalendo/internal/setup"
)

// New wires all routes. Everything under /v1 except login and register sits
// behind the bearer-token guard.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.CorsOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.Use(metrics.Middleware)

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Post("/logout", h.Logout)
			r.Patch("/user/password", h.UpdatePassword)

			r.Get("/calendars", h.GetCalendars)
			r.Post("/calendars", h.CreateCalendar)
			r.Get("/calendars/{calendar}", h.GetCalendar)
			r.Patch("/calendars/{calendar}", h.UpdateCalendar)
			r.Delete("/calendars/{calendar}", h.DeleteCalendar)

			r.Get("/calendars/{calendar}/events", h.GetEvents)
			r.Post("/calendars/{calendar}/events", h.CreateEvent)
			r.Get("/events/{event}", h.GetEvent)
			r.Patch("/events/{event}", h.UpdateEvent)
			r.Delete("/events/{event}", h.DeleteEvent)
		})
	})

	return r
}
