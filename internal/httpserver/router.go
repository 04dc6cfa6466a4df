package httpserver

import (
	"net/http"

	"paper-dashboard/internal/auth"
	"paper-dashboard/internal/health"
	"paper-dashboard/internal/orders"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterDeps struct {
	OrderHandler  *orders.Handler
	AuthHandler   *auth.Handler
	AuthService   *auth.Service
	HealthHandler *health.Handler
	WSHandler     http.Handler
	RateLimiter   *RateLimiter
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.Middleware)
	}

	r.Get("/health", d.HealthHandler.ServeHTTP)
	r.Get("/metrics", d.HealthHandler.Metrics)

	if d.AuthService.Enabled() {
		r.Get("/login", d.AuthHandler.LoginPage)
		r.Post("/login", d.AuthHandler.Login)
		r.Post("/logout", d.AuthHandler.Logout)
	}

	r.Group(func(r chi.Router) {
		r.Use(WithSession(d.AuthService))
		r.Get("/", d.OrderHandler.TradeForm)
		r.Post("/", d.OrderHandler.SubmitForm)
		r.Get("/history", d.OrderHandler.HistoryPage)
		r.Get("/ws/orders", d.WSHandler.ServeHTTP)
		r.Route("/v1", func(r chi.Router) {
			r.Post("/orders", d.OrderHandler.Place)
			r.Get("/orders", d.OrderHandler.List)
		})
	})
	return r
}
