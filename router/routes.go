package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mstgnz/checkout/handler"
	"github.com/mstgnz/checkout/infra/metrics"
	"github.com/mstgnz/checkout/infra/middle"
	"github.com/mstgnz/checkout/infra/response"
	v1 "github.com/mstgnz/checkout/router/v1"
)

// Options holds everything the HTTP surface is built from
type Options struct {
	APIKey      string
	RateLimiter *middle.RateLimiter
	Health      *handler.HealthHandler
	V1          v1.Handlers
}

// New builds the application router
func New(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middle.RequestIDMiddleware())
	r.Use(middleware.RealIP)
	r.Use(middle.PanicRecoveryMiddleware())
	r.Use(middle.RequestLoggingMiddleware())
	r.Use(metrics.HTTPMiddleware)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middle.SecurityHeadersMiddleware())
	if opts.RateLimiter != nil {
		r.Use(middle.RateLimitMiddleware(opts.RateLimiter))
	}
	r.Use(middle.RequestValidationMiddleware())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.Health != nil {
		r.Get("/health", opts.Health.CheckHealth)
	}
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// provider callbacks carry no API key
	r.Route("/callback", func(r chi.Router) {
		r.Get("/{project}", opts.V1.Checkout.HandleCallback)
		r.Post("/{project}", opts.V1.Checkout.HandleCallback)
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middle.AuthMiddleware(opts.APIKey))
		v1.Routes(r, opts.V1)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
	})

	return r
}
