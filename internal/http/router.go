package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/handlers"
	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/metrics"
	rl "github.com/rqxKnicklicht/visynet-productivity-tool/internal/http/rate_limiter"
)

// NewRouter assembles the product routes with the ambient middleware
// chain. The limiter may be nil (tests run without one).
func NewRouter(log *slog.Logger, limiter *rl.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(log))
	r.Use(Recovery)
	r.Use(metrics.Middleware)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	r.MethodNotAllowed(handlers.MethodNotAllowedHandler)

	r.Get("/health", handlers.HealthHandler)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/products", func(r chi.Router) {
		r.MethodNotAllowed(handlers.MethodNotAllowedHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Get("/", handlers.ListProductsHandler)
		r.Options("/", handlers.PreflightHandler)

		r.Route("/{product-id}", func(r chi.Router) {
			r.MethodNotAllowed(handlers.MethodNotAllowedHandler)
			r.Get("/", handlers.GetProductHandler)
			r.Patch("/", handlers.PatchProductHandler)
			r.Put("/", handlers.PutProductHandler)
			r.Delete("/", handlers.DeleteProductHandler)
			r.Options("/", handlers.PreflightHandler)
		})
	})

	return r
}
