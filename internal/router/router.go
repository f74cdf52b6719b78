package router

import (
	"net/http"

	"voucherhub/internal/handler"
	"voucherhub/internal/metrics"
	"voucherhub/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Health   *handler.HealthHandler
	Customer *handler.CustomerHandler
	Voucher  *handler.VoucherHandler
	Order    *handler.OrderHandler
}

// Options configures New.
type Options struct {
	APIKey   string
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware order: RequestID -> Recovery -> Logging -> Metrics -> CORS -> APIKeyAuth
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(middleware.APIKeyAuth(opts.APIKey, logger))

	r.Get("/health", h.Health.ServeHTTP)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", h.Customer.Create)
			r.Get("/", h.Customer.List)
			r.Get("/blacklist", h.Customer.Blacklist)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Customer.GetByID)
				r.Put("/", h.Customer.Update)
				r.Delete("/", h.Customer.Delete)
				r.Get("/vouchers", h.Customer.ListVouchers)
				r.Delete("/vouchers", h.Customer.DeleteVouchers)
				r.Get("/orders", h.Customer.ListOrders)
			})
		})

		r.Route("/vouchers", func(r chi.Router) {
			r.Post("/", h.Voucher.Create)
			r.Get("/", h.Voucher.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Voucher.GetByID)
				r.Put("/", h.Voucher.Update)
				r.Delete("/", h.Voucher.Delete)
				r.Put("/customer", h.Voucher.Assign)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.Order.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Order.GetByID)
				r.Patch("/status", h.Order.UpdateStatus)
			})
		})
	})

	return r
}
