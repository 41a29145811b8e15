package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quickeats/quickeats/pkg/health"
	"github.com/quickeats/quickeats/pkg/middleware"
)

// Handlers groups the route handlers wired by the router.
type Handlers struct {
	Addresses   *AddressHandler
	Carts       *CartHandler
	Orders      *OrderHandler
	Restaurants *RestaurantHandler
	Points      *PointsHandler
	Reviews     *ReviewHandler
}

// NewRouter builds the chi router with the standard middleware stack.
func NewRouter(h Handlers, healthHandler *health.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.PrometheusMetrics("quickeats"))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", healthHandler.LivenessHandler())
	r.Get("/readyz", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", h.Addresses.List)
			r.Post("/", h.Addresses.Create)
			r.Put("/{addressID}", h.Addresses.Update)
			r.Delete("/{addressID}", h.Addresses.Delete)
			r.Post("/{addressID}/default", h.Addresses.SetDefault)
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", h.Restaurants.List)
			r.Get("/{restaurantID}", h.Restaurants.Get)
			r.Get("/{restaurantID}/products", h.Restaurants.ListProducts)
			r.Get("/{restaurantID}/reviews", h.Restaurants.ListReviews)
			r.Get("/{restaurantID}/eligible-addresses", h.Restaurants.EligibleAddresses)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Carts.Summary)
			r.Delete("/", h.Carts.Clear)
			r.Post("/items", h.Carts.AddItem)
			r.Delete("/items/{productID}", h.Carts.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Post("/", h.Orders.Confirm)
			r.Get("/{orderID}", h.Orders.Get)
			r.Post("/{orderID}/review", h.Reviews.Create)
			r.Get("/{orderID}/review", h.Reviews.GetByOrder)
		})

		r.Route("/points", func(r chi.Router) {
			r.Get("/", h.Points.Balance)
			r.Get("/history", h.Points.History)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/points/reconcile", h.Orders.ReconcilePoints)
			r.Get("/points/missing-credits", h.Orders.MissingCredits)
		})
	})

	return r
}
