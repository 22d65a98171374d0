package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/storefront-backend/internal/analytics"
	"github.com/vasiliy-maslov/storefront-backend/internal/cart"
	"github.com/vasiliy-maslov/storefront-backend/internal/contact"
	handler "github.com/vasiliy-maslov/storefront-backend/internal/handler/http"
	"github.com/vasiliy-maslov/storefront-backend/internal/inventory"
	"github.com/vasiliy-maslov/storefront-backend/internal/notification"
	"github.com/vasiliy-maslov/storefront-backend/internal/order"
	"github.com/vasiliy-maslov/storefront-backend/internal/product"
	"github.com/vasiliy-maslov/storefront-backend/internal/setting"
	"github.com/vasiliy-maslov/storefront-backend/internal/showcase"
)

// NewRouter wires repositories, services and handlers and mounts every route
// under /api.
func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	productRepo := product.NewRepository(pool)
	orderRepo := order.NewRepository(pool)
	cartRepo := cart.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	contactRepo := contact.NewRepository(pool)
	notificationRepo := notification.NewRepository(pool)
	settingRepo := setting.NewRepository(pool)
	showcaseRepo := showcase.NewRepository(pool)
	analyticsRepo := analytics.NewRepository(pool)

	productSvc := product.NewService(productRepo)
	orderSvc := order.NewService(orderRepo)
	contactSvc := contact.NewService(contactRepo, notificationRepo)
	analyticsSvc := analytics.NewService(analyticsRepo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(jsonRecoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler(pool))

		handler.NewProductHandler(productSvc).RegisterRoutes(api)
		handler.NewOrderHandler(orderSvc).RegisterRoutes(api)
		handler.NewCartHandler(cartRepo).RegisterRoutes(api)
		handler.NewInventoryHandler(inventoryRepo).RegisterRoutes(api)
		handler.NewContactHandler(contactSvc).RegisterRoutes(api)
		handler.NewNotificationHandler(notificationRepo).RegisterRoutes(api)
		handler.NewSettingHandler(settingRepo).RegisterRoutes(api)
		handler.NewShowcaseHandler(showcaseRepo).RegisterRoutes(api)
		handler.NewAnalyticsHandler(analyticsSvc).RegisterRoutes(api)
	})

	return r
}

// healthHandler performs a trivial read against the store.
func healthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Service unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// jsonRecoverer is the catch-all for panics escaping a handler: log the
// panic, answer with the same generic JSON error body handlers use.
func jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().Interface("panic_value", rec).Str("path", r.URL.Path).Msg("Panic recovered in HTTP handler")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
