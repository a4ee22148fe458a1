package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterConfig tunes the HTTP middleware stack.
type RouterConfig struct {
	RequestTimeout time.Duration
	// RateLimitRPS is the per-client request rate. Zero disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	AdminJWTSecret string
}

// NewRouter mounts the REST API under /api.
func NewRouter(h *Handler, cfg RouterConfig, metrics HTTPMetrics, logger *zap.Logger) http.Handler {
	admin := newAdminAuth(cfg.AdminJWTSecret, logger.Named("auth")).Middleware

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(accessLog(logger.Named("http"), metrics))
	r.Use(chimw.Recoverer)
	if cfg.RateLimitRPS > 0 {
		r.Use(newIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, metrics).Middleware)
	}
	r.Use(requestTimeout(cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorCode(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorCode(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.healthz)

		api.Route("/products", func(pr chi.Router) {
			pr.Get("/", h.listProducts)
			pr.Get("/category/{category}", h.productsByCategory)
			pr.Get("/{id}", h.getProduct)
			pr.With(admin).Post("/", h.createProduct)
			pr.With(admin).Post("/initialize", h.initializeProducts)
			pr.With(admin).Put("/{id}", h.updateProduct)
			pr.With(admin).Delete("/{id}", h.deleteProduct)
		})

		api.Route("/orders", func(or chi.Router) {
			or.With(admin).Get("/", h.listOrders)
			or.Post("/", h.createOrder)
			or.Get("/wallet/{walletAddress}", h.ordersByWallet)
			or.Get("/stats/overview", h.orderOverview)
			or.Get("/stats/date-range", h.orderDateRange)
			or.Get("/{id}", h.getOrder)
			or.With(admin).Patch("/{id}/status", h.updateOrderStatus)
		})

		api.Route("/users", func(ur chi.Router) {
			ur.With(admin).Get("/", h.listUsers)
			ur.Post("/", h.upsertUser)
			ur.Get("/stats/top-buyers", h.topBuyers)
			ur.Get("/wallet/{walletAddress}", h.userByWallet)
			ur.Post("/wallet/{walletAddress}/claim-rewards", h.claimRewards)
			ur.Get("/wallet/{walletAddress}/claims", h.claimHistory)
			ur.Patch("/wallet/{walletAddress}/stats", h.recordPurchase)
			ur.Get("/{id}", h.userByID)
			ur.Patch("/{id}/profile", h.updateProfile)
			ur.Patch("/{id}/preferences", h.updatePreferences)
			ur.With(admin).Patch("/{id}/deactivate", h.deactivateUser)
			ur.With(admin).Patch("/{id}/reactivate", h.reactivateUser)
			ur.Get("/{id}/orders", h.userOrders)
			ur.Get("/{id}/stats", h.userStats)
		})
	})

	return r
}
