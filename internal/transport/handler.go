// Package transport exposes the storefront over HTTP and reports health over gRPC.
package transport

import (
	"time"

	"go.uber.org/zap"
)

// Services bundles the use cases served over HTTP.
type Services struct {
	Products ProductService
	Orders   OrderService
	Users    UserService
	Rewards  RewardService
	Stats    StatsService
	Health   HealthChecker
}

// Handler serves the REST API.
type Handler struct {
	products ProductService
	orders   OrderService
	users    UserService
	rewards  RewardService
	stats    StatsService
	health   HealthChecker
	now      func() time.Time
	logger   *zap.Logger
}

func NewHandler(s Services, logger *zap.Logger) *Handler {
	return &Handler{
		products: s.Products,
		orders:   s.Orders,
		users:    s.Users,
		rewards:  s.Rewards,
		stats:    s.Stats,
		health:   s.Health,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}
