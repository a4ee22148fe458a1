package transport

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ProductService interface {
		List(ctx context.Context) ([]model.Product, error)
		ByCategory(ctx context.Context, category model.Category) ([]model.Product, error)
		Get(ctx context.Context, id uuid.UUID) (model.Product, error)
		Create(ctx context.Context, product model.Product) (model.Product, error)
		Update(ctx context.Context, id uuid.UUID, product model.Product) (model.Product, error)
		Delete(ctx context.Context, id uuid.UUID) error
		Initialize(ctx context.Context) ([]model.Product, error)
	}
	OrderService interface {
		Create(ctx context.Context, req service.PlaceOrder) (model.Order, error)
		List(ctx context.Context) ([]model.Order, error)
		ByWallet(ctx context.Context, wallet string) ([]model.Order, error)
		Get(ctx context.Context, id uuid.UUID) (model.Order, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error)
	}
	UserService interface {
		Upsert(ctx context.Context, req model.UpsertUser) (model.User, error)
		ByWallet(ctx context.Context, wallet string) (model.User, error)
		ByID(ctx context.Context, id uuid.UUID) (model.User, error)
		List(ctx context.Context) ([]model.User, error)
		UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (model.User, error)
		UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (model.User, error)
		Deactivate(ctx context.Context, id uuid.UUID) (model.User, error)
		Reactivate(ctx context.Context, id uuid.UUID) (model.User, error)
		Orders(ctx context.Context, id uuid.UUID) ([]model.Order, error)
		RecordPurchase(ctx context.Context, wallet string, amount decimal.Decimal) (model.User, error)
	}
	RewardService interface {
		Claim(ctx context.Context, wallet string) (model.RewardClaim, error)
		History(ctx context.Context, wallet string, limit int) ([]model.RewardClaim, error)
	}
	StatsService interface {
		Overview(ctx context.Context) (model.OrderOverview, error)
		DateRange(ctx context.Context, from, to time.Time) (model.DateRangeStats, error)
		ForUser(ctx context.Context, id uuid.UUID) (model.UserStats, error)
		TopBuyers(ctx context.Context, limit int) ([]model.User, error)
	}
	HealthChecker interface {
		Ping(ctx context.Context) error
	}
	HTTPMetrics interface {
		ObserveRequest(method, route string, code int, started time.Time)
		ObserveRateLimited()
	}
)
