// Package service implements the storefront use cases on top of the repository.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ProductRepository interface {
		ListProducts(ctx context.Context, category model.Category) ([]model.Product, error)
		ProductByID(ctx context.Context, id uuid.UUID) (model.Product, error)
		InsertProduct(ctx context.Context, product model.Product) (model.Product, error)
		UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
		DeleteProduct(ctx context.Context, id uuid.UUID) error
		ResetProducts(ctx context.Context, products []model.Product) ([]model.Product, error)
	}
	OrderRepository interface {
		CreateOrder(ctx context.Context, req model.CreateOrder) (model.Order, error)
		OrderByID(ctx context.Context, id uuid.UUID) (model.Order, error)
		ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
		UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error)
	}
	UserRepository interface {
		UpsertUser(ctx context.Context, req model.UpsertUser) (model.User, error)
		UserByWallet(ctx context.Context, wallet string) (model.User, error)
		UserByID(ctx context.Context, id uuid.UUID) (model.User, error)
		ListUsers(ctx context.Context) ([]model.User, error)
		TopBuyers(ctx context.Context, limit int) ([]model.User, error)
		UpdateProfile(ctx context.Context, id uuid.UUID, profile model.Profile) (model.User, error)
		UpdatePreferences(ctx context.Context, id uuid.UUID, prefs model.Preferences) (model.User, error)
		SetUserActive(ctx context.Context, id uuid.UUID, active bool) (model.User, error)
		RecordPurchase(ctx context.Context, wallet string, amount decimal.Decimal) (model.User, error)
	}
	RewardRepository interface {
		ClaimRewards(ctx context.Context, wallet string, claim model.ClaimFunc) (model.RewardClaim, error)
		ListClaims(ctx context.Context, wallet string, limit int) ([]model.RewardClaim, error)
	}
	PaymentVerifier interface {
		Verify(ctx context.Context, signature string) (model.TransactionStatus, error)
	}
	KeyLocker interface {
		Lock(ctx context.Context, key string) (func(), error)
	}
	RewardMetrics interface {
		ObserveClaim(err error, amount int64, started time.Time)
	}
)
