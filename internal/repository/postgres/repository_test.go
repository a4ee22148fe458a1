package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *MockMetrics) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	metrics := NewMockMetrics(ctrl)

	repo := newRepository(sqlx.NewDb(db, "postgres"), metrics)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock, metrics
}

var productCols = []string{
	"id", "name", "emoji", "description", "features", "price", "reward_rate", "category", "tier", "stock",
	"is_active", "image_url", "color", "bg_color", "border_color", "created_at", "updated_at",
}

func productRows(products ...model.Product) *sqlmock.Rows {
	rows := sqlmock.NewRows(productCols)
	for _, p := range products {
		rows.AddRow(
			p.ID.String(), p.Name, p.Emoji, p.Description, "{Fresh,Healthy}", p.Price.String(), p.RewardRate,
			string(p.Category), p.Tier, p.Stock, p.IsActive, p.ImageURL, p.Color, p.BgColor, p.BorderColor,
			p.CreatedAt, p.UpdatedAt,
		)
	}
	return rows
}

var orderCols = []string{
	"id", "user_id", "user_wallet_address", "user_public_key", "product_id", "product_name",
	"product_price", "product_emoji", "reward_rate", "transaction_signature", "transaction_amount",
	"transaction_status", "order_status", "created_at", "updated_at",
}

func orderRows(orders ...model.Order) *sqlmock.Rows {
	rows := sqlmock.NewRows(orderCols)
	for _, o := range orders {
		var productID any
		if o.ProductID.Valid {
			productID = o.ProductID.UUID.String()
		}
		rows.AddRow(
			o.ID.String(), o.UserID.String(), o.UserWalletAddress, o.UserPublicKey, productID, o.ProductName,
			o.ProductPrice.String(), o.ProductEmoji, o.RewardRate, o.TransactionSignature,
			o.TransactionAmount.String(), string(o.TransactionStatus), string(o.OrderStatus), o.CreatedAt, o.UpdatedAt,
		)
	}
	return rows
}

var userCols = []string{
	"id", "wallet_address", "public_key", "username", "avatar", "notifications", "newsletter",
	"total_purchases", "total_spent", "first_purchase", "last_purchase", "coins", "last_claimed_at",
	"is_active", "created_at", "updated_at",
}

func userRows(users ...model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userCols)
	for _, u := range users {
		rows.AddRow(
			u.ID.String(), u.WalletAddress, u.PublicKey, nil, nil, u.Notifications, u.Newsletter,
			u.TotalPurchases, u.TotalSpent.String(), nil, nil, u.Coins, nil, u.IsActive, u.CreatedAt, u.UpdatedAt,
		)
	}
	return rows
}

func testProduct() model.Product {
	return model.Product{
		ID:         uuid.MustParse("6f1c1f4e-6f5b-4d5e-9a53-0d7c2b0f1a11"),
		Name:       "Chicken",
		Emoji:      "🐔",
		Price:      mustDecimal("0.01"),
		RewardRate: 500,
		Category:   model.Chicken,
		Tier:       1,
		Stock:      100,
		IsActive:   true,
		CreatedAt:  fixedNow,
		UpdatedAt:  fixedNow,
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
