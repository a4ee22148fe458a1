package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

const (
	lockProductQuery = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
FOR UPDATE`

	upsertBuyerQuery = `
INSERT INTO users (id, wallet_address, public_key, total_purchases, total_spent,
                   first_purchase, last_purchase, created_at, updated_at)
VALUES ($1, $2, $3, 1, $4, $5, $5, $5, $5)
ON CONFLICT (wallet_address) DO UPDATE
SET total_purchases = users.total_purchases + 1,
    total_spent     = users.total_spent + EXCLUDED.total_spent,
    first_purchase  = COALESCE(users.first_purchase, EXCLUDED.first_purchase),
    last_purchase   = EXCLUDED.last_purchase,
    updated_at      = EXCLUDED.updated_at
RETURNING id`

	insertOrderQuery = `
INSERT INTO orders (id, user_id, user_wallet_address, user_public_key, product_id, product_name,
                    product_price, product_emoji, reward_rate, transaction_signature,
                    transaction_amount, transaction_status, order_status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
RETURNING ` + orderColumns

	decrementStockQuery = `
UPDATE products
SET stock = GREATEST(stock - 1, 0), updated_at = $2
WHERE id = $1`
)

// CreateOrder records a purchase atomically: the product row is locked, the buyer's
// purchase counters are upserted, the order is inserted with a snapshot of the product
// and the stock is decremented. A reused transaction signature fails with ErrConflict
// and leaves nothing behind.
func (r *Repository) CreateOrder(ctx context.Context, req model.CreateOrder) (model.Order, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("create_order", err, start)
	}()

	var order model.Order
	now := r.now()
	err = r.inTx(ctx, func(tx *sqlx.Tx) error {
		var product model.Product
		if err := tx.GetContext(ctx, &product, lockProductQuery, req.ProductID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return model.NotFoundf("product %s", req.ProductID)
			}
			return fmt.Errorf("lock product: %w", err)
		}
		if req.RequireStock && product.Stock <= 0 {
			return model.Conflictf("product %s is out of stock", product.ID)
		}

		var userID uuid.UUID
		if err := tx.GetContext(ctx, &userID, upsertBuyerQuery,
			uuid.New(), req.Buyer.WalletAddress, req.Buyer.PublicKey, req.Amount, now,
		); err != nil {
			return fmt.Errorf("upsert buyer: %w", err)
		}

		status := req.TransactionStatus
		if status == "" {
			status = model.TransactionConfirmed
		}
		if err := tx.GetContext(ctx, &order, insertOrderQuery,
			uuid.New(), userID, req.Buyer.WalletAddress, req.Buyer.PublicKey,
			uuid.NullUUID{UUID: product.ID, Valid: true}, product.Name, product.Price, product.Emoji,
			product.RewardRate, req.TransactionSignature, req.Amount, status,
			model.OrderStatusFor(status), now,
		); err != nil {
			if isUniqueViolation(err, "orders_transaction_signature_key") {
				return model.Conflictf("transaction %s already processed", req.TransactionSignature)
			}
			return fmt.Errorf("insert order: %w", err)
		}

		if _, err := tx.ExecContext(ctx, decrementStockQuery, product.ID, now); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}
