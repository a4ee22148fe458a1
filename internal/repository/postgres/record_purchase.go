package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// RecordPurchase atomically adds one purchase of amount to a user's statistics.
func (r *Repository) RecordPurchase(ctx context.Context, wallet string, amount decimal.Decimal) (model.User, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("record_purchase", err, start)
	}()

	const query = `
UPDATE users
SET total_purchases = total_purchases + 1,
    total_spent     = total_spent + $2,
    first_purchase  = COALESCE(first_purchase, $3),
    last_purchase   = $3,
    updated_at      = $3
WHERE wallet_address = $1
RETURNING ` + userColumns

	var user model.User
	if err = r.db.GetContext(ctx, &user, query, wallet, amount, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("user with wallet %s", wallet)
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("record purchase: %w", err)
	}
	return user, nil
}
