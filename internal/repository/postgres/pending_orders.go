package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// PendingOrders returns the oldest orders whose payment outcome is still unknown
// and that were created at or before createdBefore.
func (r *Repository) PendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("pending_orders", err, start)
	}()

	const query = `
SELECT ` + orderColumns + `
FROM orders
WHERE transaction_status = $1 AND created_at <= $2
ORDER BY created_at ASC
LIMIT $3`

	orders := make([]model.Order, 0, limit)
	if err = r.db.SelectContext(ctx, &orders, query, model.TransactionPending, createdBefore, limit); err != nil {
		return nil, fmt.Errorf("select pending orders: %w", err)
	}
	return orders, nil
}
