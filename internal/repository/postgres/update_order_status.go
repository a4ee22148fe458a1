package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// UpdateOrderStatus sets the fulfilment status of an order.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_order_status", err, start)
	}()

	const query = `
UPDATE orders
SET order_status = $2, updated_at = $3
WHERE id = $1
RETURNING ` + orderColumns

	var order model.Order
	if err = r.db.GetContext(ctx, &order, query, id, status, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("order %s", id)
			return model.Order{}, err
		}
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}
