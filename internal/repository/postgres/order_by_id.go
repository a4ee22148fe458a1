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

// OrderByID returns a single order.
func (r *Repository) OrderByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("order_by_id", err, start)
	}()

	const query = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1`

	var order model.Order
	if err = r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("order %s", id)
			return model.Order{}, err
		}
		return model.Order{}, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}
