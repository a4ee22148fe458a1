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

// ProductByID returns a product regardless of its active flag.
func (r *Repository) ProductByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("product_by_id", err, start)
	}()

	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1`

	var product model.Product
	if err = r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("product %s", id)
			return model.Product{}, err
		}
		return model.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}
