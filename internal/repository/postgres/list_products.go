package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// ListProducts returns active products ordered by price. An empty category lists all of them.
func (r *Repository) ListProducts(ctx context.Context, category model.Category) ([]model.Product, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("list_products", err, start)
	}()

	const query = `
SELECT ` + productColumns + `
FROM products
WHERE is_active AND ($1::text = '' OR category = $1::text)
ORDER BY price ASC, tier ASC, name ASC`

	products := make([]model.Product, 0)
	if err = r.db.SelectContext(ctx, &products, query, category); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}
