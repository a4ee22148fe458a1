package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// UpdateProduct overwrites the editable fields of an existing product.
func (r *Repository) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_product", err, start)
	}()

	const query = `
UPDATE products
SET name = $2, emoji = $3, description = $4, features = $5, price = $6, reward_rate = $7,
    category = $8, tier = $9, stock = $10, is_active = $11, image_url = $12, color = $13,
    bg_color = $14, border_color = $15, updated_at = $16
WHERE id = $1
RETURNING ` + productColumns

	features := product.Features
	if features == nil {
		features = []string{}
	}

	var updated model.Product
	err = r.db.GetContext(ctx, &updated, query,
		product.ID, product.Name, product.Emoji, product.Description, features, product.Price,
		product.RewardRate, product.Category, product.Tier, product.Stock, product.IsActive,
		product.ImageURL, product.Color, product.BgColor, product.BorderColor, r.now(),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = model.NotFoundf("product %s", product.ID)
			return model.Product{}, err
		}
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}
