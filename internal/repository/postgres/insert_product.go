package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

const insertProductQuery = `
INSERT INTO products (id, name, emoji, description, features, price, reward_rate, category, tier,
                      stock, is_active, image_url, color, bg_color, border_color, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
RETURNING ` + productColumns

// InsertProduct stores a new product and returns it as persisted.
func (r *Repository) InsertProduct(ctx context.Context, product model.Product) (model.Product, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_product", err, start)
	}()

	var created model.Product
	created, err = insertProduct(ctx, r.db, product, r.now())
	if err != nil {
		return model.Product{}, err
	}
	return created, nil
}

func insertProduct(ctx context.Context, q sqlx.QueryerContext, p model.Product, now time.Time) (model.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	var created model.Product
	err := sqlx.GetContext(ctx, q, &created, insertProductQuery,
		p.ID, p.Name, p.Emoji, p.Description, p.Features, p.Price, p.RewardRate, p.Category, p.Tier,
		p.Stock, p.IsActive, p.ImageURL, p.Color, p.BgColor, p.BorderColor, now,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return model.Product{}, model.Conflictf("product %s already exists", p.ID)
		}
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}
