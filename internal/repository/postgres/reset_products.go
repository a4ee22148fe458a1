package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// ResetProducts replaces the whole catalog in one transaction.
func (r *Repository) ResetProducts(ctx context.Context, products []model.Product) ([]model.Product, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("reset_products", err, start)
	}()

	created := make([]model.Product, 0, len(products))
	now := r.now()
	err = r.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		for _, p := range products {
			stored, err := insertProduct(ctx, tx, p, now)
			if err != nil {
				return err
			}
			created = append(created, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
