package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// DeleteProduct removes a product. Orders keep their snapshot and lose the reference.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_product", err, start)
	}()

	const query = `DELETE FROM products WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product rows affected: %w", err)
	}
	if affected == 0 {
		err = model.NotFoundf("product %s", id)
		return err
	}
	return nil
}
