package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

// UpdatePaymentStatuses applies reconciled payment outcomes in one transaction.
// Orders that already left the pending state are skipped.
func (r *Repository) UpdatePaymentStatuses(ctx context.Context, updates []model.PaymentStatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_payment_statuses", err, start)
	}()

	const query = `
UPDATE orders
SET transaction_status = $2, order_status = $3, updated_at = $4
WHERE id = $1 AND transaction_status = $5`

	now := r.now()
	err = r.inTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare payment status update: %w", err)
		}
		defer func() {
			_ = stmt.Close()
		}()

		for _, u := range updates {
			if _, err := stmt.ExecContext(ctx, u.OrderID, u.TransactionStatus, u.OrderStatus, now, model.TransactionPending); err != nil {
				return fmt.Errorf("update payment status of order %s: %w", u.OrderID, err)
			}
		}
		return nil
	})
	return err
}
