package reconciler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/pkg/workerpool"
)

type paymentProcessor struct {
	workerCount  int
	verifier     Verifier
	statusWriter StatusWriter
	maxAge       time.Duration
	now          func() time.Time
	metrics      Metrics
	logger       *zap.Logger
	cancel       func()
}

func (p *paymentProcessor) SetCancel(cancel func()) {
	p.cancel = cancel
}

func (p *paymentProcessor) Process(ctx context.Context, orders []model.Order) error {
	return workerpool.Process(ctx, p.workerCount, orders, p.processOrder, p.cancel)
}

// processOrder settles one order. Verification failures leave the order
// pending for the next pass unless it has outlived maxAge.
func (p *paymentProcessor) processOrder(ctx context.Context, order model.Order) error {
	status, err := p.verifier.Verify(ctx, order.TransactionSignature)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logger.Warn("verify payment failed",
			zap.Stringer("order_id", order.ID),
			zap.String("signature", order.TransactionSignature),
			zap.Error(err),
		)
		status = model.TransactionPending
	}

	outcome := string(status)
	if status == model.TransactionPending {
		if p.now().Sub(order.CreatedAt) < p.maxAge {
			if err != nil {
				outcome = outcomeUnknown
			}
			p.metrics.ObserveOutcome(outcome)
			return nil
		}
		status = model.TransactionFailed
		outcome = outcomeExpired
	}

	update := model.PaymentStatusUpdate{
		OrderID:           order.ID,
		TransactionStatus: status,
		OrderStatus:       model.OrderStatusFor(status),
	}
	if err := p.statusWriter.WriteStatus(ctx, update); err != nil {
		return fmt.Errorf("write status of order %s: %w", order.ID, err)
	}
	p.metrics.ObserveOutcome(outcome)
	p.logger.Info("payment settled",
		zap.Stringer("order_id", order.ID),
		zap.String("transaction_status", string(status)),
		zap.String("outcome", outcome),
	)
	return nil
}
