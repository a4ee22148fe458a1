package reconciler

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/pkg/batcher"
)

type statusWriter struct {
	repo    Repository
	logger  *zap.Logger
	batcher *batcher.Batcher[model.PaymentStatusUpdate]
}

func newStatusWriter(repo Repository, logger *zap.Logger) *statusWriter {
	w := &statusWriter{
		repo:   repo,
		logger: logger,
	}

	w.batcher = batcher.New[model.PaymentStatusUpdate](
		logger.Named("statusBatcher"),
		w.flush,
		batcher.Config{
			Size:     statusBatcherCapacity,
			Interval: statusBatcherFlushInterval,
			RPS:      statusBatcherRPS,
		},
	)
	return w
}

func (w *statusWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *statusWriter) Stop() {
	w.batcher.Stop()
}

func (w *statusWriter) WriteStatus(ctx context.Context, u model.PaymentStatusUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.batcher.Add(ctx, u)
}

func (w *statusWriter) Flush(ctx context.Context) error {
	return w.batcher.Flush(ctx)
}

func (w *statusWriter) flush(ctx context.Context, updates []model.PaymentStatusUpdate) error {
	if err := w.repo.UpdatePaymentStatuses(ctx, updates); err != nil {
		return err
	}
	w.logger.Debug("payment statuses written", zap.Int("count", len(updates)))
	return nil
}
