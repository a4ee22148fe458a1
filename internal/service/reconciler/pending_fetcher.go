package reconciler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

type pendingFetcher struct {
	repository  Repository
	gracePeriod time.Duration
	limit       int
	now         func() time.Time
}

func (f *pendingFetcher) Fetch(ctx context.Context) ([]model.Order, error) {
	return f.repository.PendingOrders(ctx, f.now().Add(-f.gracePeriod), f.limit)
}
