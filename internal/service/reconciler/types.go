package reconciler

import (
	"context"
	"time"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PendingFetcher interface {
		Fetch(ctx context.Context) ([]model.Order, error)
	}
	PaymentProcessor interface {
		Process(ctx context.Context, orders []model.Order) error
		SetCancel(cancel func())
	}
	StatusWriter interface {
		Start(ctx context.Context)
		Stop()
		WriteStatus(ctx context.Context, u model.PaymentStatusUpdate) error
		Flush(ctx context.Context) error
	}
	Repository interface {
		PendingOrders(ctx context.Context, createdBefore time.Time, limit int) ([]model.Order, error)
		UpdatePaymentStatuses(ctx context.Context, updates []model.PaymentStatusUpdate) error
	}
	Verifier interface {
		Verify(ctx context.Context, signature string) (model.TransactionStatus, error)
	}
	Metrics interface {
		ObserveFetchPending(err error, started time.Time)
		ObserveProcessBatch(err error, orders int, started time.Time)
		ObserveOutcome(outcome string)
	}
)
