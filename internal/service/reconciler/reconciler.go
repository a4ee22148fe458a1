// Package reconciler re-verifies payments that were accepted before their
// on-chain outcome was known and settles the orders that carry them.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/farmmarket-backend/internal/clock"
)

// Config tunes the reconciliation loop. Zero values fall back to defaults.
type Config struct {
	// Workers verifies this many payments concurrently.
	Workers int
	// BatchLimit caps pending orders fetched per iteration.
	BatchLimit int
	// GracePeriod skips orders younger than this.
	GracePeriod time.Duration
	// MaxAge marks orders still unresolved after this long as failed.
	MaxAge time.Duration
	// IdleSleep is the pause after an iteration that found nothing to do.
	IdleSleep time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = defaultWorkerCount
	}
	if c.BatchLimit <= 0 {
		c.BatchLimit = defaultBatchLimit
	}
	if c.GracePeriod <= 0 {
		c.GracePeriod = defaultGracePeriod
	}
	if c.MaxAge <= 0 {
		c.MaxAge = defaultMaxAge
	}
	if c.IdleSleep <= 0 {
		c.IdleSleep = idleSleepDuration
	}
	return c
}

type PaymentReconciler struct {
	logger                 *zap.Logger
	metrics                Metrics
	sleep                  func(context.Context, time.Duration) error
	idleSleepDuration      time.Duration
	postBatchSleepDuration time.Duration
	errorSleepDuration     time.Duration
	pendingFetcher         PendingFetcher
	paymentProcessor       PaymentProcessor
	statusWriter           StatusWriter
}

func NewPaymentReconciler(
	repo Repository,
	verifier Verifier,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*PaymentReconciler, error) {
	if repo == nil {
		return nil, errors.New("payment reconciler repository is required")
	}
	if verifier == nil {
		return nil, errors.New("payment reconciler verifier is required")
	}
	if metrics == nil {
		return nil, errors.New("payment reconciler metrics is required")
	}
	cfg = cfg.withDefaults()
	now := func() time.Time { return time.Now().UTC() }

	sw := newStatusWriter(repo, logger.Named("statusWriter"))

	return &PaymentReconciler{
		logger:                 logger,
		metrics:                metrics,
		sleep:                  clock.SleepWithContext,
		idleSleepDuration:      cfg.IdleSleep,
		postBatchSleepDuration: postBatchSleepDuration,
		errorSleepDuration:     errorSleepDuration,
		pendingFetcher: &pendingFetcher{
			repository:  repo,
			gracePeriod: cfg.GracePeriod,
			limit:       cfg.BatchLimit,
			now:         now,
		},
		statusWriter: sw,
		paymentProcessor: &paymentProcessor{
			workerCount:  cfg.Workers,
			verifier:     verifier,
			statusWriter: sw,
			maxAge:       cfg.MaxAge,
			now:          now,
			metrics:      metrics,
			logger:       logger.Named("paymentProcessor"),
		},
	}, nil
}

// Run reconciles pending payments until ctx is cancelled.
func (s *PaymentReconciler) Run(ctx context.Context) error {
	swCtx, swCancel := context.WithCancel(ctx)
	s.paymentProcessor.SetCancel(swCancel)

	s.statusWriter.Start(swCtx)
	defer func() {
		swCancel()
		s.statusWriter.Stop()
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if swCtx.Err() != nil {
				return fmt.Errorf("status writer stopped: %w", err)
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.errorSleepDuration))
			if sleepErr := s.sleep(ctx, s.errorSleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *PaymentReconciler) run(ctx context.Context) error {
	started := time.Now()
	orders, err := s.pendingFetcher.Fetch(ctx)
	s.metrics.ObserveFetchPending(err, started)
	if err != nil {
		s.logger.Error("fetch pending orders failed", zap.Error(err))
		return err
	}

	if len(orders) == 0 {
		s.logger.Debug("no pending payments; going idle", zap.Duration("sleep", s.idleSleepDuration))
		return s.sleep(ctx, s.idleSleepDuration)
	}

	s.logger.Info("reconciling batch", zap.Int("order_count", len(orders)))
	started = time.Now()
	err = s.paymentProcessor.Process(ctx, orders)
	if err == nil {
		// Pending orders are refetched next iteration, so updates must land first.
		err = s.statusWriter.Flush(ctx)
	}
	s.metrics.ObserveProcessBatch(err, len(orders), started)
	if err != nil {
		s.logger.Error("reconcile batch failed", zap.Int("order_count", len(orders)), zap.Error(err))
		return err
	}

	return s.sleep(ctx, s.postBatchSleepDuration)
}
