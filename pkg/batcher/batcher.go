// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config controls when a Batcher flushes.
type Config struct {
	// Size flushes as soon as this many items are buffered.
	Size int
	// Interval flushes whatever is buffered on every tick.
	Interval time.Duration
	// RPS caps flush calls per second.
	RPS int
	// FinalFlushTimeout bounds the flush performed on shutdown, which runs on a
	// context detached from the cancelled one.
	FinalFlushTimeout time.Duration
}

// Batcher buffers items and flushes them either by size, interval or on demand.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	itemsCh       chan T
	flushCh       chan chan error
	cfg           Config
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New constructs a Batcher. The callback receives a batch it may keep.
func New[T any](logger *zap.Logger, flushCallback func(context.Context, []T) error, cfg Config) *Batcher[T] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 100
	}
	if cfg.FinalFlushTimeout <= 0 {
		cfg.FinalFlushTimeout = 5 * time.Second
	}
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		itemsCh:       make(chan T, cfg.Size*2),
		flushCh:       make(chan chan error),
		cfg:           cfg,
		rl:            ratelimit.New(cfg.RPS),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and stops the loop. It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.stopOnce.Do(func() {
		close(b.stop)
	})
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	case <-b.done:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return context.Canceled
	case b.itemsCh <- item:
		return nil
	}
}

// Flush writes every item added so far and returns the callback's error.
func (b *Batcher[T]) Flush(ctx context.Context) error {
	result := make(chan error, 1)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return context.Canceled
	case b.flushCh <- result:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-result:
		return err
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.Interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.Size)

	drain := func() {
		for {
			select {
			case item := <-b.itemsCh:
				buf = append(buf, item)
			default:
				return
			}
		}
	}

	flush := func(ctx context.Context) error {
		if len(buf) == 0 {
			return nil
		}

		b.rl.Take()
		batch := make([]T, len(buf))
		copy(batch, buf)
		buf = buf[:0]

		err := b.flushCallback(ctx, batch)
		if err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(batch)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
		}
		return err
	}

	final := func() {
		drain()
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.FinalFlushTimeout)
		defer cancel()
		_ = flush(fctx)
	}

	for {
		select {
		case <-ctx.Done():
			final()
			return

		case <-b.stop:
			final()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.cfg.Size {
				_ = flush(ctx)
			}

		case result := <-b.flushCh:
			drain()
			result <- flush(ctx)

		case <-ticker.C:
			_ = flush(ctx)
		}
	}
}
