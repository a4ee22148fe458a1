// Package clock holds the context-aware pause used between polling passes.
package clock

import (
	"context"
	"time"
)

// SleepWithContext pauses for d. It returns ctx.Err() as soon as ctx is done,
// including when d is not positive, so polling loops stop promptly on shutdown.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
