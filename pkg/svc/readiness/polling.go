package readiness

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultTimeout bounds a probe that does not set its own.
	DefaultTimeout = 30 * time.Second
	// DefaultInterval separates two polls of a probe that does not set its own.
	DefaultInterval = time.Second
)

// CheckFunc reports whether the polled resource is ready.
// A returned error stops polling immediately.
type CheckFunc func(ctx context.Context) (bool, error)

// PollForReadiness runs check immediately and then every interval until it reports ready,
// fails, or deadline elapses. Exceeding the deadline yields ErrTimeoutExceeded.
func PollForReadiness(
	ctx context.Context,
	deadline time.Duration,
	interval time.Duration,
	check CheckFunc,
) error {
	if deadline <= 0 {
		deadline = DefaultTimeout
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	pollCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ready, err := check(pollCtx)
		if err != nil {
			return err
		}

		if ready {
			return nil
		}

		select {
		case <-pollCtx.Done():
			if ctx.Err() != nil {
				return fmt.Errorf("polling cancelled: %w", ctx.Err())
			}

			return fmt.Errorf("%w after %s", ErrTimeoutExceeded, deadline)
		case <-ticker.C:
		}
	}
}
