package workflow

import (
	"context"
	"log/slog"
	"time"
)

// TickFunc performs one poll. Returning done stops the loop.
type TickFunc func(ctx context.Context) (done bool, err error)

// Poll invokes tick immediately and then at the fixed interval until
// tick reports done or the context is cancelled. At most one loop runs
// per call; cancelling the context is the teardown.
//
// Tick errors are logged at debug level and otherwise swallowed: the
// poll is level-triggered, so a transient failure is simply corrected on
// the next tick. There is no backoff.
func Poll(ctx context.Context, interval time.Duration, logger *slog.Logger, tick TickFunc) error {
	if logger == nil {
		logger = slog.Default()
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		done, err := tick(ctx)
		if err != nil {
			logger.Debug("poll tick failed", "error", err)
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}
