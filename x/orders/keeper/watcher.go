package keeper

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"golang.org/x/time/rate"

	"github.com/paw-chain/sealswap/x/orders/types"
)

// DefaultPollInterval is the delay between height polls
const DefaultPollInterval = time.Second

// DeadlineWatcher waits for order deadlines to pass by polling a HeightSource
type DeadlineWatcher struct {
	heights types.HeightSource
	limiter *rate.Limiter
	logger  log.Logger
	metrics *OrderMetrics
}

// NewDeadlineWatcher creates a watcher polling at most once per interval
func NewDeadlineWatcher(heights types.HeightSource, interval time.Duration, logger log.Logger) *DeadlineWatcher {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DeadlineWatcher{
		heights: heights,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With("module", "x/"+types.ModuleName),
		metrics: NewOrderMetrics(),
	}
}

// WaitForExpiry blocks until the ledger height passes deadline and returns that
// height. Failed polls are logged and retried; only ctx ends the wait early.
func (w *DeadlineWatcher) WaitForExpiry(ctx context.Context, deadline uint64) (uint64, error) {
	for {
		if err := w.limiter.Wait(ctx); err != nil {
			return 0, err
		}

		height, err := w.heights.CurrentHeight(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			w.metrics.WatcherPolls.WithLabelValues("error").Inc()
			w.logger.Error("failed to read current height", "deadline", deadline, "error", err)
			continue
		}

		if height > deadline {
			w.metrics.WatcherPolls.WithLabelValues("expired").Inc()
			w.logger.Debug("deadline passed", "deadline", deadline, "height", height)
			return height, nil
		}
		w.metrics.WatcherPolls.WithLabelValues("pending").Inc()
	}
}
