package keeper

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"github.com/cenkalti/backoff/v4"

	"github.com/paw-chain/sealswap/x/orders/types"
)

const (
	// DefaultFetchAttempts bounds reads of a freshly created order
	DefaultFetchAttempts = 5
	// DefaultFetchInterval is the fixed delay between attempts
	DefaultFetchInterval = 5 * time.Second
)

// OrderFetcher reads freshly created orders from a store that may lag the
// write that created them.
type OrderFetcher struct {
	reader   types.OrderReader
	logger   log.Logger
	metrics  *OrderMetrics
	attempts uint64
	interval time.Duration
}

// NewOrderFetcher creates a fetcher with the default attempt bound and delay
func NewOrderFetcher(reader types.OrderReader, logger log.Logger) *OrderFetcher {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &OrderFetcher{
		reader:   reader,
		logger:   logger.With("module", "x/"+types.ModuleName),
		metrics:  NewOrderMetrics(),
		attempts: DefaultFetchAttempts,
		interval: DefaultFetchInterval,
	}
}

// WithRetry overrides the attempt bound and the delay between attempts
func (f *OrderFetcher) WithRetry(attempts uint64, interval time.Duration) *OrderFetcher {
	if attempts == 0 {
		attempts = 1
	}
	f.attempts = attempts
	f.interval = interval
	return f
}

// FetchOrder reads the order under key, retrying while it is missing. Running
// out of attempts reports (nil, false, nil): the order was not found. A read
// error stops the retries and is returned.
func (f *OrderFetcher) FetchOrder(ctx context.Context, key []byte) (*types.Order, bool, error) {
	var order *types.Order
	attempt := 0

	operation := func() error {
		attempt++
		o, found, err := f.reader.GetOrder(ctx, key)
		if err != nil {
			f.metrics.FetchAttempts.WithLabelValues("error").Inc()
			return backoff.Permanent(err)
		}
		if !found {
			f.metrics.FetchAttempts.WithLabelValues("missing").Inc()
			return types.ErrOrderNotFound.Wrapf("attempt %d", attempt)
		}
		f.metrics.FetchAttempts.WithLabelValues("found").Inc()
		order = o
		return nil
	}

	notify := func(err error, next time.Duration) {
		f.logger.Debug("order not visible yet, retrying", "attempt", attempt, "retry_in", next, "error", err)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.interval), f.attempts-1),
		ctx,
	)

	err := backoff.RetryNotify(operation, b, notify)
	switch {
	case err == nil:
		return order, true, nil
	case types.ErrOrderNotFound.Is(err):
		f.logger.Info("order not found after retries", "attempts", attempt, "key", key)
		return nil, false, nil
	default:
		return nil, false, err
	}
}
