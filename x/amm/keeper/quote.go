package keeper

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/sealswap/app/telemetry"
	"github.com/paw-chain/sealswap/x/amm/types"
)

// PoolBalances returns the total and available pricing balances of one side.
//
//	total     = reserve - userLocked - protocolFee
//	available = total - locked
//
// An underflow means the snapshot is corrupted and is reported as ErrMathOverflow.
func PoolBalances(pool types.PoolState, side types.Side) (types.Balances, error) {
	total, err := CheckedSub64("balances.reserve_minus_user_locked", pool.Reserve(side), pool.UserLocked(side))
	if err != nil {
		return types.Balances{}, err
	}
	total, err = CheckedSub64("balances.total", total, pool.ProtocolFee(side))
	if err != nil {
		return types.Balances{}, err
	}
	available, err := CheckedSub64("balances.available", total, pool.Locked(side))
	if err != nil {
		return types.Balances{}, err
	}
	return types.Balances{Total: total, Available: available}, nil
}

// ComputeSwap runs the swap and the rebalancer for an exact-in trade of
// exchangeIn source tokens and applies the acceptance rules. It does not check
// the halted flag and does not deduct any transfer fee.
func ComputeSwap(direction types.Direction, exchangeIn uint64, pool types.PoolState, cfg types.FeeConfig) (types.SwapResultWithLock, error) {
	result, _, err := computeSwap(direction, exchangeIn, pool, cfg)
	return result, err
}

func computeSwap(
	direction types.Direction,
	exchangeIn uint64,
	pool types.PoolState,
	cfg types.FeeConfig,
) (types.SwapResultWithLock, types.RebalanceResult, error) {
	if err := direction.Validate(); err != nil {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, err
	}
	if exchangeIn == 0 {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, types.ErrInputAmountTooSmall.Wrap("exchange in amount is zero")
	}

	sourceSide, destinationSide := direction.SourceSide(), direction.DestinationSide()

	source, err := PoolBalances(pool, sourceSide)
	if err != nil {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, err
	}
	destination, err := PoolBalances(pool, destinationSide)
	if err != nil {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, err
	}

	// an empty side would otherwise surface as a degenerate rebalance
	if source.Available == 0 {
		return types.SwapResultWithLock{}, types.RebalanceResult{},
			types.ErrInsufficientPoolBalance(sourceSide).Wrapf("available %s balance is zero", sourceSide)
	}
	if destination.Available == 0 {
		return types.SwapResultWithLock{}, types.RebalanceResult{},
			types.ErrInsufficientPoolBalance(destinationSide).Wrapf("available %s balance is zero", destinationSide)
	}

	swapResult, err := Swap(exchangeIn, source.Available, destination.Available, cfg.TradeFeeRate, cfg.ProtocolFeeRate)
	if err != nil {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, err
	}

	rebalance, err := RebalancePoolRatio(
		swapResult.ToAmount,
		source.Available,
		destination.Available,
		source.Total,
		destination.Total,
		cfg.RatioChangeToleranceRate,
	)
	if err != nil {
		return types.SwapResultWithLock{}, types.RebalanceResult{}, err
	}

	if rebalance.IsRateToleranceExceeded {
		return types.SwapResultWithLock{}, rebalance, types.ErrTradeTooBig.Wrapf(
			"ratio change %s exceeds tolerance %s", rebalance.Drift.QuoInt64(100), types.RatePercent(cfg.RatioChangeToleranceRate))
	}

	// the pool side can never be locked down to zero
	if rebalance.FromToLock >= source.Available {
		return types.SwapResultWithLock{}, rebalance, types.ErrInsufficientPoolBalance(sourceSide).Wrapf(
			"lock %d would consume available %s balance %d", rebalance.FromToLock, sourceSide, source.Available)
	}

	return types.SwapResultWithLock{
		SwapResult: swapResult,
		FromToLock: rebalance.FromToLock,
	}, rebalance, nil
}

// Quote prices an exact-in trade against the snapshot in req. The snapshot is
// never mutated; concurrent quotes against the same snapshot are safe.
func (k Keeper) Quote(ctx context.Context, req types.QuoteRequest) (quote types.Quote, err error) {
	start := time.Now()
	_, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "quote")
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
			telemetry.RecordError(span, err)
		}
		k.metrics.QuotesTotal.WithLabelValues(req.Direction.String(), status).Inc()
		k.metrics.QuoteLatency.Observe(time.Since(start).Seconds())
		k.instruments.RecordQuote(ctx, req.Direction.String(), time.Since(start), err)
		span.End()
	}()

	if err := req.Config.RequireNotHalted(); err != nil {
		return types.Quote{}, err
	}
	if req.Mode != types.SwapModeExactIn {
		return types.Quote{}, types.ErrUnsupportedSwapMode.Wrapf("swap mode %d", req.Mode)
	}

	result, rebalance, err := computeSwap(req.Direction, req.ExchangeIn, req.Pool, req.Config)
	if err != nil {
		if types.ErrTradeTooBig.Is(err) {
			k.metrics.ToleranceExceeded.WithLabelValues(req.Direction.String()).Inc()
		}
		k.Logger().Debug("quote rejected",
			"direction", req.Direction.String(),
			"exchange_in", req.ExchangeIn,
			"error", err,
		)
		return types.Quote{}, err
	}

	var outputFee uint64
	if req.OutputTransferFee != nil {
		if outputFee, err = req.OutputTransferFee.TransferFee(result.ToAmount); err != nil {
			return types.Quote{}, err
		}
	}
	outAmount, err := CheckedSub64("quote.out_amount", result.ToAmount, outputFee)
	if err != nil {
		return types.Quote{}, err
	}

	sourceMint := req.Pool.Mint(req.Direction.SourceSide())
	destinationMint := req.Pool.Mint(req.Direction.DestinationSide())

	quote = types.Quote{
		InAmount:          result.FromAmount,
		OutAmount:         outAmount,
		FeeAmount:         result.TradeFee,
		FeeMint:           sourceMint,
		FeeRate:           req.Config.TradeFeeRate,
		ProtocolFee:       result.ProtocolFee,
		GrossOut:          result.ToAmount,
		FromToLock:        result.FromToLock,
		OutputTransferFee: outputFee,
	}

	k.metrics.QuoteVolume.WithLabelValues(sourceMint.String(), "in").Add(float64(req.ExchangeIn))
	k.metrics.QuoteVolume.WithLabelValues(destinationMint.String(), "out").Add(float64(outAmount))
	k.metrics.TradeFees.WithLabelValues(sourceMint.String()).Add(float64(result.TradeFee))
	k.metrics.ProtocolFees.WithLabelValues(sourceMint.String()).Add(float64(result.ProtocolFee))
	k.metrics.FromToLock.WithLabelValues(sourceMint.String()).Add(float64(result.FromToLock))
	if outputFee > 0 {
		k.metrics.TransferFees.WithLabelValues(destinationMint.String(), "out").Add(float64(outputFee))
	}
	if drift, derr := rebalance.Drift.Float64(); derr == nil {
		k.metrics.RatioDrift.Observe(drift)
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("quote.direction", req.Direction.String()),
		attribute.String("quote.exchange_in", strconv.FormatUint(req.ExchangeIn, 10)),
		attribute.String("quote.out_amount", strconv.FormatUint(outAmount, 10)),
		attribute.String("quote.from_to_lock", strconv.FormatUint(result.FromToLock, 10)),
	)

	k.Logger().Debug("quote computed",
		"direction", req.Direction.String(),
		"exchange_in", req.ExchangeIn,
		"out_amount", outAmount,
		"trade_fee", result.TradeFee,
		"protocol_fee", result.ProtocolFee,
		"from_to_lock", result.FromToLock,
		"drift", rebalance.Drift.String(),
	)

	return quote, nil
}

// QuoteExactIn quotes a gross input amount: the source-side transfer fee is
// deducted first and the remainder is priced by Quote.
func (k Keeper) QuoteExactIn(
	ctx context.Context,
	req types.QuoteRequest,
	grossIn uint64,
	inputTransferFee types.TransferFeeCalculator,
) (types.Quote, error) {
	var inputFee uint64
	if inputTransferFee != nil {
		var err error
		if inputFee, err = inputTransferFee.TransferFee(grossIn); err != nil {
			return types.Quote{}, err
		}
	}

	exchangeIn, err := CheckedSub64("quote.exchange_in", grossIn, inputFee)
	if err != nil {
		return types.Quote{}, err
	}

	req.ExchangeIn = exchangeIn
	quote, err := k.Quote(ctx, req)
	if err != nil {
		return types.Quote{}, err
	}
	quote.InputTransferFee = inputFee
	if inputFee > 0 {
		k.metrics.TransferFees.WithLabelValues(req.Pool.Mint(req.Direction.SourceSide()).String(), "in").Add(float64(inputFee))
	}
	return quote, nil
}
