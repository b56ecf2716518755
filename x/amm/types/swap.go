package types

import (
	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// SwapMode selects how a quote amount is interpreted
type SwapMode uint8

const (
	// SwapModeExactIn quotes the output for a fixed input amount.
	SwapModeExactIn SwapMode = iota
	// SwapModeExactOut is recognised but not supported by the pricing core.
	SwapModeExactOut
)

// SwapResult is the outcome of the constant-product step
type SwapResult struct {
	// FromAmount is the source amount after the trade fee
	FromAmount uint64
	// ToAmount is the destination amount paid out, rounded down
	ToAmount    uint64
	TradeFee    uint64
	ProtocolFee uint64
}

// RebalanceResult is the outcome of the ratio rebalancer
type RebalanceResult struct {
	FromToLock              uint64
	IsRateToleranceExceeded bool
	// Drift is the relative deviation of the visible ratio; reporting only.
	Drift math.LegacyDec
}

// SwapResultWithLock combines the swap and the rebalancer outcomes
type SwapResultWithLock struct {
	SwapResult
	FromToLock uint64
}

// TransferFeeCalculator computes an external token transfer fee for an amount.
type TransferFeeCalculator interface {
	TransferFee(amount uint64) (uint64, error)
}

// QuoteRequest carries everything a quote needs. It is never mutated.
type QuoteRequest struct {
	Direction Direction
	Mode      SwapMode
	// ExchangeIn is the input amount after any source-side transfer fee.
	ExchangeIn uint64
	Pool       PoolState
	Config     FeeConfig
	// OutputTransferFee is applied to the destination amount when set.
	OutputTransferFee TransferFeeCalculator
}

// Quote is returned to callers and never persisted
type Quote struct {
	// InAmount is the input actually applied to the curve (after trade fee).
	InAmount uint64
	// OutAmount is the output net of the destination transfer fee.
	OutAmount uint64
	// FeeAmount is the trade fee charged in FeeMint.
	FeeAmount uint64
	FeeMint   solana.PublicKey
	// FeeRate is the trade fee rate used, in parts per RateDenominator.
	FeeRate uint64

	ProtocolFee uint64
	GrossOut    uint64
	FromToLock  uint64

	InputTransferFee  uint64
	OutputTransferFee uint64
}

// FeePercent renders the trade fee rate as a percentage
func (q Quote) FeePercent() math.LegacyDec {
	return RatePercent(q.FeeRate)
}
