package types

import (
	"cosmossdk.io/math"
)

// FeeConfig is the immutable fee configuration passed into every pricing and
// lifecycle call. Rates are parts per RateDenominator.
type FeeConfig struct {
	// TradeFeeRate is charged on the gross input amount, rounded up.
	TradeFeeRate uint64 `json:"trade_fee_rate" mapstructure:"trade-fee-rate"`
	// ProtocolFeeRate is a share of the trade fee, not of the notional.
	ProtocolFeeRate uint64 `json:"protocol_fee_rate" mapstructure:"protocol-fee-rate"`
	// RatioChangeToleranceRate bounds the drift of the visible reserve ratio.
	RatioChangeToleranceRate uint64 `json:"ratio_change_tolerance_rate" mapstructure:"ratio-change-tolerance-rate"`
	// DeadlineSlotDuration is the number of ledger heights an order stays open.
	DeadlineSlotDuration uint64 `json:"deadline_slot_duration" mapstructure:"deadline-slot-duration"`
	// Halted makes every pricing and lifecycle operation fail fast.
	Halted bool `json:"halted" mapstructure:"halted"`
}

// DefaultFeeConfig returns a default fee configuration
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		TradeFeeRate:             3_000,   // 0.3%
		ProtocolFeeRate:          100_000, // 10% of the trade fee
		RatioChangeToleranceRate: 50_000,  // 5%
		DeadlineSlotDuration:     50,
		Halted:                   false,
	}
}

// Validate validates the fee configuration
func (c FeeConfig) Validate() error {
	if c.TradeFeeRate > RateDenominator {
		return ErrInvalidParams.Wrapf("trade fee rate %d exceeds %d", c.TradeFeeRate, RateDenominator)
	}
	if c.ProtocolFeeRate > RateDenominator {
		return ErrInvalidParams.Wrapf("protocol fee rate %d exceeds %d", c.ProtocolFeeRate, RateDenominator)
	}
	if c.RatioChangeToleranceRate > RateDenominator {
		return ErrInvalidParams.Wrapf("ratio change tolerance rate %d exceeds %d", c.RatioChangeToleranceRate, RateDenominator)
	}
	return nil
}

// RequireNotHalted returns an error if the configuration is halted
func (c FeeConfig) RequireNotHalted() error {
	if c.Halted {
		return ErrPoolHalted.Wrap("pool operations are currently halted")
	}
	return nil
}

// RatePercent renders a parts-per-million rate as a percentage (3000 -> 0.3).
func RatePercent(rate uint64) math.LegacyDec {
	return math.LegacyNewDecFromInt(math.NewIntFromUint64(rate)).QuoInt64(10_000)
}
