package keeper

import (
	"github.com/holiman/uint256"

	"github.com/paw-chain/sealswap/x/amm/types"
)

// SwapBaseInputWithoutFees applies the constant product formula
//
//	(x + dx) * (y - dy) = x * y  =>  dy = dx * y / (x + dx)
//
// rounding the destination amount down.
func SwapBaseInputWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount *uint256.Int) (*uint256.Int, error) {
	numerator, err := CheckedMul128(sourceAmount, swapDestinationAmount)
	if err != nil {
		return nil, err
	}
	denominator, err := CheckedAdd128(swapSourceAmount, sourceAmount)
	if err != nil {
		return nil, err
	}
	return CheckedDiv(numerator, denominator)
}

// Swap charges the trade fee on the gross source amount and swaps the remainder
// against the two available pool balances.
//
// The trade fee rounds up and the destination amount rounds down, so the
// invariant can only grow. Losing the destination rounding unit is intended.
func Swap(sourceAmount, poolSourceAmount, poolDestinationAmount, tradeFeeRate, protocolFeeRate uint64) (types.SwapResult, error) {
	source := Wide(sourceAmount)

	tradeFee, err := TradeFee(source, tradeFeeRate)
	if err != nil {
		return types.SwapResult{}, err
	}
	protocolFee, err := ProtocolFee(tradeFee, protocolFeeRate)
	if err != nil {
		return types.SwapResult{}, err
	}
	sourceAfterFee, err := CheckedSub(source, tradeFee)
	if err != nil {
		return types.SwapResult{}, err
	}
	destinationSwapped, err := SwapBaseInputWithoutFees(sourceAfterFee, Wide(poolSourceAmount), Wide(poolDestinationAmount))
	if err != nil {
		return types.SwapResult{}, err
	}

	var result types.SwapResult
	if result.FromAmount, err = ToNarrow("swap.from_amount", sourceAfterFee); err != nil {
		return types.SwapResult{}, err
	}
	if result.ToAmount, err = ToNarrow("swap.to_amount", destinationSwapped); err != nil {
		return types.SwapResult{}, err
	}
	if result.TradeFee, err = ToNarrow("swap.trade_fee", tradeFee); err != nil {
		return types.SwapResult{}, err
	}
	if result.ProtocolFee, err = ToNarrow("swap.protocol_fee", protocolFee); err != nil {
		return types.SwapResult{}, err
	}
	return result, nil
}
