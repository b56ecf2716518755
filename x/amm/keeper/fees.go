package keeper

import (
	"github.com/holiman/uint256"

	"github.com/paw-chain/sealswap/x/amm/types"
)

// TradeFee returns ceil(amount * rate / RateDenominator).
// Rounding up means the protocol never under-charges.
func TradeFee(amount *uint256.Int, rate uint64) (*uint256.Int, error) {
	return CeilDiv128(amount, Wide(rate), Wide(types.RateDenominator))
}

// ProtocolFee returns floor(tradeFee * rate / RateDenominator).
// The protocol share is taken from the trade fee and rounds toward liquidity providers.
func ProtocolFee(tradeFee *uint256.Int, rate uint64) (*uint256.Int, error) {
	return FloorDiv128(tradeFee, Wide(rate), Wide(types.RateDenominator))
}
