package keeper_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paw-chain/sealswap/x/amm/keeper"
	"github.com/paw-chain/sealswap/x/amm/types"
)

func TestTradeFee_RoundsUp(t *testing.T) {
	tests := []struct {
		amount uint64
		rate   uint64
		want   uint64
	}{
		{10_000, 3_000, 30},
		{10_001, 3_000, 31},
		{1, 3_000, 1},
		{0, 3_000, 0},
		{10_000, 0, 0},
		{10_000, 1_000_000, 10_000},
	}

	for _, tc := range tests {
		fee, err := keeper.TradeFee(keeper.Wide(tc.amount), tc.rate)
		require.NoError(t, err)
		require.Equal(t, tc.want, fee.Uint64(), "amount=%d rate=%d", tc.amount, tc.rate)
	}
}

func TestProtocolFee_RoundsDown(t *testing.T) {
	tests := []struct {
		tradeFee uint64
		rate     uint64
		want     uint64
	}{
		{30, 100_000, 3},
		{31, 100_000, 3},
		{9, 100_000, 0},
		{30, 0, 0},
		{30, 1_000_000, 30},
	}

	for _, tc := range tests {
		fee, err := keeper.ProtocolFee(keeper.Wide(tc.tradeFee), tc.rate)
		require.NoError(t, err)
		require.Equal(t, tc.want, fee.Uint64(), "tradeFee=%d rate=%d", tc.tradeFee, tc.rate)
	}
}

func TestSwap_ScenarioA(t *testing.T) {
	result, err := keeper.Swap(10_000, 1_000_000, 2_000_000, 3_000, 100_000)
	require.NoError(t, err)

	require.Equal(t, types.SwapResult{
		FromAmount:  9_970,
		ToAmount:    19_743,
		TradeFee:    30,
		ProtocolFee: 3,
	}, result)
}

func TestSwap_ReverseDirection(t *testing.T) {
	result, err := keeper.Swap(20_000, 2_000_000, 1_000_000, 3_000, 100_000)
	require.NoError(t, err)

	require.Equal(t, uint64(60), result.TradeFee)
	require.Equal(t, uint64(6), result.ProtocolFee)
	require.Equal(t, uint64(19_940), result.FromAmount)
	require.Equal(t, uint64(9_871), result.ToAmount)
}

func TestSwap_InvariantNeverDecreases(t *testing.T) {
	cases := [][3]uint64{
		{1, 1, 1},
		{7, 13, 17},
		{10_000, 1_000_000, 2_000_000},
		{999_999, 1_000_000, 3},
		{math.MaxUint32, math.MaxUint32, math.MaxUint32},
	}

	for _, c := range cases {
		in, src, dst := c[0], c[1], c[2]
		result, err := keeper.Swap(in, src, dst, 3_000, 100_000)
		require.NoError(t, err)
		require.Less(t, result.ToAmount, dst)

		before, err := keeper.CheckedMul128(keeper.Wide(src), keeper.Wide(dst))
		require.NoError(t, err)
		after, err := keeper.CheckedMul128(keeper.Wide(src+result.FromAmount), keeper.Wide(dst-result.ToAmount))
		require.NoError(t, err)
		require.False(t, after.Lt(before), "k decreased for %v", c)
	}
}

func TestSwap_Overflow(t *testing.T) {
	// the curve step itself fits 128 bits: (2^64-1)^2 < 2^128
	result, err := keeper.Swap(math.MaxUint64, math.MaxUint64, math.MaxUint64, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64/2), result.ToAmount)

	// the source side sum overflows u64 but not u128; no narrowing is involved
	result, err = keeper.Swap(math.MaxUint64, 1, math.MaxUint64, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64-1), result.ToAmount)
}

func TestSwapBaseInputWithoutFees_DivisionByZero(t *testing.T) {
	_, err := keeper.SwapBaseInputWithoutFees(keeper.Wide(0), keeper.Wide(0), keeper.Wide(10))
	require.True(t, types.ErrDivisionByZero.Is(err))
}
