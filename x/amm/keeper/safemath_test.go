package keeper_test

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/sealswap/x/amm/keeper"
	"github.com/paw-chain/sealswap/x/amm/types"
)

func pow2(n uint) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), n)
}

func TestCheckedAdd128(t *testing.T) {
	sum, err := keeper.CheckedAdd128(keeper.MaxWide, uint256.NewInt(0))
	require.NoError(t, err)
	require.True(t, sum.Eq(keeper.MaxWide))

	sum, err = keeper.CheckedAdd128(keeper.Wide(math.MaxUint64), keeper.Wide(1))
	require.NoError(t, err)
	require.True(t, sum.Eq(pow2(64)))

	_, err = keeper.CheckedAdd128(keeper.MaxWide, uint256.NewInt(1))
	require.Error(t, err)
	require.True(t, types.ErrMathOverflow.Is(err))
}

func TestCheckedMul128(t *testing.T) {
	maxNarrow := keeper.Wide(math.MaxUint64)
	product, err := keeper.CheckedMul128(maxNarrow, maxNarrow)
	require.NoError(t, err)
	require.Equal(t, "340282366920938463426481119284349108225", product.Dec())

	// 2^64 * 2^64 = 2^128 is one past the wide width
	_, err = keeper.CheckedMul128(pow2(64), pow2(64))
	require.True(t, types.ErrMathOverflow.Is(err))

	_, err = keeper.CheckedMul128(pow2(127), uint256.NewInt(2))
	require.True(t, types.ErrMathOverflow.Is(err))

	product, err = keeper.CheckedMul128(pow2(127), uint256.NewInt(1))
	require.NoError(t, err)
	require.True(t, product.Eq(pow2(127)))
}

func TestCheckedSub(t *testing.T) {
	diff, err := keeper.CheckedSub(uint256.NewInt(10), uint256.NewInt(10))
	require.NoError(t, err)
	require.True(t, diff.IsZero())

	_, err = keeper.CheckedSub(uint256.NewInt(9), uint256.NewInt(10))
	require.True(t, types.ErrMathOverflow.Is(err))
	require.Contains(t, err.Error(), "checked_sub")
}

func TestCheckedDiv(t *testing.T) {
	q, err := keeper.CheckedDiv(uint256.NewInt(7), uint256.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, uint64(3), q.Uint64())

	_, err = keeper.CheckedDiv(uint256.NewInt(7), uint256.NewInt(0))
	require.True(t, types.ErrDivisionByZero.Is(err))
}

func TestCeilAndFloorDiv128(t *testing.T) {
	tests := []struct {
		name        string
		amount      uint64
		numerator   uint64
		denominator uint64
		ceil        uint64
		floor       uint64
	}{
		{"exact multiple", 1_000_000, 3_000, 1_000_000, 3_000, 3_000},
		{"rounds", 10_000, 3_000, 1_000_000, 30, 30},
		{"fractional", 10_001, 3_000, 1_000_000, 31, 30},
		{"zero amount", 0, 3_000, 1_000_000, 0, 0},
		{"zero rate", 123_456, 0, 1_000_000, 0, 0},
		{"one unit", 1, 1, 1_000_000, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ceil, err := keeper.CeilDiv128(keeper.Wide(tc.amount), keeper.Wide(tc.numerator), keeper.Wide(tc.denominator))
			require.NoError(t, err)
			require.Equal(t, tc.ceil, ceil.Uint64())

			floor, err := keeper.FloorDiv128(keeper.Wide(tc.amount), keeper.Wide(tc.numerator), keeper.Wide(tc.denominator))
			require.NoError(t, err)
			require.Equal(t, tc.floor, floor.Uint64())
		})
	}

	_, err := keeper.CeilDiv128(keeper.Wide(1), keeper.Wide(1), keeper.Wide(0))
	require.True(t, types.ErrDivisionByZero.Is(err))
	_, err = keeper.FloorDiv128(keeper.Wide(1), keeper.Wide(1), keeper.Wide(0))
	require.True(t, types.ErrDivisionByZero.Is(err))
}

func TestToNarrow(t *testing.T) {
	v, err := keeper.ToNarrow("test", keeper.Wide(math.MaxUint64))
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), v)

	_, err = keeper.ToNarrow("test.narrow", pow2(64))
	require.True(t, types.ErrMathOverflow.Is(err))
	require.Contains(t, err.Error(), "test.narrow")
}

func TestCheckedNarrowArithmetic(t *testing.T) {
	sum, err := keeper.CheckedAdd64("add", math.MaxUint64-1, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), sum)

	_, err = keeper.CheckedAdd64("add", math.MaxUint64, 1)
	require.True(t, types.ErrMathOverflow.Is(err))

	diff, err := keeper.CheckedSub64("sub", 5, 5)
	require.NoError(t, err)
	require.Zero(t, diff)

	_, err = keeper.CheckedSub64("sub", 4, 5)
	require.True(t, types.ErrMathOverflow.Is(err))
}
