package keeper_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/sealswap/testutil/keeper"
	"github.com/paw-chain/sealswap/x/amm/types"
	"github.com/paw-chain/sealswap/x/orders/keeper"
	orderstypes "github.com/paw-chain/sealswap/x/orders/types"
)

func TestCreateAndGetOrder(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)
	order := keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(7), 150)

	require.NoError(t, k.CreateOrder(ctx, order))

	got, found, err := k.GetOrder(ctx, order.Key())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, order, *got)

	_, found, err = k.GetOrder(ctx, orderstypes.OrderKey(solana.NewWallet().PublicKey(), order.TokenMintX, order.TokenMintY))
	require.NoError(t, err)
	require.False(t, found)
}

func TestCreateOrder_OnePerTraderAndPool(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)
	order := keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(7), 150)
	require.NoError(t, k.CreateOrder(ctx, order))

	err := k.CreateOrder(ctx, order)
	require.True(t, orderstypes.ErrOrderExists.Is(err))

	other := order
	other.Trader = solana.NewWallet().PublicKey()
	require.NoError(t, k.CreateOrder(ctx, other))
}

func TestCreateOrder_Validation(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)

	order := keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(7), 150)
	order.Commitment = orderstypes.Commitment{}
	require.True(t, orderstypes.ErrInvalidOrder.Is(k.CreateOrder(ctx, order)))

	order = keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(7), 150)
	order.Status = orderstypes.OrderStatusSettled
	require.True(t, orderstypes.ErrInvalidOrder.Is(k.CreateOrder(ctx, order)))
}

func TestExpiredOrderKeys(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)

	deadlines := []uint64{300, 100, 200, 256}
	orders := make([]orderstypes.Order, len(deadlines))
	for i, deadline := range deadlines {
		orders[i] = keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(uint64(i)), deadline)
		orders[i].Trader = solana.NewWallet().PublicKey()
		require.NoError(t, k.CreateOrder(ctx, orders[i]))
	}

	keys, err := k.ExpiredOrderKeys(ctx, 100)
	require.NoError(t, err)
	require.Empty(t, keys)

	keys, err = k.ExpiredOrderKeys(ctx, 257)
	require.NoError(t, err)
	require.Equal(t, [][]byte{orders[1].Key(), orders[2].Key(), orders[3].Key()}, keys)

	// terminal orders leave the index
	orders[2].Status = orderstypes.OrderStatusCancelled
	require.NoError(t, k.SetOrder(ctx, orders[2]))

	keys, err = k.ExpiredOrderKeys(ctx, 257)
	require.NoError(t, err)
	require.Equal(t, [][]byte{orders[1].Key(), orders[3].Key()}, keys)
}

func TestIterateOrders(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)
	for i := 0; i < 3; i++ {
		order := keepertest.NewOrder(19_743, 19_000, orderstypes.SaltFromUint64(uint64(i)), 150)
		order.Trader = solana.NewWallet().PublicKey()
		require.NoError(t, k.CreateOrder(ctx, order))
	}

	var seen int
	require.NoError(t, k.IterateOrders(ctx, func(order orderstypes.Order) bool {
		seen++
		return false
	}))
	require.Equal(t, 3, seen)

	seen = 0
	require.NoError(t, k.IterateOrders(ctx, func(order orderstypes.Order) bool {
		seen++
		return true
	}))
	require.Equal(t, 1, seen)
}

func TestPlaceOrder(t *testing.T) {
	amm, ctx := keepertest.AMMKeeper(t)
	k, _ := keepertest.OrdersKeeper(t)

	pool := keepertest.NewPool(1_000_000, 2_000_000).Build()
	cfg := keepertest.ScenarioConfig()
	inputFee := types.TransferFee{BasisPoints: 100, MaximumFee: 1_000_000}

	quote, err := amm.QuoteExactIn(ctx, types.QuoteRequest{
		Direction: types.SwapXToY,
		Mode:      types.SwapModeExactIn,
		Pool:      pool,
		Config:    cfg,
	}, 10_102, inputFee)
	require.NoError(t, err)

	commitment := orderstypes.Commit(19_500, orderstypes.SaltFromUint64(42))
	order, err := k.PlaceOrder(ctx, keeper.PlaceOrderRequest{
		Trader:     keepertest.Trader,
		Pool:       pool,
		Direction:  types.SwapXToY,
		ActualIn:   10_102,
		Quote:      quote,
		Commitment: commitment,
		Height:     1_000,
		Config:     cfg,
	})
	require.NoError(t, err)

	require.Equal(t, uint64(10_102), order.ActualIn)
	require.Equal(t, uint64(10_000), order.ExchangeIn)
	require.Equal(t, uint64(9_970), order.DIn)
	require.Equal(t, uint64(19_743), order.DOut)
	require.Equal(t, uint64(19_743), order.ActualOut)
	require.Equal(t, uint64(9_871), order.FromToLock)
	require.Equal(t, uint64(3), order.ProtocolFee)
	require.Equal(t, uint64(1_050), order.Deadline)
	require.True(t, order.IsXToY)
	require.Equal(t, orderstypes.OrderStatusCreated, order.Status)

	stored, found, err := k.GetOrder(ctx, order.Key())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, order, *stored)
}

func TestPlaceOrder_DeadlineOverflow(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)

	_, err := k.PlaceOrder(ctx, keeper.PlaceOrderRequest{
		Trader:     keepertest.Trader,
		Pool:       keepertest.NewPool(1_000_000, 2_000_000).Build(),
		Direction:  types.SwapXToY,
		ActualIn:   10_000,
		Quote:      types.Quote{InAmount: 9_970, OutAmount: 19_743, GrossOut: 19_743},
		Commitment: orderstypes.Commit(1, orderstypes.SaltFromUint64(1)),
		Height:     ^uint64(0),
		Config:     keepertest.ScenarioConfig(),
	})
	require.True(t, types.ErrMathOverflow.Is(err))
}

func TestPlaceOrder_Halted(t *testing.T) {
	k, ctx := keepertest.OrdersKeeper(t)
	cfg := keepertest.ScenarioConfig()
	cfg.Halted = true

	_, err := k.PlaceOrder(ctx, keeper.PlaceOrderRequest{Config: cfg})
	require.True(t, types.ErrPoolHalted.Is(err))
}
