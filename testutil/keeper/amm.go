package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"github.com/gagliardetto/solana-go"

	"github.com/paw-chain/sealswap/x/amm/keeper"
	"github.com/paw-chain/sealswap/x/amm/types"
)

var (
	// MintX is the wrapped SOL mint used as token X in test pools
	MintX = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	// MintY is the USDC mint used as token Y in test pools
	MintY = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

// AMMKeeper creates a quote keeper with a no-op logger
func AMMKeeper(t testing.TB) (*keeper.Keeper, context.Context) {
	t.Helper()
	return keeper.NewKeeper(log.NewNopLogger()), context.Background()
}

// PoolBuilder builds pool snapshots for tests
type PoolBuilder struct {
	pool types.PoolState
}

// NewPool starts a snapshot whose raw reserves equal the available balances
func NewPool(reserveX, reserveY uint64) *PoolBuilder {
	return &PoolBuilder{pool: types.PoolState{
		TokenMintX: MintX,
		TokenMintY: MintY,
		ReserveX:   reserveX,
		ReserveY:   reserveY,
	}}
}

// WithUserLocked sets the amounts promised to pending orders
func (b *PoolBuilder) WithUserLocked(x, y uint64) *PoolBuilder {
	b.pool.UserLockedX, b.pool.UserLockedY = x, y
	return b
}

// WithProtocolFees sets the accrued protocol fees
func (b *PoolBuilder) WithProtocolFees(x, y uint64) *PoolBuilder {
	b.pool.ProtocolFeeX, b.pool.ProtocolFeeY = x, y
	return b
}

// WithLocked sets the amounts locked by the pool
func (b *PoolBuilder) WithLocked(x, y uint64) *PoolBuilder {
	b.pool.LockedX, b.pool.LockedY = x, y
	return b
}

// Build returns the snapshot
func (b *PoolBuilder) Build() types.PoolState {
	return b.pool
}

// ScenarioConfig is the 0.3% trade fee, 10% protocol share, 5% tolerance config
func ScenarioConfig() types.FeeConfig {
	return types.DefaultFeeConfig()
}
