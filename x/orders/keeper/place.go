package keeper

import (
	"context"

	"github.com/gagliardetto/solana-go"

	ammkeeper "github.com/paw-chain/sealswap/x/amm/keeper"
	ammtypes "github.com/paw-chain/sealswap/x/amm/types"
	"github.com/paw-chain/sealswap/x/orders/types"
)

// PlaceOrderRequest records a priced swap as a sealed order
type PlaceOrderRequest struct {
	Trader    solana.PublicKey
	Pool      ammtypes.PoolState
	Direction ammtypes.Direction
	// ActualIn is the gross amount the trader sent, before the source transfer fee.
	ActualIn   uint64
	Quote      ammtypes.Quote
	Commitment types.Commitment
	// Height is the ledger height the swap executes at.
	Height uint64
	Config ammtypes.FeeConfig
}

// PlaceOrder builds an order from a quote and stores it. The deadline is the
// swap height plus the configured slot duration.
func (k Keeper) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (types.Order, error) {
	if err := req.Config.RequireNotHalted(); err != nil {
		return types.Order{}, err
	}
	if err := req.Direction.Validate(); err != nil {
		return types.Order{}, err
	}

	exchangeIn, err := ammkeeper.CheckedSub64("order.exchange_in", req.ActualIn, req.Quote.InputTransferFee)
	if err != nil {
		return types.Order{}, err
	}
	deadline, err := ammkeeper.CheckedAdd64("order.deadline", req.Height, req.Config.DeadlineSlotDuration)
	if err != nil {
		return types.Order{}, err
	}

	order := types.Order{
		Trader:      req.Trader,
		TokenMintX:  req.Pool.TokenMintX,
		TokenMintY:  req.Pool.TokenMintY,
		IsXToY:      req.Direction == ammtypes.SwapXToY,
		ActualIn:    req.ActualIn,
		ExchangeIn:  exchangeIn,
		ActualOut:   req.Quote.OutAmount,
		FromToLock:  req.Quote.FromToLock,
		DIn:         req.Quote.InAmount,
		DOut:        req.Quote.GrossOut,
		Deadline:    deadline,
		ProtocolFee: req.Quote.ProtocolFee,
		Commitment:  req.Commitment,
		Status:      types.OrderStatusCreated,
	}

	if err := k.CreateOrder(ctx, order); err != nil {
		return types.Order{}, err
	}
	return order, nil
}
