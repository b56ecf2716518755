package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/paw-chain/sealswap/x/orders/types"
)

// GetOrder loads an order by store key. A missing order is (nil, false, nil).
func (k Keeper) GetOrder(ctx context.Context, key []byte) (*types.Order, bool, error) {
	bz, err := k.db.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read order: %w", err)
	}
	if bz == nil {
		return nil, false, nil
	}

	var order types.Order
	if err := json.Unmarshal(bz, &order); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return &order, true, nil
}

// SetOrder writes an order and keeps the deadline index in step with its status:
// only created orders are indexed.
func (k Keeper) SetOrder(ctx context.Context, order types.Order) error {
	bz, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	key := order.Key()
	indexKey := types.OrderByDeadlineKey(order.Deadline, key)

	batch := k.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(key, bz); err != nil {
		return fmt.Errorf("failed to stage order: %w", err)
	}
	if order.Status == types.OrderStatusCreated {
		err = batch.Set(indexKey, []byte{})
	} else {
		err = batch.Delete(indexKey)
	}
	if err != nil {
		return fmt.Errorf("failed to stage deadline index: %w", err)
	}

	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("failed to write order: %w", err)
	}
	return nil
}

// CreateOrder stores a new order. A trader holds at most one order per pool.
func (k Keeper) CreateOrder(ctx context.Context, order types.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	key := order.Key()
	exists, err := k.db.Has(key)
	if err != nil {
		return fmt.Errorf("failed to read order: %w", err)
	}
	if exists {
		return types.ErrOrderExists.Wrapf("trader %s already holds an order in pool %s/%s",
			order.Trader, order.TokenMintX, order.TokenMintY)
	}

	if err := k.SetOrder(ctx, order); err != nil {
		return err
	}

	k.metrics.OrdersCreated.WithLabelValues(directionLabel(order.IsXToY)).Inc()
	k.metrics.OpenOrders.Inc()
	k.Logger().Info("order created",
		"trader", order.Trader.String(),
		"deadline", order.Deadline,
		"exchange_in", order.ExchangeIn,
		"actual_out", order.ActualOut,
	)
	return nil
}

// IterateOrders calls cb for every stored order until cb returns true
func (k Keeper) IterateOrders(ctx context.Context, cb func(order types.Order) (stop bool)) error {
	iter, err := k.db.Iterator(types.OrderKeyPrefix, prefixEnd(types.OrderKeyPrefix))
	if err != nil {
		return fmt.Errorf("failed to open order iterator: %w", err)
	}
	defer iter.Close()

	for ; iter.Valid(); iter.Next() {
		var order types.Order
		if err := json.Unmarshal(iter.Value(), &order); err != nil {
			return fmt.Errorf("failed to unmarshal order: %w", err)
		}
		if cb(order) {
			break
		}
	}
	return iter.Error()
}

// ExpiredOrderKeys returns the keys of created orders whose deadline is
// strictly below height, in deadline order.
func (k Keeper) ExpiredOrderKeys(ctx context.Context, height uint64) ([][]byte, error) {
	end := binary.BigEndian.AppendUint64(append([]byte{}, types.OrderByDeadlineKeyPrefix...), height)

	iter, err := k.db.Iterator(types.OrderByDeadlineKeyPrefix, end)
	if err != nil {
		return nil, fmt.Errorf("failed to open deadline iterator: %w", err)
	}
	defer iter.Close()

	offset := len(types.OrderByDeadlineKeyPrefix) + 8
	var keys [][]byte
	for ; iter.Valid(); iter.Next() {
		indexKey := iter.Key()
		keys = append(keys, append([]byte{}, indexKey[offset:]...))
	}
	return keys, iter.Error()
}

// prefixEnd returns the first key after every key starting with prefix
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func directionLabel(isXToY bool) string {
	if isXToY {
		return "x_to_y"
	}
	return "y_to_x"
}
