package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus uint8

const (
	OrderStatusCreated OrderStatus = iota
	OrderStatusSettled
	OrderStatusCancelled
	OrderStatusSlashed
)

// String implements fmt.Stringer
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "created"
	case OrderStatusSettled:
		return "settled"
	case OrderStatusCancelled:
		return "cancelled"
	case OrderStatusSlashed:
		return "slashed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSettled || s == OrderStatusCancelled || s == OrderStatusSlashed
}

// Order is a pending sealed swap. There is at most one per (trader, pool); it is
// consumed exactly once by settle, cancel or slash.
type Order struct {
	Trader     solana.PublicKey `json:"trader"`
	TokenMintX solana.PublicKey `json:"token_mint_x"`
	TokenMintY solana.PublicKey `json:"token_mint_y"`
	IsXToY     bool             `json:"is_x_to_y"`

	// ActualIn is the gross amount the trader sent
	ActualIn uint64 `json:"actual_in"`
	// ExchangeIn is ActualIn net of the source transfer fee
	ExchangeIn uint64 `json:"exchange_in"`
	// ActualOut is the output the trader receives, net of the destination transfer fee
	ActualOut  uint64 `json:"actual_out"`
	FromToLock uint64 `json:"from_to_lock"`
	// DIn and DOut are the source and destination amounts reserved for the order.
	// DOut is the output the committed minimum is checked against.
	DIn         uint64 `json:"d_in"`
	DOut        uint64 `json:"d_out"`
	Deadline    uint64 `json:"deadline"`
	ProtocolFee uint64 `json:"protocol_fee"`

	Commitment Commitment  `json:"commitment"`
	Status     OrderStatus `json:"status"`
}

// Key returns the store key of the order
func (o Order) Key() []byte {
	return OrderKey(o.Trader, o.TokenMintX, o.TokenMintY)
}

// Validate performs stateless checks on a new order
func (o Order) Validate() error {
	if o.Trader.IsZero() {
		return ErrInvalidOrder.Wrap("trader is empty")
	}
	if o.TokenMintX.IsZero() || o.TokenMintY.IsZero() || o.TokenMintX.Equals(o.TokenMintY) {
		return ErrInvalidOrder.Wrapf("invalid mint pair %s/%s", o.TokenMintX, o.TokenMintY)
	}
	if o.ExchangeIn == 0 || o.ExchangeIn > o.ActualIn {
		return ErrInvalidOrder.Wrapf("exchange in %d with actual in %d", o.ExchangeIn, o.ActualIn)
	}
	if o.ActualOut > o.DOut {
		return ErrInvalidOrder.Wrapf("actual out %d exceeds reserved output %d", o.ActualOut, o.DOut)
	}
	if o.Commitment.IsZero() {
		return ErrInvalidOrder.Wrap("commitment is empty")
	}
	if o.Status != OrderStatusCreated {
		return ErrInvalidOrder.Wrapf("new order has status %s", o.Status)
	}
	return nil
}

// Transition moves a created order into the terminal status of outcome
func (o *Order) Transition(outcome Outcome) error {
	if err := outcome.Validate(); err != nil {
		return err
	}
	if o.Status != OrderStatusCreated {
		return ErrOrderFinalized.Wrapf("order is %s", o.Status)
	}
	o.Status = outcome.TerminalStatus()
	return nil
}
