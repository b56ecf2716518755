package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Side identifies one token of a pool pair
type Side uint8

const (
	SideX Side = iota
	SideY
)

// String implements fmt.Stringer
func (s Side) String() string {
	switch s {
	case SideX:
		return "x"
	case SideY:
		return "y"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Direction is the swap direction of an exact-in trade
type Direction uint8

const (
	SwapXToY Direction = iota
	SwapYToX
)

// String implements fmt.Stringer
func (d Direction) String() string {
	switch d {
	case SwapXToY:
		return "x_to_y"
	case SwapYToX:
		return "y_to_x"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Validate rejects unknown directions
func (d Direction) Validate() error {
	if d != SwapXToY && d != SwapYToX {
		return ErrInvalidDirection.Wrapf("unknown direction %d", uint8(d))
	}
	return nil
}

// SourceSide returns the side that supplies the input amount
func (d Direction) SourceSide() Side {
	if d == SwapYToX {
		return SideY
	}
	return SideX
}

// DestinationSide returns the side that pays the output amount
func (d Direction) DestinationSide() Side {
	if d == SwapYToX {
		return SideX
	}
	return SideY
}

// DirectionFromMint resolves the direction of a swap whose input is inputMint.
func DirectionFromMint(pool PoolState, inputMint solana.PublicKey) (Direction, error) {
	switch {
	case inputMint.Equals(pool.TokenMintX):
		return SwapXToY, nil
	case inputMint.Equals(pool.TokenMintY):
		return SwapYToX, nil
	default:
		return 0, ErrInvalidDirection.Wrapf("mint %s is not part of pool %s/%s",
			inputMint, pool.TokenMintX, pool.TokenMintY)
	}
}

// PoolState is a read-only snapshot of a pool's reserves and accumulators.
//
// Pricing never sees the raw reserves: amounts promised to pending orders
// (UserLocked*), accrued protocol fees (ProtocolFee*) and amounts locked by the
// pool itself (Locked*) are excluded first. All balances are ledger u64 amounts.
type PoolState struct {
	TokenMintX solana.PublicKey `json:"token_mint_x"`
	TokenMintY solana.PublicKey `json:"token_mint_y"`

	ReserveX uint64 `json:"reserve_x"`
	ReserveY uint64 `json:"reserve_y"`

	ProtocolFeeX uint64 `json:"protocol_fee_x"`
	ProtocolFeeY uint64 `json:"protocol_fee_y"`

	UserLockedX uint64 `json:"user_locked_x"`
	UserLockedY uint64 `json:"user_locked_y"`

	LockedX uint64 `json:"locked_x"`
	LockedY uint64 `json:"locked_y"`

	// TokenLPSupply is carried for completeness; pricing does not read it.
	TokenLPSupply uint64 `json:"token_lp_supply"`
}

// Mint returns the token mint of a side
func (p PoolState) Mint(side Side) solana.PublicKey {
	if side == SideY {
		return p.TokenMintY
	}
	return p.TokenMintX
}

// Reserve returns the raw reserve balance of a side
func (p PoolState) Reserve(side Side) uint64 {
	if side == SideY {
		return p.ReserveY
	}
	return p.ReserveX
}

// UserLocked returns the amount promised to outstanding orders on a side
func (p PoolState) UserLocked(side Side) uint64 {
	if side == SideY {
		return p.UserLockedY
	}
	return p.UserLockedX
}

// ProtocolFee returns the accrued protocol fee balance of a side
func (p PoolState) ProtocolFee(side Side) uint64 {
	if side == SideY {
		return p.ProtocolFeeY
	}
	return p.ProtocolFeeX
}

// Locked returns the amount locked by the pool itself on a side
func (p PoolState) Locked(side Side) uint64 {
	if side == SideY {
		return p.LockedY
	}
	return p.LockedX
}

// Balances holds the two pricing balances of one pool side.
type Balances struct {
	// Total is reserve minus user locked and protocol fee.
	Total uint64
	// Available is Total minus the pool locked amount.
	Available uint64
}
