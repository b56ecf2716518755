package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrMathOverflow                  = errors.Register(ModuleName, 2, "math overflow")
	ErrDivisionByZero                = errors.Register(ModuleName, 3, "division by zero")
	ErrInputAmountTooSmall           = errors.Register(ModuleName, 4, "input amount too small")
	ErrTradeTooBig                   = errors.Register(ModuleName, 5, "trade too big")
	ErrInsufficientPoolTokenXBalance = errors.Register(ModuleName, 6, "insufficient pool token X balance")
	ErrInsufficientPoolTokenYBalance = errors.Register(ModuleName, 7, "insufficient pool token Y balance")
	ErrPoolHalted                    = errors.Register(ModuleName, 8, "pool is halted")
	ErrInvalidParams                 = errors.Register(ModuleName, 9, "invalid parameters")
	ErrUnsupportedSwapMode           = errors.Register(ModuleName, 10, "unsupported swap mode")
	ErrInvalidDirection              = errors.Register(ModuleName, 11, "invalid swap direction")
	ErrInvalidTransferFee            = errors.Register(ModuleName, 12, "invalid transfer fee")
)

// ErrInsufficientPoolBalance returns the side-specific insufficient balance error.
func ErrInsufficientPoolBalance(side Side) *errors.Error {
	if side == SideY {
		return ErrInsufficientPoolTokenYBalance
	}
	return ErrInsufficientPoolTokenXBalance
}

// IsInsufficientPoolBalance reports whether err is an insufficient balance error for either side.
func IsInsufficientPoolBalance(err error) bool {
	return ErrInsufficientPoolTokenXBalance.Is(err) || ErrInsufficientPoolTokenYBalance.Is(err)
}
