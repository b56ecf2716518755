package types

import (
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
)

// TransferFee is one epoch entry of a token-extension transfer fee schedule.
type TransferFee struct {
	Epoch       uint64 `json:"epoch"`
	BasisPoints uint16 `json:"basis_points"`
	MaximumFee  uint64 `json:"maximum_fee"`
}

var _ TransferFeeCalculator = TransferFee{}

// Validate validates the fee entry
func (f TransferFee) Validate() error {
	if uint64(f.BasisPoints) > BasisPointsDenominator {
		return ErrInvalidTransferFee.Wrapf("basis points %d exceed %d", f.BasisPoints, BasisPointsDenominator)
	}
	return nil
}

// TransferFee returns min(ceil(amount * bps / 10^4), MaximumFee).
func (f TransferFee) TransferFee(amount uint64) (uint64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	if f.BasisPoints == 0 || amount == 0 {
		return 0, nil
	}

	// amount * bps < 2^64 * 10^4, the ceiling stays far below 2^256
	num := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(uint64(f.BasisPoints)))
	num.AddUint64(num, BasisPointsDenominator-1)
	num.Div(num, uint256.NewInt(BasisPointsDenominator))

	if !num.IsUint64() || num.Uint64() > f.MaximumFee {
		return f.MaximumFee, nil
	}
	return num.Uint64(), nil
}

// TransferFeeConfig holds the older and newer fee entries of a mint.
type TransferFeeConfig struct {
	Older TransferFee `json:"older_transfer_fee"`
	Newer TransferFee `json:"newer_transfer_fee"`
}

// Validate validates both entries and their epoch order
func (c TransferFeeConfig) Validate() error {
	if err := c.Older.Validate(); err != nil {
		return err
	}
	if err := c.Newer.Validate(); err != nil {
		return err
	}
	if c.Older.Epoch > c.Newer.Epoch {
		return ErrInvalidTransferFee.Wrapf("older fee epoch %d is after newer fee epoch %d", c.Older.Epoch, c.Newer.Epoch)
	}
	return nil
}

// EpochFee returns the fee entry in force at epoch.
func (c TransferFeeConfig) EpochFee(epoch uint64) TransferFee {
	if epoch >= c.Newer.Epoch {
		return c.Newer
	}
	return c.Older
}

// TransferFeeSchedules holds the transfer fee configuration of each mint that
// has one. A mint without an entry is charged no transfer fee.
type TransferFeeSchedules map[solana.PublicKey]TransferFeeConfig

// Validate validates every schedule
func (s TransferFeeSchedules) Validate() error {
	for mint, cfg := range s {
		if err := cfg.Validate(); err != nil {
			return ErrInvalidTransferFee.Wrapf("mint %s: %s", mint, err)
		}
	}
	return nil
}

// Calculator resolves the fee charged on transfers of mint during epoch
func (s TransferFeeSchedules) Calculator(mint solana.PublicKey, epoch uint64) (TransferFeeCalculator, error) {
	cfg, ok := s[mint]
	if !ok {
		return NoTransferFee{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.EpochFee(epoch), nil
}

// NoTransferFee is a calculator for mints without a transfer fee extension.
type NoTransferFee struct{}

// TransferFee always returns zero
func (NoTransferFee) TransferFee(uint64) (uint64, error) { return 0, nil }
