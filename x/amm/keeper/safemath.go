package keeper

import (
	"github.com/holiman/uint256"

	"github.com/paw-chain/sealswap/x/amm/types"
)

// SafeMath provides the checked fixed-width arithmetic of the pricing core.
//
// The ledger program computes in two widths: u128 for reserve x amount products
// ("wide") and u64 for transferable amounts ("narrow"). Wide values are carried in
// uint256.Int and every result is bounded to 128 bits, so an operation that would
// wrap on the ledger fails here too. All narrowing goes through ToNarrow.

// MaxWide is the largest wide (u128) value
var MaxWide = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

// Wide lifts a narrow amount into the wide width
func Wide(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func fitsWide(v *uint256.Int) bool {
	return v.BitLen() <= 128
}

// CheckedAdd128 adds two wide values with overflow checking
func CheckedAdd128(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow || !fitsWide(sum) {
		return nil, types.ErrMathOverflow.Wrapf("checked_add_128: %s + %s", a.Dec(), b.Dec())
	}
	return sum, nil
}

// CheckedSub subtracts two values with underflow checking
func CheckedSub(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Lt(b) {
		return nil, types.ErrMathOverflow.Wrapf("checked_sub: %s - %s underflows", a.Dec(), b.Dec())
	}
	return new(uint256.Int).Sub(a, b), nil
}

// CheckedMul128 multiplies two wide values with overflow checking
func CheckedMul128(a, b *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow || !fitsWide(product) {
		return nil, types.ErrMathOverflow.Wrapf("checked_mul_128: %s * %s", a.Dec(), b.Dec())
	}
	return product, nil
}

// CheckedDiv divides with division by zero checking. The quotient truncates.
func CheckedDiv(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("checked_div: %s / 0", a.Dec())
	}
	return new(uint256.Int).Div(a, b), nil
}

// CeilDiv128 computes ceil(amount * numerator / denominator) as
// (amount * numerator + denominator - 1) / denominator, every step checked.
func CeilDiv128(amount, numerator, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("ceil_div_128: %s * %s / 0", amount.Dec(), numerator.Dec())
	}
	product, err := CheckedMul128(amount, numerator)
	if err != nil {
		return nil, err
	}
	padded, err := CheckedAdd128(product, denominator)
	if err != nil {
		return nil, err
	}
	padded, err = CheckedSub(padded, uint256.NewInt(1))
	if err != nil {
		return nil, err
	}
	return CheckedDiv(padded, denominator)
}

// FloorDiv128 computes floor(amount * numerator / denominator)
func FloorDiv128(amount, numerator, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, types.ErrDivisionByZero.Wrapf("floor_div_128: %s * %s / 0", amount.Dec(), numerator.Dec())
	}
	product, err := CheckedMul128(amount, numerator)
	if err != nil {
		return nil, err
	}
	return CheckedDiv(product, denominator)
}

// ToNarrow checks that a wide value fits the narrow (u64) settlement width.
func ToNarrow(op string, v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, types.ErrMathOverflow.Wrapf("%s: %s does not fit u64", op, v.Dec())
	}
	return v.Uint64(), nil
}

// CheckedSub64 subtracts two narrow values with underflow checking
func CheckedSub64(op string, a, b uint64) (uint64, error) {
	if a < b {
		return 0, types.ErrMathOverflow.Wrapf("%s: %d - %d underflows", op, a, b)
	}
	return a - b, nil
}

// CheckedAdd64 adds two narrow values with overflow checking
func CheckedAdd64(op string, a, b uint64) (uint64, error) {
	if a > (1<<64-1)-b {
		return 0, types.ErrMathOverflow.Wrapf("%s: %d + %d overflows u64", op, a, b)
	}
	return a + b, nil
}
