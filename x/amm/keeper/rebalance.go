package keeper

import (
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/paw-chain/sealswap/x/amm/types"
)

// toleranceScale folds the two percentage conversions of the tolerance check
const toleranceScale = 100

// RebalancePoolRatio picks the integer amount of the source token to lock on the
// pool side so that the visible source/destination ratio stays as close as possible
// to its pre-trade value.
//
// For a candidate lock L the new ratio is (currentSource - L) / remaining where
// remaining = currentDestination - toAmountSwapped, and the original ratio is
// originalSource / originalDestination. Both share the denominator
// remaining * originalDestination, so candidates are compared through the exact
// integer numerator
//
//	|(currentSource - L) * originalDestination - remaining * originalSource|
//
// The real solution is exact = currentSource - remaining * originalSource / originalDestination.
// Candidates are scanned in ascending order over
// [max(0, floor(exact) - 1), min(currentSource, ceil(exact) + 1)]; the first
// candidate with the smallest distance wins and a candidate that empties the
// source side is never chosen.
func RebalancePoolRatio(
	toAmountSwapped uint64,
	currentSourceAmount uint64,
	currentDestinationAmount uint64,
	originalSourceAmount uint64,
	originalDestinationAmount uint64,
	ratioChangeToleranceRate uint64,
) (types.RebalanceResult, error) {
	if toAmountSwapped >= currentDestinationAmount ||
		currentSourceAmount == 0 ||
		currentDestinationAmount == 0 ||
		originalSourceAmount == 0 ||
		originalDestinationAmount == 0 {
		return types.RebalanceResult{
			FromToLock:              0,
			IsRateToleranceExceeded: true,
			Drift:                   math.LegacyZeroDec(),
		}, nil
	}

	remainingDestination := currentDestinationAmount - toAmountSwapped

	// target = remaining * originalSource; the ratio numerators are compared against it
	target, err := CheckedMul128(Wide(remainingDestination), Wide(originalSourceAmount))
	if err != nil {
		return types.RebalanceResult{}, err
	}
	scaledSource, err := CheckedMul128(Wide(currentSourceAmount), Wide(originalDestinationAmount))
	if err != nil {
		return types.RebalanceResult{}, err
	}

	var fromToLock uint64
	var bestDistance *uint256.Int

	lo, hi, ok := rebalanceWindow(scaledSource, target, Wide(originalDestinationAmount), currentSourceAmount)
	if ok {
		for lock := lo; ; lock++ {
			if newSource := currentSourceAmount - lock; newSource != 0 {
				distance, err := ratioDistance(newSource, originalDestinationAmount, target)
				if err != nil {
					return types.RebalanceResult{}, err
				}
				if bestDistance == nil || distance.Lt(bestDistance) {
					fromToLock = lock
					bestDistance = distance
				}
			}
			if lock == hi {
				break
			}
		}
	}

	newSource, err := CheckedSub64("rebalance.new_source", currentSourceAmount, fromToLock)
	if err != nil {
		return types.RebalanceResult{}, err
	}
	distance, err := ratioDistance(newSource, originalDestinationAmount, target)
	if err != nil {
		return types.RebalanceResult{}, err
	}

	// drift = distance / target. The ledger compares drift / 100 against
	// tolerance / RateDenominator * 100, which is distance * 100 > target * tolerance.
	// target is below 2^128 and tolerance below 2^64, the products fit in 256 bits.
	lhs := new(uint256.Int).Mul(distance, Wide(toleranceScale))
	rhs := new(uint256.Int).Mul(target, Wide(ratioChangeToleranceRate))

	return types.RebalanceResult{
		FromToLock:              fromToLock,
		IsRateToleranceExceeded: lhs.Gt(rhs),
		Drift:                   math.LegacyNewDecFromBigInt(distance.ToBig()).Quo(math.LegacyNewDecFromBigInt(target.ToBig())),
	}, nil
}

// rebalanceWindow returns the inclusive candidate range around
// exact = (scaledSource - target) / originalDestination, clamped to
// [0, currentSource]. ok is false when the clamped range is empty.
func rebalanceWindow(scaledSource, target, originalDestination *uint256.Int, currentSource uint64) (lo, hi uint64, ok bool) {
	if !scaledSource.Lt(target) {
		numerator := new(uint256.Int).Sub(scaledSource, target)
		quotient, remainder := new(uint256.Int).DivMod(numerator, originalDestination, new(uint256.Int))

		// quotient <= scaledSource / originalDestination = currentSource
		floor := quotient.Uint64()
		ceil := floor
		if !remainder.IsZero() {
			ceil++
		}

		if floor > 0 {
			lo = floor - 1
		}
		if ceil >= currentSource {
			hi = currentSource
		} else {
			hi = ceil + 1
		}
		return lo, hi, lo <= hi
	}

	// exact < 0: ceil(exact) = -floor((target - scaledSource) / originalDestination)
	numerator := new(uint256.Int).Sub(target, scaledSource)
	quotient := new(uint256.Int).Div(numerator, originalDestination)
	switch {
	case quotient.IsZero():
		return 0, min(1, currentSource), true
	case quotient.Eq(uint256.NewInt(1)):
		return 0, 0, true
	default:
		return 0, 0, false
	}
}

// ratioDistance returns |newSource * originalDestination - target|
func ratioDistance(newSource, originalDestination uint64, target *uint256.Int) (*uint256.Int, error) {
	scaled, err := CheckedMul128(Wide(newSource), Wide(originalDestination))
	if err != nil {
		return nil, err
	}
	if scaled.Lt(target) {
		return new(uint256.Int).Sub(target, scaled), nil
	}
	return new(uint256.Int).Sub(scaled, target), nil
}
