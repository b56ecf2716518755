package types

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// RateDenominator is the fixed denominator of every fee and tolerance rate (10^6 = 100%)
	RateDenominator uint64 = 1_000_000

	// BasisPointsDenominator is the denominator of token transfer fee rates (10^4 = 100%)
	BasisPointsDenominator uint64 = 10_000
)
