package types

import (
	"cosmossdk.io/errors"
)

// Orders module sentinel errors
var (
	ErrOrderExpired       = errors.Register(ModuleName, 2, "order expired")
	ErrOrderNotYetExpired = errors.Register(ModuleName, 3, "order not yet expired")
	ErrRelationMismatch   = errors.Register(ModuleName, 4, "amount relation does not match claimed outcome")
	ErrOrderFinalized     = errors.Register(ModuleName, 5, "order already finalized")
	ErrOrderExists        = errors.Register(ModuleName, 6, "order already exists")
	ErrOrderNotFound      = errors.Register(ModuleName, 7, "order not found")
	ErrCommitmentMismatch = errors.Register(ModuleName, 8, "witness does not open commitment")
	ErrProofFailed        = errors.Register(ModuleName, 9, "proof generation or verification failed")
	ErrInvalidOutcome     = errors.Register(ModuleName, 10, "invalid outcome")
	ErrInvalidOrder       = errors.Register(ModuleName, 11, "invalid order")
)
