package types

import (
	"context"
)

// Prover produces a proof for exactly one settle or cancel obligation. A Prover
// must fail rather than return a proof when the witness does not satisfy the
// obligation.
type Prover interface {
	Prove(ctx context.Context, obligation ProofObligation, witness Witness) (Proof, error)
}

// Verifier checks a proof against the public obligation only.
type Verifier interface {
	Verify(ctx context.Context, obligation ProofObligation, proof Proof) error
}

// OrderReader reads an order by store key. A missing order is (nil, false, nil).
type OrderReader interface {
	GetOrder(ctx context.Context, key []byte) (*Order, bool, error)
}

// HeightSource reports the current ledger height.
type HeightSource interface {
	CurrentHeight(ctx context.Context) (uint64, error)
}
