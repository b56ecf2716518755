package keeper

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	orderskeeper "github.com/paw-chain/sealswap/x/orders/keeper"
	orderstypes "github.com/paw-chain/sealswap/x/orders/types"
)

// OrdersKeeper creates an orders keeper over an in-memory database
func OrdersKeeper(t testing.TB) (*orderskeeper.Keeper, context.Context) {
	t.Helper()
	db := dbm.NewMemDB()
	t.Cleanup(func() { _ = db.Close() })
	return orderskeeper.NewKeeper(db, log.NewNopLogger()), context.Background()
}

// Trader is the trader used by test orders
var Trader = solana.MustPublicKeyFromBase58("9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM")

// NewOrder returns a created order reserving dOut with minOut sealed under salt.
// The order carries no destination transfer fee, so ActualOut equals dOut.
func NewOrder(dOut, minOut uint64, salt orderstypes.Salt, deadline uint64) orderstypes.Order {
	return orderstypes.Order{
		Trader:      Trader,
		TokenMintX:  MintX,
		TokenMintY:  MintY,
		IsXToY:      true,
		ActualIn:    10_000,
		ExchangeIn:  10_000,
		ActualOut:   dOut,
		FromToLock:  9_871,
		DIn:         9_970,
		DOut:        dOut,
		Deadline:    deadline,
		ProtocolFee: 3,
		Commitment:  orderstypes.Commit(minOut, salt),
		Status:      orderstypes.OrderStatusCreated,
	}
}

// ErrFakeProof is returned by FakeProver when the witness does not satisfy the obligation
var ErrFakeProof = errors.New("relation does not hold")

// FakeProver accepts an obligation iff the witness opens the commitment and the
// plaintext amount relation holds. It records every call.
type FakeProver struct {
	mu    sync.Mutex
	Calls []orderstypes.ProofObligation
	// Err, when set, fails every call
	Err error
}

// Prove implements types.Prover
func (p *FakeProver) Prove(_ context.Context, obligation orderstypes.ProofObligation, witness orderstypes.Witness) (orderstypes.Proof, error) {
	p.mu.Lock()
	p.Calls = append(p.Calls, obligation)
	p.mu.Unlock()

	if p.Err != nil {
		return orderstypes.Proof{}, p.Err
	}
	if !obligation.Commitment.Opens(witness.MinOut, witness.Salt) ||
		!obligation.Relation.Holds(witness.MinOut, obligation.RealOut) {
		return orderstypes.Proof{}, ErrFakeProof
	}
	return orderstypes.Proof{
		ID:         uuid.New(),
		Obligation: obligation,
		Data:       []byte(obligation.Statement()),
	}, nil
}

// CallCount returns the number of Prove calls
func (p *FakeProver) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}

// FakeVerifier accepts proofs produced by FakeProver for the same obligation
type FakeVerifier struct{}

// Verify implements types.Verifier
func (FakeVerifier) Verify(_ context.Context, obligation orderstypes.ProofObligation, proof orderstypes.Proof) error {
	if proof.Obligation != obligation || string(proof.Data) != obligation.Statement() {
		return ErrFakeProof
	}
	return nil
}

// HeightSequence serves heights from a fixed script, repeating the last one.
// A zero entry in Errs at the same index means the poll succeeds.
type HeightSequence struct {
	mu      sync.Mutex
	Heights []uint64
	Errs    []error
	polls   int
}

// CurrentHeight implements types.HeightSource
func (s *HeightSequence) CurrentHeight(context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.polls
	s.polls++
	if i < len(s.Errs) && s.Errs[i] != nil {
		return 0, s.Errs[i]
	}
	if i >= len(s.Heights) {
		i = len(s.Heights) - 1
	}
	return s.Heights[i], nil
}

// Polls returns the number of CurrentHeight calls
func (s *HeightSequence) Polls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// LaggingReader hides an order for the first Lag reads, mimicking a ledger read
// that trails the write creating the order.
type LaggingReader struct {
	mu    sync.Mutex
	Order *orderstypes.Order
	Lag   int
	Err   error
	reads int
}

// GetOrder implements types.OrderReader
func (r *LaggingReader) GetOrder(context.Context, []byte) (*orderstypes.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads++
	if r.Err != nil {
		return nil, false, r.Err
	}
	if r.Order == nil || r.reads <= r.Lag {
		return nil, false, nil
	}
	return r.Order, true, nil
}

// Reads returns the number of GetOrder calls
func (r *LaggingReader) Reads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}
