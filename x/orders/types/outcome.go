package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Outcome is the finalization branch of an order
type Outcome uint8

const (
	OutcomeSettle Outcome = iota + 1
	OutcomeCancel
	OutcomeSlash
)

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case OutcomeSettle:
		return "settle"
	case OutcomeCancel:
		return "cancel"
	case OutcomeSlash:
		return "slash"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// ParseOutcome parses the String form of an outcome
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{OutcomeSettle, OutcomeCancel, OutcomeSlash} {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, ErrInvalidOutcome.Wrapf("unknown outcome %q", s)
}

// Validate rejects unknown outcomes
func (o Outcome) Validate() error {
	if o < OutcomeSettle || o > OutcomeSlash {
		return ErrInvalidOutcome.Wrapf("outcome %d", uint8(o))
	}
	return nil
}

// TerminalStatus returns the order status reached by the outcome
func (o Outcome) TerminalStatus() OrderStatus {
	switch o {
	case OutcomeSettle:
		return OrderStatusSettled
	case OutcomeCancel:
		return OrderStatusCancelled
	default:
		return OrderStatusSlashed
	}
}

// Relation is the statement a proof must attest
type Relation uint8

const (
	// RelationSettle: Commit(minOut, salt) = commitment and minOut <= realOut
	RelationSettle Relation = iota + 1
	// RelationCancel: Commit(minOut, salt) = commitment and minOut > realOut
	RelationCancel
)

// String implements fmt.Stringer
func (r Relation) String() string {
	switch r {
	case RelationSettle:
		return "settle"
	case RelationCancel:
		return "cancel"
	default:
		return fmt.Sprintf("relation(%d)", uint8(r))
	}
}

// Holds evaluates the amount part of the relation in plaintext
func (r Relation) Holds(minOut, realOut uint64) bool {
	switch r {
	case RelationSettle:
		return minOut <= realOut
	case RelationCancel:
		return minOut > realOut
	default:
		return false
	}
}

// ProofObligation is the public statement a Settle or Cancel proof must attest.
// The committed minimum output is never part of it.
type ProofObligation struct {
	Relation   Relation   `json:"relation"`
	RealOut    uint64     `json:"real_out"`
	Commitment Commitment `json:"commitment"`
}

// Statement renders the obligation for logs
func (p ProofObligation) Statement() string {
	switch p.Relation {
	case RelationSettle:
		return fmt.Sprintf("Commit(minOut, salt) = %s ∧ minOut ≤ %d", p.Commitment, p.RealOut)
	case RelationCancel:
		return fmt.Sprintf("Commit(minOut, salt) = %s ∧ minOut > %d", p.Commitment, p.RealOut)
	default:
		return p.Relation.String()
	}
}

// Witness is the private opening of a commitment
type Witness struct {
	MinOut uint64
	Salt   Salt
}

// Proof is an opaque proof produced by a Prover for one obligation
type Proof struct {
	ID         uuid.UUID       `json:"id"`
	Obligation ProofObligation `json:"obligation"`
	// A, B and C are the uncompressed proof points when the backend exposes them.
	A []byte `json:"a,omitempty"`
	B []byte `json:"b,omitempty"`
	C []byte `json:"c,omitempty"`
	// Data is the backend's own serialization of the proof.
	Data []byte `json:"data"`
}

// Decision is the result of deciding how an order must be finalized
type Decision struct {
	Outcome Outcome
	// Obligation is nil for Slash
	Obligation *ProofObligation
}
