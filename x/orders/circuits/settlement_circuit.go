package circuits

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/paw-chain/sealswap/x/orders/types"
)

// amountBits bounds every amount to the u64 range of the ledger
const amountBits = 64

// SettleCircuit proves that a sealed minimum output is met by the real output.
//
// Circuit Statement: "I know (minOut, salt) with MiMC(minOut, salt) = Commitment
// and minOut <= RealOut."
type SettleCircuit struct {
	// Public inputs
	RealOut    frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`

	// Private inputs
	MinOut frontend.Variable `gnark:",private"`
	Salt   frontend.Variable `gnark:",private"`
}

// Define implements the gnark Circuit interface
func (circuit *SettleCircuit) Define(api frontend.API) error {
	if err := assertOpening(api, circuit.MinOut, circuit.Salt, circuit.Commitment); err != nil {
		return err
	}
	api.ToBinary(circuit.RealOut, amountBits)

	api.AssertIsLessOrEqual(circuit.MinOut, circuit.RealOut)
	return nil
}

// GetCircuitName returns the circuit identifier
func (circuit *SettleCircuit) GetCircuitName() string {
	return "order-settle-v1"
}

// CancelCircuit proves that a sealed minimum output is above the real output.
//
// Circuit Statement: "I know (minOut, salt) with MiMC(minOut, salt) = Commitment
// and minOut > RealOut."
type CancelCircuit struct {
	// Public inputs
	RealOut    frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`

	// Private inputs
	MinOut frontend.Variable `gnark:",private"`
	Salt   frontend.Variable `gnark:",private"`
}

// Define implements the gnark Circuit interface
func (circuit *CancelCircuit) Define(api frontend.API) error {
	if err := assertOpening(api, circuit.MinOut, circuit.Salt, circuit.Commitment); err != nil {
		return err
	}
	api.ToBinary(circuit.RealOut, amountBits)

	// RealOut < 2^64, so RealOut + 1 cannot wrap the field
	api.AssertIsLessOrEqual(api.Add(circuit.RealOut, 1), circuit.MinOut)
	return nil
}

// GetCircuitName returns the circuit identifier
func (circuit *CancelCircuit) GetCircuitName() string {
	return "order-cancel-v1"
}

// assertOpening constrains commitment = MiMC(minOut, salt) with both values in u64
func assertOpening(api frontend.API, minOut, salt, commitment frontend.Variable) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return fmt.Errorf("failed to initialize MiMC: %w", err)
	}

	api.ToBinary(minOut, amountBits)
	api.ToBinary(salt, amountBits)

	h.Write(minOut, salt)
	api.AssertIsEqual(h.Sum(), commitment)
	return nil
}

// NamedCircuit is a circuit with a stable identifier
type NamedCircuit interface {
	frontend.Circuit
	GetCircuitName() string
}

// ForRelation returns an empty circuit for compiling the relation
func ForRelation(relation types.Relation) (NamedCircuit, error) {
	switch relation {
	case types.RelationSettle:
		return &SettleCircuit{}, nil
	case types.RelationCancel:
		return &CancelCircuit{}, nil
	default:
		return nil, fmt.Errorf("no circuit for relation %s", relation)
	}
}

// Assignment builds the full witness assignment for an obligation
func Assignment(obligation types.ProofObligation, witness types.Witness) (NamedCircuit, error) {
	realOut := obligation.RealOut
	commitment := obligation.Commitment.BigInt()
	minOut := witness.MinOut
	salt := witness.Salt.Uint64()

	switch obligation.Relation {
	case types.RelationSettle:
		return &SettleCircuit{RealOut: realOut, Commitment: commitment, MinOut: minOut, Salt: salt}, nil
	case types.RelationCancel:
		return &CancelCircuit{RealOut: realOut, Commitment: commitment, MinOut: minOut, Salt: salt}, nil
	default:
		return nil, fmt.Errorf("no circuit for relation %s", obligation.Relation)
	}
}

// PublicAssignment builds the public-only assignment used for verification
func PublicAssignment(obligation types.ProofObligation) (NamedCircuit, error) {
	return Assignment(obligation, types.Witness{})
}
