package zk

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/backend/groth16"
	groth16bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/google/uuid"

	"github.com/paw-chain/sealswap/x/orders/circuits"
	"github.com/paw-chain/sealswap/x/orders/types"
)

// relations served by the backend, in initialization order
var relations = []types.Relation{types.RelationSettle, types.RelationCancel}

// circuitKeys holds the compiled circuit and keys for a single relation
type circuitKeys struct {
	name string
	ccs  constraint.ConstraintSystem
	pk   groth16.ProvingKey
	vk   groth16.VerifyingKey
}

// Function variables for testing
var (
	groth16Verify = groth16.Verify
	groth16Setup  = groth16.Setup
)

// SetGroth16Setup allows tests to stub key generation.
func SetGroth16Setup(fn func(constraint.ConstraintSystem) (groth16.ProvingKey, groth16.VerifyingKey, error)) {
	groth16Setup = fn
}

// Groth16SetupFunc exposes the current setup function (useful for restoring after stubs).
func Groth16SetupFunc() func(constraint.ConstraintSystem) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	return groth16Setup
}

// SetGroth16Verify allows tests to stub proof verification.
func SetGroth16Verify(fn func(groth16.Proof, groth16.VerifyingKey, witness.Witness, ...backend.VerifierOption) error) {
	groth16Verify = fn
}

// Groth16VerifyFunc exposes the current verify function.
func Groth16VerifyFunc() func(groth16.Proof, groth16.VerifyingKey, witness.Witness, ...backend.VerifierOption) error {
	return groth16Verify
}

// Backend proves and verifies settle and cancel obligations with Groth16 over
// BN254. It implements both types.Prover and types.Verifier.
type Backend struct {
	mu     sync.RWMutex
	keys   map[types.Relation]*circuitKeys
	logger log.Logger
}

var (
	_ types.Prover   = (*Backend)(nil)
	_ types.Verifier = (*Backend)(nil)
)

// NewBackend creates an uninitialized backend
func NewBackend(logger log.Logger) *Backend {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Backend{
		keys:   make(map[types.Relation]*circuitKeys),
		logger: logger.With("module", "x/"+types.ModuleName, "component", "zk"),
	}
}

// Initialize compiles both circuits and generates their keys. It is a no-op
// once the backend is initialized.
func (b *Backend) Initialize(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.keys) == len(relations) {
		return nil
	}

	b.logger.Info("initializing settlement circuits")
	for _, relation := range relations {
		if err := ctx.Err(); err != nil {
			return err
		}

		circuit, err := circuits.ForRelation(relation)
		if err != nil {
			return err
		}

		start := time.Now()
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuit)
		if err != nil {
			return fmt.Errorf("failed to compile %s circuit: %w", circuit.GetCircuitName(), err)
		}

		pk, vk, err := groth16Setup(ccs)
		if err != nil {
			return fmt.Errorf("failed to setup %s circuit: %w", circuit.GetCircuitName(), err)
		}

		b.keys[relation] = &circuitKeys{name: circuit.GetCircuitName(), ccs: ccs, pk: pk, vk: vk}
		b.logger.Info("circuit ready",
			"circuit", circuit.GetCircuitName(),
			"constraints", ccs.GetNbConstraints(),
			"duration", time.Since(start),
		)
	}
	return nil
}

// IsInitialized returns whether both circuits are ready
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.keys) == len(relations)
}

func (b *Backend) keysFor(relation types.Relation) (*circuitKeys, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys, ok := b.keys[relation]
	if !ok {
		return nil, fmt.Errorf("circuit for relation %s not initialized", relation)
	}
	return keys, nil
}

// Prove implements types.Prover. Solving fails when the witness does not
// satisfy the obligation, so no proof exists for a false statement.
func (b *Backend) Prove(ctx context.Context, obligation types.ProofObligation, w types.Witness) (types.Proof, error) {
	keys, err := b.keysFor(obligation.Relation)
	if err != nil {
		return types.Proof{}, err
	}

	assignment, err := circuits.Assignment(obligation, w)
	if err != nil {
		return types.Proof{}, err
	}
	fullWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return types.Proof{}, fmt.Errorf("failed to create witness: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return types.Proof{}, err
	}

	proof, err := groth16.Prove(keys.ccs, keys.pk, fullWitness)
	if err != nil {
		return types.Proof{}, fmt.Errorf("failed to prove %s: %w", keys.name, err)
	}

	buf := new(bytes.Buffer)
	if _, err := proof.WriteTo(buf); err != nil {
		return types.Proof{}, fmt.Errorf("failed to serialize proof: %w", err)
	}

	out := types.Proof{
		ID:         uuid.New(),
		Obligation: obligation,
		Data:       buf.Bytes(),
	}

	if p, ok := proof.(*groth16bn254.Proof); ok {
		// A is negated for pairing-check verifiers
		var negA curve.G1Affine
		negA.Neg(&p.Ar)
		a := negA.RawBytes()
		bs := p.Bs.RawBytes()
		c := p.Krs.RawBytes()
		out.A, out.B, out.C = a[:], bs[:], c[:]
	}

	b.logger.Debug("proof generated", "circuit", keys.name, "proof_id", out.ID.String())
	return out, nil
}

// Verify implements types.Verifier against the public obligation only
func (b *Backend) Verify(ctx context.Context, obligation types.ProofObligation, proof types.Proof) error {
	if proof.Obligation != obligation {
		return fmt.Errorf("proof %s attests a different obligation", proof.ID)
	}

	keys, err := b.keysFor(obligation.Relation)
	if err != nil {
		return err
	}

	p := groth16.NewProof(ecc.BN254)
	if _, err := p.ReadFrom(bytes.NewReader(proof.Data)); err != nil {
		return fmt.Errorf("failed to deserialize proof: %w", err)
	}

	assignment, err := circuits.PublicAssignment(obligation)
	if err != nil {
		return err
	}
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("failed to create witness: %w", err)
	}

	if err := groth16Verify(p, keys.vk, publicWitness); err != nil {
		return fmt.Errorf("%s proof verification failed: %w", keys.name, err)
	}
	return nil
}

// ExportVerifyingKeys exports the verifying keys by circuit name
func (b *Backend) ExportVerifyingKeys() (map[string][]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.keys) != len(relations) {
		return nil, fmt.Errorf("circuits not initialized")
	}

	out := make(map[string][]byte, len(b.keys))
	for _, keys := range b.keys {
		buf := new(bytes.Buffer)
		if _, err := keys.vk.WriteTo(buf); err != nil {
			return nil, fmt.Errorf("failed to serialize %s verifying key: %w", keys.name, err)
		}
		out[keys.name] = buf.Bytes()
	}
	return out, nil
}
