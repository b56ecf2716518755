package circuits

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/sealswap/x/orders/types"
)

func settleAssignment(minOut, realOut, saltValue uint64) *SettleCircuit {
	salt := types.SaltFromUint64(saltValue)
	return &SettleCircuit{
		RealOut:    realOut,
		Commitment: types.Commit(minOut, salt).BigInt(),
		MinOut:     minOut,
		Salt:       salt.Uint64(),
	}
}

func cancelAssignment(minOut, realOut, saltValue uint64) *CancelCircuit {
	salt := types.SaltFromUint64(saltValue)
	return &CancelCircuit{
		RealOut:    realOut,
		Commitment: types.Commit(minOut, salt).BigInt(),
		MinOut:     minOut,
		Salt:       salt.Uint64(),
	}
}

func TestSettleCircuit(t *testing.T) {
	assert := test.NewAssert(t)
	opts := test.WithCurves(ecc.BN254)

	assert.SolvingSucceeded(new(SettleCircuit), settleAssignment(500, 500, 17), opts)
	assert.SolvingSucceeded(new(SettleCircuit), settleAssignment(0, 19_743, 17), opts)
	assert.SolvingSucceeded(new(SettleCircuit), settleAssignment(^uint64(0), ^uint64(0), ^uint64(0)), opts)

	assert.SolvingFailed(new(SettleCircuit), settleAssignment(501, 500, 17), opts)
}

func TestCancelCircuit(t *testing.T) {
	assert := test.NewAssert(t)
	opts := test.WithCurves(ecc.BN254)

	assert.SolvingSucceeded(new(CancelCircuit), cancelAssignment(501, 500, 17), opts)
	assert.SolvingSucceeded(new(CancelCircuit), cancelAssignment(^uint64(0), 0, 3), opts)

	assert.SolvingFailed(new(CancelCircuit), cancelAssignment(500, 500, 17), opts)
	assert.SolvingFailed(new(CancelCircuit), cancelAssignment(1, 19_743, 17), opts)
}

func TestCircuitsRejectWrongOpening(t *testing.T) {
	assert := test.NewAssert(t)
	opts := test.WithCurves(ecc.BN254)

	settle := settleAssignment(400, 500, 17)
	settle.Salt = uint64(18)
	assert.SolvingFailed(new(SettleCircuit), settle, opts)

	// a lower claimed minimum under the original commitment
	settle = settleAssignment(400, 500, 17)
	settle.MinOut = uint64(1)
	assert.SolvingFailed(new(SettleCircuit), settle, opts)

	cancel := cancelAssignment(600, 500, 17)
	cancel.Commitment = types.Commit(601, types.SaltFromUint64(17)).BigInt()
	assert.SolvingFailed(new(CancelCircuit), cancel, opts)
}

func TestCircuitsRejectOutOfRangeAmounts(t *testing.T) {
	assert := test.NewAssert(t)
	opts := test.WithCurves(ecc.BN254)

	settle := settleAssignment(400, 500, 17)
	settle.RealOut = new(big.Int).Lsh(big.NewInt(1), 64)
	assert.SolvingFailed(new(SettleCircuit), settle, opts)
}

func TestAssignment(t *testing.T) {
	salt := types.SaltFromUint64(9)
	commitment := types.Commit(400, salt)

	c, err := Assignment(types.ProofObligation{Relation: types.RelationSettle, RealOut: 500, Commitment: commitment},
		types.Witness{MinOut: 400, Salt: salt})
	require.NoError(t, err)
	require.IsType(t, &SettleCircuit{}, c)
	require.Equal(t, "order-settle-v1", c.GetCircuitName())

	c, err = PublicAssignment(types.ProofObligation{Relation: types.RelationCancel, RealOut: 500, Commitment: commitment})
	require.NoError(t, err)
	require.IsType(t, &CancelCircuit{}, c)

	_, err = Assignment(types.ProofObligation{}, types.Witness{})
	require.Error(t, err)
	_, err = ForRelation(types.Relation(0))
	require.Error(t, err)
}
