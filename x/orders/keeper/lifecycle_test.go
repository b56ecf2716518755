package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/sealswap/x/orders/keeper"
	"github.com/paw-chain/sealswap/x/orders/types"
)

func TestDecideFinalization_DeadlineIsInclusive(t *testing.T) {
	d := keeper.DecideFinalization(100, 100, 1_000, 10)
	require.Equal(t, types.OutcomeCancel, d.Outcome)
	require.NotNil(t, d.Obligation)

	d = keeper.DecideFinalization(101, 100, 1_000, 10)
	require.Equal(t, types.OutcomeSlash, d.Outcome)
	require.Nil(t, d.Obligation)
}

func TestDecideFinalization_EqualitySettles(t *testing.T) {
	d := keeper.DecideFinalization(10, 100, 500, 500)
	require.Equal(t, types.OutcomeSettle, d.Outcome)
	require.Equal(t, &types.ProofObligation{Relation: types.RelationSettle, RealOut: 500}, d.Obligation)

	d = keeper.DecideFinalization(10, 100, 501, 500)
	require.Equal(t, types.OutcomeCancel, d.Outcome)
	require.Equal(t, &types.ProofObligation{Relation: types.RelationCancel, RealOut: 500}, d.Obligation)
}

func TestDecideFinalization_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		height := rapid.Uint64().Draw(t, "height")
		deadline := rapid.Uint64().Draw(t, "deadline")
		minOut := rapid.Uint64().Draw(t, "minOut")
		output := rapid.Uint64().Draw(t, "output")

		d := keeper.DecideFinalization(height, deadline, minOut, output)

		switch {
		case height > deadline:
			require.Equal(t, types.OutcomeSlash, d.Outcome)
			require.Nil(t, d.Obligation)
		case minOut <= output:
			require.Equal(t, types.OutcomeSettle, d.Outcome)
			require.Equal(t, types.RelationSettle, d.Obligation.Relation)
		default:
			require.Equal(t, types.OutcomeCancel, d.Outcome)
			require.Equal(t, types.RelationCancel, d.Obligation.Relation)
		}

		if d.Obligation != nil {
			require.Equal(t, output, d.Obligation.RealOut)
			require.True(t, d.Obligation.Relation.Holds(minOut, output))
		}
	})
}

func TestValidateClaim(t *testing.T) {
	tests := []struct {
		name     string
		claim    types.Outcome
		height   uint64
		deadline uint64
		minOut   uint64
		output   uint64
		wantErr  error
	}{
		{"settle", types.OutcomeSettle, 50, 100, 500, 500, nil},
		{"cancel", types.OutcomeCancel, 50, 100, 501, 500, nil},
		{"slash", types.OutcomeSlash, 101, 100, 0, 500, nil},
		{"settle at deadline", types.OutcomeSettle, 100, 100, 1, 500, nil},
		{"settle after deadline", types.OutcomeSettle, 101, 100, 1, 500, types.ErrOrderExpired},
		{"cancel after deadline", types.OutcomeCancel, 101, 100, 501, 500, types.ErrOrderExpired},
		{"expiry checked before relation", types.OutcomeSettle, 101, 100, 501, 500, types.ErrOrderExpired},
		{"slash at deadline", types.OutcomeSlash, 100, 100, 0, 500, types.ErrOrderNotYetExpired},
		{"settle with high min out", types.OutcomeSettle, 50, 100, 501, 500, types.ErrRelationMismatch},
		{"cancel with low min out", types.OutcomeCancel, 50, 100, 500, 500, types.ErrRelationMismatch},
		{"unknown outcome", types.Outcome(9), 50, 100, 500, 500, types.ErrInvalidOutcome},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := keeper.ValidateClaim(tc.claim, tc.height, tc.deadline, tc.minOut, tc.output)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.claim, d.Outcome)
		})
	}
}
