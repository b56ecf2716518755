package keeper

import (
	"github.com/paw-chain/sealswap/x/orders/types"
)

// DecideFinalization picks the only valid transition of an order.
//
// Expiry is strict: an order whose deadline equals the current height can still
// settle or cancel. Past the deadline the order is always slashed, whatever the
// amounts say, and no proof is required. Before it, the committed minimum output
// selects settle (minOut <= output) or cancel, each with the relation a proof
// must attest.
func DecideFinalization(currentHeight, deadline, committedMinOut, observedOutput uint64) types.Decision {
	if currentHeight > deadline {
		return types.Decision{Outcome: types.OutcomeSlash}
	}

	relation := types.RelationCancel
	outcome := types.OutcomeCancel
	if committedMinOut <= observedOutput {
		relation = types.RelationSettle
		outcome = types.OutcomeSettle
	}

	return types.Decision{
		Outcome: outcome,
		Obligation: &types.ProofObligation{
			Relation: relation,
			RealOut:  observedOutput,
		},
	}
}

// ValidateClaim checks a caller's claimed outcome against the order's amounts and
// returns the decision to execute. Expiry is checked first, then the amount
// relation; the obligation is only stated once both agree with the claim.
func ValidateClaim(claim types.Outcome, currentHeight, deadline, committedMinOut, observedOutput uint64) (types.Decision, error) {
	if err := claim.Validate(); err != nil {
		return types.Decision{}, err
	}

	if err := checkExpiry(claim, currentHeight, deadline); err != nil {
		return types.Decision{}, err
	}

	decision := DecideFinalization(currentHeight, deadline, committedMinOut, observedOutput)
	if decision.Outcome != claim {
		return types.Decision{}, types.ErrRelationMismatch.Wrapf(
			"claimed %s but amounts require %s (output %d)", claim, decision.Outcome, observedOutput)
	}
	return decision, nil
}

// checkExpiry rejects a slash before the deadline and anything else after it
func checkExpiry(claim types.Outcome, currentHeight, deadline uint64) error {
	expired := currentHeight > deadline
	switch {
	case claim == types.OutcomeSlash && !expired:
		return types.ErrOrderNotYetExpired.Wrapf(
			"height %d has not passed deadline %d", currentHeight, deadline)
	case claim != types.OutcomeSlash && expired:
		return types.ErrOrderExpired.Wrapf(
			"cannot %s at height %d past deadline %d", claim, currentHeight, deadline)
	}
	return nil
}
