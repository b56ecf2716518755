package keeper

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/paw-chain/sealswap/app/telemetry"
	ammtypes "github.com/paw-chain/sealswap/x/amm/types"
	"github.com/paw-chain/sealswap/x/orders/types"
)

// FinalizeRequest asks for one order to be settled, cancelled or slashed
type FinalizeRequest struct {
	Key           []byte
	Claim         types.Outcome
	CurrentHeight uint64
	// Witness opens the order commitment. Slash does not need one.
	Witness *types.Witness
	Config  ammtypes.FeeConfig
}

// FinalizeResult is the order after its transition and the proof backing it
type FinalizeResult struct {
	Order    types.Order
	Decision types.Decision
	// Proof is nil for slash
	Proof *types.Proof
}

// Finalize moves a created order into its terminal status. Checks run in a fixed
// order: expiry, amount relation, commitment opening, and only then the proof.
// Slash never reaches the prover.
func (k Keeper) Finalize(ctx context.Context, req FinalizeRequest, prover types.Prover) (res FinalizeResult, err error) {
	ctx, span := telemetry.StartModuleSpan(ctx, types.ModuleName, "finalize")
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
			telemetry.RecordError(span, err)
		}
		k.metrics.Finalizations.WithLabelValues(req.Claim.String(), status).Inc()
		k.instruments.RecordFinalization(ctx, req.Claim.String(), err)
		span.End()
	}()

	if err := req.Config.RequireNotHalted(); err != nil {
		return FinalizeResult{}, err
	}
	if err := req.Claim.Validate(); err != nil {
		return FinalizeResult{}, err
	}

	order, found, err := k.GetOrder(ctx, req.Key)
	if err != nil {
		return FinalizeResult{}, err
	}
	if !found {
		return FinalizeResult{}, types.ErrOrderNotFound.Wrapf("key %x", req.Key)
	}
	if order.Status != types.OrderStatusCreated {
		return FinalizeResult{}, types.ErrOrderFinalized.Wrapf("order is %s", order.Status)
	}

	if err := checkExpiry(req.Claim, req.CurrentHeight, order.Deadline); err != nil {
		return FinalizeResult{}, err
	}

	var minOut uint64
	if req.Claim != types.OutcomeSlash {
		if req.Witness == nil {
			return FinalizeResult{}, types.ErrCommitmentMismatch.Wrapf("%s requires the committed minimum output", req.Claim)
		}
		minOut = req.Witness.MinOut
	}

	// the reserved invariant output is the public side of the relation; the
	// destination transfer fee is taken after settlement
	decision, err := ValidateClaim(req.Claim, req.CurrentHeight, order.Deadline, minOut, order.DOut)
	if err != nil {
		return FinalizeResult{}, err
	}

	var proof *types.Proof
	if decision.Obligation != nil {
		if !order.Commitment.Opens(req.Witness.MinOut, req.Witness.Salt) {
			return FinalizeResult{}, types.ErrCommitmentMismatch.Wrapf("commitment %s", order.Commitment)
		}
		decision.Obligation.Commitment = order.Commitment

		p, err := k.prove(ctx, prover, *decision.Obligation, *req.Witness)
		if err != nil {
			return FinalizeResult{}, err
		}
		proof = &p
	}

	if err := order.Transition(decision.Outcome); err != nil {
		return FinalizeResult{}, err
	}
	if err := k.SetOrder(ctx, *order); err != nil {
		return FinalizeResult{}, err
	}
	k.metrics.OpenOrders.Dec()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.outcome", decision.Outcome.String()),
		attribute.String("order.deadline", strconv.FormatUint(order.Deadline, 10)),
		attribute.String("order.height", strconv.FormatUint(req.CurrentHeight, 10)),
	)
	k.Logger().Info("order finalized",
		"trader", order.Trader.String(),
		"outcome", decision.Outcome.String(),
		"height", req.CurrentHeight,
		"deadline", order.Deadline,
		"d_out", order.DOut,
		"actual_out", order.ActualOut,
	)

	return FinalizeResult{Order: *order, Decision: decision, Proof: proof}, nil
}

func (k Keeper) prove(ctx context.Context, prover types.Prover, obligation types.ProofObligation, witness types.Witness) (types.Proof, error) {
	relation := obligation.Relation.String()
	if prover == nil {
		return types.Proof{}, types.ErrProofFailed.Wrap("no prover configured")
	}

	k.Logger().Debug("requesting proof", "statement", obligation.Statement())

	start := time.Now()
	proof, err := prover.Prove(ctx, obligation, witness)
	elapsed := time.Since(start)
	k.metrics.ProofLatency.WithLabelValues(relation).Observe(elapsed.Seconds())
	k.instruments.RecordProof(ctx, relation, elapsed, err)
	if err != nil {
		k.metrics.ProofFailures.WithLabelValues(relation).Inc()
		return types.Proof{}, types.ErrProofFailed.Wrapf("%s: %v", relation, err)
	}
	if proof.Obligation != obligation {
		k.metrics.ProofFailures.WithLabelValues(relation).Inc()
		return types.Proof{}, types.ErrProofFailed.Wrapf("proof attests %s", proof.Obligation.Statement())
	}
	return proof, nil
}

// SlashExpired slashes every created order whose deadline is below height and
// returns the slashed orders.
func (k Keeper) SlashExpired(ctx context.Context, height uint64, cfg ammtypes.FeeConfig) ([]types.Order, error) {
	keys, err := k.ExpiredOrderKeys(ctx, height)
	if err != nil {
		return nil, err
	}

	slashed := make([]types.Order, 0, len(keys))
	for _, key := range keys {
		res, err := k.Finalize(ctx, FinalizeRequest{
			Key:           key,
			Claim:         types.OutcomeSlash,
			CurrentHeight: height,
			Config:        cfg,
		}, nil)
		if err != nil {
			return slashed, err
		}
		slashed = append(slashed, res.Order)
	}
	return slashed, nil
}
