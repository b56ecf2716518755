package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names
const (
	QuoteDurationName = "sealswap.amm.quote.duration"
	ProofDurationName = "sealswap.orders.proof.duration"
	FinalizationsName = "sealswap.orders.finalizations"
)

// Instruments are the OpenTelemetry instruments the keepers record on.
// A nil *Instruments records nothing.
type Instruments struct {
	quoteDuration metric.Float64Histogram
	proofDuration metric.Float64Histogram
	finalizations metric.Int64Counter
}

// NewInstruments creates the keeper instruments on meter
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	quoteDuration, err := meter.Float64Histogram(QuoteDurationName,
		metric.WithDescription("Time to price an exact-in quote"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	proofDuration, err := meter.Float64Histogram(ProofDurationName,
		metric.WithDescription("Time spent in the prover per settle or cancel obligation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	finalizations, err := meter.Int64Counter(FinalizationsName,
		metric.WithDescription("Order finalization attempts"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		quoteDuration: quoteDuration,
		proofDuration: proofDuration,
		finalizations: finalizations,
	}, nil
}

// RecordQuote records one quote by direction and result
func (i *Instruments) RecordQuote(ctx context.Context, direction string, elapsed time.Duration, err error) {
	if i == nil {
		return
	}
	i.quoteDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("direction", direction), statusAttr(err)))
}

// RecordProof records one prover call by relation and result
func (i *Instruments) RecordProof(ctx context.Context, relation string, elapsed time.Duration, err error) {
	if i == nil {
		return
	}
	i.proofDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("relation", relation), statusAttr(err)))
}

// RecordFinalization counts one finalization attempt by claimed outcome and result
func (i *Instruments) RecordFinalization(ctx context.Context, outcome string, err error) {
	if i == nil {
		return
	}
	i.finalizations.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome), statusAttr(err)))
}

func statusAttr(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}
