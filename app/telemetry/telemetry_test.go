package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/paw-chain/sealswap/app/telemetry"
	keepertest "github.com/paw-chain/sealswap/testutil/keeper"
)

func TestValidateConfig(t *testing.T) {
	require.NoError(t, telemetry.ValidateConfig(telemetry.DefaultConfig()))

	tests := []struct {
		name   string
		mutate func(*telemetry.Config)
	}{
		{"empty endpoint", func(c *telemetry.Config) { c.OTLPEndpoint = "" }},
		{"unparsable endpoint", func(c *telemetry.Config) { c.OTLPEndpoint = "http://[::1" }},
		{"grpc scheme", func(c *telemetry.Config) { c.OTLPEndpoint = "grpc://localhost:4317" }},
		{"no host", func(c *telemetry.Config) { c.OTLPEndpoint = "http://" }},
		{"sample rate above one", func(c *telemetry.Config) { c.SampleRate = 1.5 }},
		{"negative sample rate", func(c *telemetry.Config) { c.SampleRate = -0.1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := telemetry.DefaultConfig()
			tc.mutate(&cfg)
			require.Error(t, telemetry.ValidateConfig(cfg))
		})
	}
}

func TestDisabledProvider(t *testing.T) {
	p, err := telemetry.NewProvider(telemetry.DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, p.HealthCheck())
	require.NotNil(t, p.Meter())
	require.NotNil(t, p.Instruments())
	p.Instruments().RecordQuote(context.Background(), "x_to_y", time.Millisecond, nil)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestEnabledProvider(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = true
	cfg.PrometheusEnabled = true

	p, err := telemetry.NewProvider(cfg)
	require.NoError(t, err)
	require.NoError(t, p.HealthCheck())
	require.NotNil(t, p.Instruments())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestEnabledProvider_RejectsInvalidConfig(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = true
	cfg.SampleRate = 2

	_, err := telemetry.NewProvider(cfg)
	require.Error(t, err)
}

func TestInstruments(t *testing.T) {
	instruments, collect := keepertest.Instruments(t)
	ctx := context.Background()

	instruments.RecordQuote(ctx, "x_to_y", time.Millisecond, nil)
	instruments.RecordQuote(ctx, "y_to_x", time.Millisecond, errors.New("trade too big"))
	instruments.RecordProof(ctx, "settle", time.Second, nil)
	instruments.RecordFinalization(ctx, "slash", nil)
	instruments.RecordFinalization(ctx, "settle", errors.New("order expired"))

	counts := collect()
	require.Equal(t, map[string]uint64{"success": 1, "failure": 1}, counts[telemetry.QuoteDurationName])
	require.Equal(t, map[string]uint64{"success": 1}, counts[telemetry.ProofDurationName])
	require.Equal(t, map[string]uint64{"success": 1, "failure": 1}, counts[telemetry.FinalizationsName])
}

func TestNilInstrumentsRecordNothing(t *testing.T) {
	var instruments *telemetry.Instruments
	instruments.RecordQuote(context.Background(), "x_to_y", time.Millisecond, nil)
	instruments.RecordProof(context.Background(), "cancel", time.Millisecond, nil)
	instruments.RecordFinalization(context.Background(), "cancel", nil)

	_, err := telemetry.NewInstruments(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
}

func TestSpanHelpers(t *testing.T) {
	ctx, span := telemetry.StartModuleSpan(context.Background(), "amm", "quote")
	require.NotNil(t, ctx)

	telemetry.AddSpanAttributes(span, attribute.String("quote.direction", "x_to_y"))
	telemetry.RecordError(span, errors.New("trade too big"))
	telemetry.RecordError(nil, errors.New("ignored"))
	telemetry.AddSpanAttributes(nil)
	span.End()
}
