package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	serviceName    = "sealswap"
	serviceVersion = "0.1.0"

	instrumentationName = "github.com/paw-chain/sealswap"
)

// Provider owns the trace and metric pipelines of one process. When telemetry
// is disabled it hands out instruments on the global no-op meter.
type Provider struct {
	config      Config
	traces      *tracesdk.TracerProvider
	metrics     *metricsdk.MeterProvider
	instruments *Instruments
}

// NewProvider builds the pipelines enabled by cfg and installs them globally
func NewProvider(cfg Config) (*Provider, error) {
	p := &Provider{config: cfg}

	if cfg.Enabled {
		if err := ValidateConfig(cfg); err != nil {
			return nil, fmt.Errorf("invalid telemetry config: %w", err)
		}

		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				semconv.ServiceName(serviceName),
				semconv.ServiceVersion(serviceVersion),
				attribute.String("environment", cfg.Environment),
				attribute.String("ledger.cluster", cfg.Cluster),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create resource: %w", err)
		}

		if p.traces, err = newTracerProvider(cfg, res); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(p.traces)

		if cfg.PrometheusEnabled {
			if p.metrics, err = newMeterProvider(res); err != nil {
				return nil, err
			}
			otel.SetMeterProvider(p.metrics)
		}
	}

	instruments, err := NewInstruments(p.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}
	p.instruments = instruments

	return p, nil
}

func newTracerProvider(cfg Config, res *resource.Resource) (*tracesdk.TracerProvider, error) {
	exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(
		otlptracehttp.WithEndpointURL(strings.TrimSuffix(cfg.OTLPEndpoint, "/")+"/v1/traces"),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter, tracesdk.WithBatchTimeout(5*time.Second)),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(cfg.SampleRate))),
	), nil
}

func newMeterProvider(res *resource.Resource) (*metricsdk.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	return metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	), nil
}

// Meter returns the meter instruments are created on
func (p *Provider) Meter() metric.Meter {
	if p.metrics != nil {
		return p.metrics.Meter(instrumentationName)
	}
	return otel.GetMeterProvider().Meter(instrumentationName)
}

// Instruments returns the keeper instruments bound to this provider's meter
func (p *Provider) Instruments() *Instruments {
	return p.instruments
}

// HealthCheck reports a pipeline the config enables but that was not built
func (p *Provider) HealthCheck() error {
	switch {
	case !p.config.Enabled:
		return nil
	case p.traces == nil:
		return fmt.Errorf("tracer provider not initialized")
	case p.config.PrometheusEnabled && p.metrics == nil:
		return fmt.Errorf("meter provider not initialized but Prometheus is enabled")
	case p.instruments == nil:
		return fmt.Errorf("instruments not initialized")
	}
	return nil
}

// Shutdown flushes pending spans and stops both pipelines
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.traces != nil {
		if err := p.traces.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}
	if p.metrics != nil {
		if err := p.metrics.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
