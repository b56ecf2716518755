// Package telemetry wires OpenTelemetry into the pricing and settlement core:
// an OTLP/HTTP trace pipeline, a Prometheus-backed meter and the instruments the
// keepers record quotes and proofs on.
package telemetry

import (
	"fmt"
	"net/url"
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp-endpoint"`
	SampleRate   float64 `mapstructure:"sample-rate"`
	Environment  string  `mapstructure:"environment"`
	// Cluster names the ledger cluster the pool snapshots come from.
	Cluster string `mapstructure:"cluster"`

	PrometheusEnabled bool `mapstructure:"prometheus-enabled"`
}

// DefaultConfig returns telemetry disabled with a local collector endpoint
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		OTLPEndpoint: "http://localhost:4318",
		SampleRate:   1.0,
		Environment:  "development",
		Cluster:      "devnet",
	}
}

// ValidateConfig validates the telemetry configuration
func ValidateConfig(cfg Config) error {
	if cfg.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required")
	}
	u, err := url.Parse(cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("otlp endpoint %q must use http or https", cfg.OTLPEndpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("otlp endpoint %q has no host", cfg.OTLPEndpoint)
	}

	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate %v must be between 0 and 1", cfg.SampleRate)
	}
	return nil
}
