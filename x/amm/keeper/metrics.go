package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AMMMetrics holds the Prometheus metrics of the pricing core
type AMMMetrics struct {
	// Quote metrics
	QuotesTotal  *prometheus.CounterVec
	QuoteLatency prometheus.Histogram
	QuoteVolume  *prometheus.CounterVec
	TradeFees    *prometheus.CounterVec
	ProtocolFees *prometheus.CounterVec
	TransferFees *prometheus.CounterVec

	// Rebalancer metrics
	RatioDrift        prometheus.Histogram
	ToleranceExceeded *prometheus.CounterVec
	FromToLock        *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers the pricing metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			QuotesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "quotes_total",
					Help:      "Total number of quotes computed",
				},
				[]string{"direction", "status"},
			),
			QuoteLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "quote_latency_seconds",
					Help:      "Quote computation latency in seconds",
					Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
				},
			),
			QuoteVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "quote_volume_total",
					Help:      "Total quoted volume in base units",
				},
				[]string{"mint", "leg"},
			),
			TradeFees: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "trade_fees_quoted_total",
					Help:      "Total trade fees quoted",
				},
				[]string{"mint"},
			),
			ProtocolFees: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "protocol_fees_quoted_total",
					Help:      "Total protocol fees quoted",
				},
				[]string{"mint"},
			),
			TransferFees: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "transfer_fees_quoted_total",
					Help:      "Total external transfer fees deducted from quotes",
				},
				[]string{"mint", "leg"},
			),
			RatioDrift: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "ratio_drift",
					Help:      "Relative drift of the visible reserve ratio after rebalancing",
					Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.05, 0.1},
				},
			),
			ToleranceExceeded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "ratio_tolerance_exceeded_total",
					Help:      "Quotes rejected because the ratio tolerance was exceeded",
				},
				[]string{"direction"},
			),
			FromToLock: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "amm",
					Name:      "from_to_lock_total",
					Help:      "Total source amount locked by the rebalancer",
				},
				[]string{"mint"},
			),
		}
	})
	return ammMetrics
}
