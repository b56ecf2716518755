package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics holds the Prometheus metrics of the order lifecycle
type OrderMetrics struct {
	// Store metrics
	OrdersCreated *prometheus.CounterVec
	OpenOrders    prometheus.Gauge

	// Finalization metrics
	Finalizations *prometheus.CounterVec
	ProofLatency  *prometheus.HistogramVec
	ProofFailures *prometheus.CounterVec

	// I/O metrics
	FetchAttempts *prometheus.CounterVec
	WatcherPolls  *prometheus.CounterVec
}

var (
	orderMetricsOnce sync.Once
	orderMetrics     *OrderMetrics
)

// NewOrderMetrics creates and registers the order metrics (singleton pattern)
func NewOrderMetrics() *OrderMetrics {
	orderMetricsOnce.Do(func() {
		orderMetrics = &OrderMetrics{
			OrdersCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "created_total",
					Help:      "Total number of orders created",
				},
				[]string{"direction"},
			),
			OpenOrders: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "open",
					Help:      "Number of orders awaiting finalization",
				},
			),
			Finalizations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "finalizations_total",
					Help:      "Total finalization attempts by outcome and status",
				},
				[]string{"outcome", "status"},
			),
			ProofLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "proof_latency_seconds",
					Help:      "Proof generation latency in seconds",
					Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
				},
				[]string{"relation"},
			),
			ProofFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "proof_failures_total",
					Help:      "Total proofs that failed to generate",
				},
				[]string{"relation"},
			),
			FetchAttempts: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "fetch_attempts_total",
					Help:      "Order fetch attempts by result",
				},
				[]string{"result"},
			),
			WatcherPolls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "sealswap",
					Subsystem: "orders",
					Name:      "watcher_polls_total",
					Help:      "Deadline watcher height polls by result",
				},
				[]string{"result"},
			),
		}
	})
	return orderMetrics
}
