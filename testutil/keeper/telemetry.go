package keeper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/paw-chain/sealswap/app/telemetry"
)

// MeasurementCounts collects how many measurements each instrument received,
// keyed by instrument name and then by the "status" attribute.
type MeasurementCounts func() map[string]map[string]uint64

// Instruments returns keeper instruments backed by an in-memory reader
func Instruments(t testing.TB) (*telemetry.Instruments, MeasurementCounts) {
	t.Helper()

	reader := metricsdk.NewManualReader()
	provider := metricsdk.NewMeterProvider(metricsdk.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	instruments, err := telemetry.NewInstruments(provider.Meter("test"))
	require.NoError(t, err)

	collect := func() map[string]map[string]uint64 {
		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))

		counts := make(map[string]map[string]uint64)
		for _, scope := range rm.ScopeMetrics {
			for _, m := range scope.Metrics {
				byStatus := make(map[string]uint64)
				switch data := m.Data.(type) {
				case metricdata.Histogram[float64]:
					for _, dp := range data.DataPoints {
						status, _ := dp.Attributes.Value("status")
						byStatus[status.AsString()] += dp.Count
					}
				case metricdata.Sum[int64]:
					for _, dp := range data.DataPoints {
						status, _ := dp.Attributes.Value("status")
						byStatus[status.AsString()] += uint64(dp.Value)
					}
				}
				counts[m.Name] = byStatus
			}
		}
		return counts
	}
	return instruments, collect
}
