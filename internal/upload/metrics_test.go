package upload

import (
	"context"
	"testing"

	"ctchen222/rehla/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHandler_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	h := NewHandler(store, 8)
	ctx := context.Background()

	_, err = h.Accept(ctx, memFile("a.png", "image/png", []byte("1234")))
	require.NoError(t, err)
	_, err = h.Accept(ctx, memFile("a.txt", "text/plain", []byte("1234")))
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), sums["rehla.uploads.stored"])
	assert.Equal(t, int64(1), sums["rehla.uploads.rejected"])
}
