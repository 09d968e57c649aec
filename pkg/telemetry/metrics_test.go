package telemetry

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	return sums
}

func TestMarketMetrics_Counts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewMarketMetricsWith(mp)
	if err != nil {
		t.Fatalf("NewMarketMetricsWith: %v", err)
	}

	ctx := context.Background()
	m.ItemCreated(ctx, true)
	m.ItemCreated(ctx, false)
	m.ItemSold(ctx)
	m.ItemDeleted(ctx)
	m.InterestMarked(ctx)
	m.InterestMarked(ctx)
	m.InterestMarked(ctx)

	got := collectSums(t, reader)
	want := map[string]int64{
		"market.items.created":    2,
		"market.items.sold":       1,
		"market.items.deleted":    1,
		"market.interests.marked": 3,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %d, want %d", name, got[name], v)
		}
	}
}

func TestMarketMetrics_NilIsNoop(t *testing.T) {
	var m *MarketMetrics
	ctx := context.Background()
	m.ItemCreated(ctx, true)
	m.ItemSold(ctx)
	m.ItemDeleted(ctx)
	m.InterestMarked(ctx)
}
