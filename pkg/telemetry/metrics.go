package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/simplemarket"

// MarketMetrics holds the marketplace business counters. A nil *MarketMetrics
// records nothing, so services can run without telemetry in tests.
type MarketMetrics struct {
	itemsCreated    metric.Int64Counter
	itemsSold       metric.Int64Counter
	itemsDeleted    metric.Int64Counter
	interestsMarked metric.Int64Counter
}

// NewMarketMetrics registers the counters on the global meter provider
// installed by Setup.
func NewMarketMetrics() (*MarketMetrics, error) {
	return NewMarketMetricsWith(otel.GetMeterProvider())
}

// NewMarketMetricsWith registers the counters on mp.
func NewMarketMetricsWith(mp metric.MeterProvider) (*MarketMetrics, error) {
	meter := mp.Meter(meterName)
	m := &MarketMetrics{}
	var err error

	if m.itemsCreated, err = meter.Int64Counter("market.items.created",
		metric.WithDescription("Listings created"), metric.WithUnit("{item}")); err != nil {
		return nil, fmt.Errorf("items created counter: %w", err)
	}
	if m.itemsSold, err = meter.Int64Counter("market.items.sold",
		metric.WithDescription("Listings marked sold"), metric.WithUnit("{item}")); err != nil {
		return nil, fmt.Errorf("items sold counter: %w", err)
	}
	if m.itemsDeleted, err = meter.Int64Counter("market.items.deleted",
		metric.WithDescription("Listings deleted"), metric.WithUnit("{item}")); err != nil {
		return nil, fmt.Errorf("items deleted counter: %w", err)
	}
	if m.interestsMarked, err = meter.Int64Counter("market.interests.marked",
		metric.WithDescription("Buyer interests recorded, excluding duplicates"), metric.WithUnit("{interest}")); err != nil {
		return nil, fmt.Errorf("interests marked counter: %w", err)
	}
	return m, nil
}

// ItemCreated counts a new listing; hasCategory separates categorised listings.
func (m *MarketMetrics) ItemCreated(ctx context.Context, hasCategory bool) {
	if m == nil {
		return
	}
	m.itemsCreated.Add(ctx, 1, metric.WithAttributes(attribute.Bool("categorised", hasCategory)))
}

func (m *MarketMetrics) ItemSold(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsSold.Add(ctx, 1)
}

func (m *MarketMetrics) ItemDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.itemsDeleted.Add(ctx, 1)
}

func (m *MarketMetrics) InterestMarked(ctx context.Context) {
	if m == nil {
		return
	}
	m.interestsMarked.Add(ctx, 1)
}
