package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/ghuser/simplemarket/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "simplemarket-test",
		ServiceVersion: "test",
		Environment:    config.EnvTesting,
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MetricsHandler == nil || p.Metrics == nil {
		t.Fatal("expected metrics handler and counters")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer p.Shutdown(context.Background()) //nolint:errcheck

	fields := otel.GetTextMapPropagator().Fields()
	found := false
	for _, f := range fields {
		if f == "traceparent" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected traceparent among propagator fields, got %v", fields)
	}
}

func TestSetup_MetricsHandlerServesBusinessCounters(t *testing.T) {
	p, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer p.Shutdown(context.Background()) //nolint:errcheck

	p.Metrics.ItemSold(context.Background())

	rr := httptest.NewRecorder()
	p.MetricsHandler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "market_items_sold") {
		t.Errorf("expected market_items_sold in scrape output:\n%s", rr.Body.String())
	}
}

func TestTraceRatio(t *testing.T) {
	cfg := baseConfig()
	if got := traceRatio(cfg); got != 1 {
		t.Errorf("non-production ratio = %v, want 1", got)
	}
	cfg.Environment = config.EnvProduction
	if got := traceRatio(cfg); got != 0.2 {
		t.Errorf("production ratio = %v, want 0.2", got)
	}
}
