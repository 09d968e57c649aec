package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/simplemarket/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (int, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, body
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	code, body := serveHealth(t, httpx.HealthChecks{
		"database":  &stubChecker{},
		"redis":     &stubChecker{},
		"event_bus": &stubChecker{},
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body.Status != "ok" {
		t.Errorf("status: got %q, want %q", body.Status, "ok")
	}
	for _, name := range []string{"database", "redis", "event_bus"} {
		if body.Checks[name] != "ok" {
			t.Errorf("%s: got %q, want ok", name, body.Checks[name])
		}
	}
}

func TestHealthHandler_SingleDependencyDown(t *testing.T) {
	for _, down := range []string{"database", "redis", "event_bus"} {
		t.Run(down, func(t *testing.T) {
			checks := httpx.HealthChecks{
				"database":  &stubChecker{},
				"redis":     &stubChecker{},
				"event_bus": &stubChecker{},
			}
			checks[down] = &stubChecker{err: errors.New("conn refused")}

			code, body := serveHealth(t, checks)
			if code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", code)
			}
			if body.Status != "degraded" || body.Checks[down] != "unreachable" {
				t.Errorf("unexpected response: %+v", body)
			}
		})
	}
}

func TestHealthHandler_NilCheckerSkipped(t *testing.T) {
	code, body := serveHealth(t, httpx.HealthChecks{
		"database": &stubChecker{},
		"temporal": nil,
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if _, ok := body.Checks["temporal"]; ok {
		t.Error("nil checker must not be reported")
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	httpx.HealthHandler(httpx.HealthChecks{"database": &stubChecker{}}).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
