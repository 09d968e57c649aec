package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/simplemarket/pkg/httpx"
)

func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestURLParamUUID(t *testing.T) {
	id := uuid.New()
	r := withRouteParam(httptest.NewRequest(http.MethodGet, "/", http.NoBody), "id", id.String())
	got, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Fatalf("expected %v, got %v", id, got)
	}

	r = withRouteParam(httptest.NewRequest(http.MethodGet, "/", http.NoBody), "id", "42")
	if _, err := httpx.URLParamUUID(r, "id"); err == nil {
		t.Fatal("expected error for non-uuid id")
	}
}

func TestURLParamInt32(t *testing.T) {
	tests := []struct {
		raw     string
		want    int32
		wantErr bool
	}{
		{"7", 7, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"99999999999", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := withRouteParam(httptest.NewRequest(http.MethodGet, "/", http.NoBody), "id", tt.raw)
			got, err := httpx.URLParamInt32(r, "id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueryInt32(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/items?category_id=3", http.NoBody)
	if got, err := httpx.QueryInt32(r, "category_id"); err != nil || got != 3 {
		t.Fatalf("got (%d, %v), want (3, nil)", got, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	if got, err := httpx.QueryInt32(r, "category_id"); err != nil || got != 0 {
		t.Fatalf("missing param: got (%d, %v), want (0, nil)", got, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/items?category_id=x", http.NoBody)
	if _, err := httpx.QueryInt32(r, "category_id"); err == nil {
		t.Fatal("expected error for non-numeric category_id")
	}
}
