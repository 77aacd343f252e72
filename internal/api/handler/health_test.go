package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	cases := []struct {
		name   string
		checks []Check
		want   int
		status string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"reachable backend", []Check{{Name: "backend", Probe: HTTPReachable(nil, up.URL)}}, http.StatusOK, "ok"},
		{"failing backend", []Check{{Name: "backend", Probe: HTTPReachable(up.Client(), down.URL)}}, http.StatusServiceUnavailable, "degraded"},
		{"store down", []Check{
			{Name: "backend", Probe: HTTPReachable(nil, up.URL)},
			{Name: "token_store", Probe: func(context.Context) error { return errors.New("connection refused") }},
		}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tc.checks...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			if got := decode(t, rec)["status"]; got != tc.status {
				t.Fatalf("expected status %q, got %v", tc.status, got)
			}
		})
	}
}
