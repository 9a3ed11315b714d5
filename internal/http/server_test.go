package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestRouter_Operational(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_requests_total"})
	registry.MustRegister(counter)
	counter.Inc()

	tests := []struct {
		name             string
		path             string
		check            HealthCheck
		expectedStatus   int
		expectedBodyPart string
	}{
		{
			name:             "healthy",
			path:             "/healthz",
			expectedStatus:   http.StatusOK,
			expectedBodyPart: "ok",
		},
		{
			name:             "unhealthy",
			path:             "/healthz",
			check:            func(context.Context) error { return errors.New("database is locked") },
			expectedStatus:   http.StatusServiceUnavailable,
			expectedBodyPart: "database is locked",
		},
		{
			name:             "metrics",
			path:             "/metrics",
			expectedStatus:   http.StatusOK,
			expectedBodyPart: "test_requests_total 1",
		},
		{
			name:           "unknown_route",
			path:           "/transfers/bulk",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			router := NewRouter(NewHandler(nil, nil, logger), registry, tt.check, logger)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.expectedStatus, w.Code)
			require.Contains(t, w.Body.String(), tt.expectedBodyPart)
		})
	}
}
