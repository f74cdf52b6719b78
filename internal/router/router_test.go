package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"voucherhub/internal/handler"
	"voucherhub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key-123"

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *metrics.HTTPMetrics, *prometheus.Registry) {
	t.Helper()

	logger := zerolog.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	// Services are nil: every request below is answered before reaching them.
	h := Handlers{
		Health:   handler.NewHealthHandler(okPinger{}, logger),
		Customer: handler.NewCustomerHandler(nil, nil, nil, logger),
		Voucher:  handler.NewVoucherHandler(nil, logger),
		Order:    handler.NewOrderHandler(nil, logger),
	}

	return New(h, Options{APIKey: testAPIKey, Metrics: m, Gatherer: reg}, logger), m, reg
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		expectedStatus int
	}{
		{name: "Health without key", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Metrics without key", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "Customers without key", method: http.MethodGet, path: "/api/customers", expectedStatus: http.StatusUnauthorized},
		{name: "Orders with wrong key", method: http.MethodPost, path: "/api/orders", apiKey: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "Malformed customer id", method: http.MethodGet, path: "/api/customers/not-a-uuid", apiKey: testAPIKey, expectedStatus: http.StatusBadRequest},
		{name: "Malformed voucher id", method: http.MethodDelete, path: "/api/vouchers/123", apiKey: testAPIKey, expectedStatus: http.StatusBadRequest},
		{name: "Malformed order id", method: http.MethodPatch, path: "/api/orders/xyz/status", apiKey: testAPIKey, expectedStatus: http.StatusBadRequest},
		{name: "Unknown route", method: http.MethodGet, path: "/api/products", apiKey: testAPIKey, expectedStatus: http.StatusNotFound},
		{name: "Wrong method", method: http.MethodDelete, path: "/api/orders/abc/status", apiKey: testAPIKey, expectedStatus: http.StatusMethodNotAllowed},
	}

	r, _, _ := newTestRouter(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/vouchers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-API-Key")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Less(t, w.Code, 300)
}

func TestRouter_RecordsRoutePattern(t *testing.T) {
	r, m, _ := newTestRouter(t)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/vouchers/not-a-uuid", nil)
		req.Header.Set("X-API-Key", testAPIKey)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Equal(t, float64(3),
		testutil.ToFloat64(m.Requests.WithLabelValues("/api/vouchers/{id}", http.MethodGet, "400")))
}
