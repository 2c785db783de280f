package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()

	w := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Instrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/vehicles", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := m.Instrument(mux)

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	body := scrape(t, reg)
	assert.Contains(t, body, `car_leasing_http_requests_total{method="GET",path="/api/vehicles",status="200"} 2`)
	assert.Contains(t, body, `car_leasing_http_requests_total{method="GET",path="unmatched",status="404"} 1`)
	assert.Contains(t, body, "car_leasing_http_request_duration_seconds_bucket")
}

func TestMetrics_ObserveOrder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveOrder("rent", "success")
	m.ObserveOrder("rent", "success")
	m.ObserveOrder("buy", "error")

	body := scrape(t, reg)
	assert.Contains(t, body, `car_leasing_orders_total{order_type="rent",outcome="success"} 2`)
	assert.Contains(t, body, `car_leasing_orders_total{order_type="buy",outcome="error"} 1`)
}
