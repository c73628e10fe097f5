package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salarydash/internal/platform/metrics"
)

func TestMetricsMiddlewareRecordsStatus(t *testing.T) {
	collector := metrics.New()
	handler := Metrics(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	snap := collector.Snapshot()
	if snap["storeErrorsTotal"].(uint64) != 1 {
		t.Fatalf("expected store error counted, got %v", snap)
	}
}
