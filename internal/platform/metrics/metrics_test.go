package metrics

import (
	"net/http"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusUnprocessableEntity, 20*time.Millisecond)
	c.Record(http.StatusBadGateway, 30*time.Millisecond)
	c.Record(http.StatusTooManyRequests, 0)
	c.Inc("export.pdf")
	c.Inc("export.pdf")

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 4 {
		t.Fatalf("expected 4 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 server error, got %v", snap["errorsTotal"])
	}
	if snap["schemaErrorsTotal"].(uint64) != 1 || snap["storeErrorsTotal"].(uint64) != 1 {
		t.Fatalf("unexpected error split: %v", snap)
	}
	if snap["avgDurationMs"].(float64) != 15 {
		t.Fatalf("expected avg 15ms, got %v", snap["avgDurationMs"])
	}
	if snap["events"].(map[string]uint64)["export.pdf"] != 2 {
		t.Fatalf("expected 2 pdf exports, got %v", snap["events"])
	}
}

func TestNilCollectorInc(t *testing.T) {
	var c *Collector
	c.Inc("export.xlsx")
}
