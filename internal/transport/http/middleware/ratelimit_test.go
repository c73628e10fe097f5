package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestLoginRateLimitPerIP(t *testing.T) {
	limited := LoginRateLimit(1, 1, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("192.0.2.20:1111"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	rec := send("192.0.2.20:2222")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if rec := send("192.0.2.21:1111"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected other ip to pass, got %d", rec.Code)
	}
}

func TestRateLimitRefills(t *testing.T) {
	limited := RateLimit(rate.Every(30*time.Millisecond), 1, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "198.51.100.10:1"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusNoContent {
		t.Fatalf("expected pass, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected throttle, got %d", code)
	}
	time.Sleep(50 * time.Millisecond)
	if code := send(); code != http.StatusNoContent {
		t.Fatalf("expected pass after refill, got %d", code)
	}
}

func TestClientIPKeyTrustsForwardedForOnlyFromProxy(t *testing.T) {
	keyFn := ClientIPKey([]string{"10.0.0.1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := keyFn(req); got != "203.0.113.9" {
		t.Fatalf("unexpected key behind proxy %q", got)
	}

	req.RemoteAddr = "198.51.100.7:5000"
	if got := keyFn(req); got != "198.51.100.7" {
		t.Fatalf("expected peer address for untrusted sender, got %q", got)
	}
}

func TestLoginRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	limited := LoginRateLimit(1, 1, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "192.0.2.30:1111"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("203.0.113.1"); code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := send("203.0.113.2"); code != http.StatusTooManyRequests {
		t.Fatalf("expected rotated header to be throttled, got %d", code)
	}
}

func TestKeyedLimiterEvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	limiters := NewKeyedLimiter(rate.Every(time.Second), 1)
	limiters.now = func() time.Time { return now }

	limiters.Get("a")
	limiters.Get("b")
	if n := limiters.Len(); n != 2 {
		t.Fatalf("expected 2 limiters, got %d", n)
	}

	now = now.Add(limiterIdleTTL + time.Second)
	limiters.Get("c")
	if n := limiters.Len(); n != 1 {
		t.Fatalf("expected idle limiters evicted, got %d", n)
	}
}
