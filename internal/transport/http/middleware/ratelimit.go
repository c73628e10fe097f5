package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"salarydash/internal/transport/http/api"
)

type RateLimitKeyFunc func(r *http.Request) string

const limiterIdleTTL = 10 * time.Minute

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter holds one token bucket per key. Buckets idle for longer than
// idleTTL are dropped on a later Get.
type KeyedLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedLimiter(limit rate.Limit, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: map[string]*keyedEntry{},
		limit:    limit,
		burst:    burst,
		idleTTL:  limiterIdleTTL,
		now:      time.Now,
	}
}

func (k *KeyedLimiter) Get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	if now.Sub(k.lastSweep) >= k.idleTTL {
		for existing, entry := range k.limiters {
			if now.Sub(entry.lastSeen) >= k.idleTTL {
				delete(k.limiters, existing)
			}
		}
		k.lastSweep = now
	}
	entry, ok := k.limiters[key]
	if !ok {
		entry = &keyedEntry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// LoginRateLimit throttles credential attempts per client address. Forwarded
// headers are honoured only when the peer is one of trustedProxies.
func LoginRateLimit(perMinute, burst int, trustedProxies []string) func(http.Handler) http.Handler {
	return RateLimit(rate.Every(time.Minute/time.Duration(max(perMinute, 1))), burst, ClientIPKey(trustedProxies))
}

func RateLimit(limit rate.Limit, burst int, keyFn RateLimitKeyFunc) func(http.Handler) http.Handler {
	limiters := NewKeyedLimiter(limit, burst)
	if keyFn == nil {
		keyFn = ClientIPKey(nil)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			reservation := limiters.Get(key).Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				w.Header().Set("Retry-After", strconv.Itoa(max(int(delay.Seconds()), 1)))
				slog.Warn("rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
					"method", r.Method,
				)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIPKey keys requests by peer address. The first X-Forwarded-For hop
// replaces it only when the peer is a trusted proxy.
func ClientIPKey(trustedProxies []string) RateLimitKeyFunc {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, p := range trustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			trusted[p] = true
		}
	}
	return func(r *http.Request) string {
		peer := remoteHost(r)
		if !trusted[peer] {
			return peer
		}
		if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
			if value := strings.TrimSpace(strings.Split(fwd, ",")[0]); value != "" {
				return value
			}
		}
		return peer
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
