// AngelaMos | 2026
// ratelimit_test.go

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:   middleware.PerWindow(2, 2, time.Minute),
		KeyFunc: middleware.KeyByIPFor("auth"),
	}).Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1").Code)

	rec := hit(h, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2").Code)
}

func TestRateLimiterFallsBackToLocal(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	h := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(1, 1, time.Hour),
	}).Handler(okHandler)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.9").Code)
}

func TestRateLimiterBypass(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:      middleware.PerWindow(1, 1, time.Hour),
		BypassFunc: func(*http.Request) bool { return true },
	}).Handler(okHandler)

	for range 3 {
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.3").Code)
	}
}

func TestKeyByIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:1234", "ratelimit:ip:192.0.2.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "192.0.2.1:1", "ratelimit:ip:198.51.100.7"},
		{
			"last forwarded hop",
			map[string]string{"X-Forwarded-For": "203.0.113.5, 198.51.100.9"},
			"192.0.2.1:1",
			"ratelimit:ip:198.51.100.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, middleware.KeyByIP(req))
		})
	}
}

func TestKeyByIPForScopesBucket(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:80"

	assert.Equal(t, "ratelimit:auth:ip:192.0.2.1", middleware.KeyByIPFor("auth")(req))
}

func TestPerWindowDefaultsToMinute(t *testing.T) {
	limit := middleware.PerWindow(10, 5, 0)

	assert.Equal(t, 10, limit.Rate)
	assert.Equal(t, 5, limit.Burst)
	assert.Equal(t, time.Minute, limit.Period)
}
