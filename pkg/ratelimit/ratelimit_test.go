package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, cfg *Config) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRateLimiter(client, cfg), mr
}

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 5,
		PublicRequests:  5,
		BookingRequests: 2,
		AdminRequests:   5,
		HealthRequests:  5,
	}
}

func TestIsAllowedEnforcesLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, testConfig())
	ctx := context.Background()

	first, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.False(t, third.Allowed)

	other, err := limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.True(t, other.Allowed, "limits are per client")
}

func TestIsAllowedBypass(t *testing.T) {
	cfg := testConfig()
	cfg.BookingRequests = 0
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	limiter, _ := newTestLimiter(t, cfg)

	result, err := limiter.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	cfg.Enabled = false
	result, err = limiter.IsAllowed(context.Background(), "10.0.0.9", RateLimitTypeBooking)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestGetRateLimitType(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodPost, "/api/v1/bookings", RateLimitTypeBooking},
		{http.MethodPost, "/submit", RateLimitTypeBooking},
		{http.MethodGet, "/booked-seats", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/seats/map", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/qr", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/admin/seats/report", RateLimitTypeAdmin},
		{http.MethodGet, "/unknown", RateLimitTypeDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, getRateLimitType(tt.method, tt.path), tt.path)
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, _ := newTestLimiter(t, testConfig())

	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		engine.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)
	w := send()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusTooManyRequests, send().Code)
}

func TestMiddlewareFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, mr := newTestLimiter(t, testConfig())
	mr.Close()

	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
