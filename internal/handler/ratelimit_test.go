package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(0.001, 2)

	r := gin.New()
	r.POST("/users/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("192.0.2.1:1001").Code)

	blocked := send("192.0.2.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", blocked.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, send("198.51.100.9:1000").Code)
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	clock := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return clock }

	count := func() int {
		n := 0
		rl.limiters.Range(func(_, _ any) bool {
			n++
			return true
		})
		return n
	}

	for i := 0; i < 100; i++ {
		rl.Allow(fmt.Sprintf("ip:203.0.113.%d", i))
	}
	assert.Equal(t, 100, count())

	clock = clock.Add(defaultLimiterIdleTTL - time.Minute)
	rl.Allow("ip:203.0.113.1")

	clock = clock.Add(2 * time.Minute)
	rl.Allow("ip:198.51.100.9")
	assert.Equal(t, 2, count())

	_, kept := rl.limiters.Load("ip:203.0.113.1")
	assert.True(t, kept)
	_, dropped := rl.limiters.Load("ip:203.0.113.2")
	assert.False(t, dropped)
}

func TestRateLimiterIdleTTLCoversRefill(t *testing.T) {
	assert.Equal(t, defaultLimiterIdleTTL, NewRateLimiter(1, 5).idleTTL)
	assert.Equal(t, 2000*time.Second, NewRateLimiter(0.5, 1000).idleTTL)
}
