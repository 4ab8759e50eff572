package middleware

import (
	"context"
	"errors"
	"fmt"
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

// testProxy is the peer address httptest.NewRequest uses.
const testProxy = "192.0.2.1"

func limited(rdb *redis.Client, max int, allow AllowFunc) *gin.Engine {
	return limitedBehind(rdb, max, allow, []string{testProxy})
}

func limitedBehind(rdb *redis.Client, max int, allow AllowFunc, proxies []string) *gin.Engine {
	r := gin.New()
	if err := TrustProxies(r, proxies); err != nil {
		panic(err)
	}
	r.Use(RealIP())
	r.GET("/login", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/other", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Real-IP", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limited(rdb, 2, nil)

	assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
	w := hit(r, "/login", "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r, "/login", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// separate budgets per path and per ip
	assert.Equal(t, http.StatusOK, hit(r, "/other", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, hit(r, "/login", "198.51.100.1").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
}

func TestRateLimit_UntrustedPeerCannotRotateHeaders(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limitedBehind(rdb, 2, nil, nil)

	limitedCount := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		req.Header.Set("CF-Connecting-IP", fmt.Sprintf("192.0.2.%d", i+100))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limitedCount++
		}
	}
	assert.Equal(t, 18, limitedCount)
}

func TestRealIP_TrustedProxyChain(t *testing.T) {
	r := gin.New()
	require.NoError(t, TrustProxies(r, []string{"192.0.2.0/24"}))
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	ipOf := func(remote string, headers map[string]string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "203.0.113.9", ipOf("192.0.2.10:443", map[string]string{"X-Real-IP": "203.0.113.9"}))
	// right-most untrusted hop wins, a forged left-most entry is ignored
	assert.Equal(t, "198.51.100.4", ipOf("192.0.2.10:443", map[string]string{"X-Forwarded-For": "1.2.3.4, 198.51.100.4, 192.0.2.11"}))
	assert.Equal(t, "203.0.113.50", ipOf("203.0.113.50:5555", map[string]string{"X-Real-IP": "10.0.0.1"}))
}

func TestRateLimit_NilClientPassesThrough(t *testing.T) {
	r := limited(nil, 1, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
	}
}

func TestRateLimit_AllowPrivateIP(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limited(rdb, 1, AllowPrivateIP())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "/login", "10.0.0.5").Code)
	}
	assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "/login", "203.0.113.7").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	r := limited(rdb, 1, nil)
	mr.Close()

	assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, hit(r, "/login", "203.0.113.7").Code)
}

type pingErr struct{ err error }

func (p pingErr) Ping(context.Context) error { return p.err }

func TestDBReady(t *testing.T) {
	r := gin.New()
	down := r.Group("/down", DBReady(pingErr{errors.New("dial tcp: refused")}, nil, false))
	down.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	up := r.Group("/up", DBReady(pingErr{}, nil, false))
	up.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Database connection error")
	assert.NotContains(t, w.Body.String(), "refused")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/up", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
