package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/autoforge-api/pkg/response"
)

// KeyFunc names the bucket a request is counted in.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true for requests that skip the limiter.
type AllowFunc func(*gin.Context) bool

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + ipFromCtx(c) }
}

// KeyByIPAndPath gives every route its own budget per client, so a burst of
// registrations does not lock out login.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string { return "rl:route:" + routeOf(c) + ":ip:" + ipFromCtx(c) }
}

// KeyByUserID counts per authenticated user; anonymous callers fall back to their IP.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString("userID"); uid != "" {
			return "rl:user:" + uid
		}
		return "rl:user:anon:ip:" + ipFromCtx(c)
	}
}

// hitScript increments the window counter, starts the window on the first
// hit and returns {count, remaining window in ms}.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

var errBadReply = errors.New("rate limit: unexpected script reply")

// window is one fixed-window counter in redis.
type window struct {
	rdb *redis.Client
	max int
	ttl time.Duration
}

func (w window) hit(ctx context.Context, key string) (count int, reset time.Duration, err error) {
	res, err := hitScript.Run(ctx, w.rdb, []string{key}, w.ttl.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, errBadReply
	}
	if res[1] > 0 {
		reset = time.Duration(res[1]) * time.Millisecond
	}
	return int(res[0]), reset, nil
}

// RateLimit allows limit requests per key in each fixed window and answers 429
// beyond that. A nil client disables it, and redis errors fail open.
// OPTIONS and allow-listed requests are never counted.
func RateLimit(rdb *redis.Client, limit int, per time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || per <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	w := window{rdb: rdb, max: limit, ttl: per}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		count, reset, err := w.hit(c.Request.Context(), keyFn(c))
		if err != nil {
			c.Next()
			return
		}

		resetSec := int((reset + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, w.max-count)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > w.max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
