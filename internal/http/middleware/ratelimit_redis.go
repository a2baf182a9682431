package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// If the ping fails, redisClient stays nil and limits fall back to process memory.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process rate limits", "addr", addr, "error", err)
		_ = client.Close()
		return
	}
	redisClient = client
	logger.Info("redis rate limiter connected", "addr", addr)
}

// RedisPing reports Redis health for readiness checks. Not configured is healthy.
func RedisPing(ctx context.Context) error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Ping(ctx).Err()
}

func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// RateLimit is a fixed-window limiter keyed by scope and caller identity: the
// authenticated person when OptionalAuth ran first, else the client IP.
// key format: rl:<scope>:<window_seconds>:<identity>
func RateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(maxRequests, window)

	return func(c *gin.Context) {
		ident := identity(c)
		endpoint := scope + ":" + c.FullPath()

		if redisClient == nil {
			if !local.allow(ident) {
				rejectRateLimited(c, endpoint, window)
				return
			}
			RLRequests.WithLabelValues(endpoint).Inc()
			c.Next()
			return
		}

		key := "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + ident
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail-open
			c.Header("X-RateLimit-Error", "redis-error")
			logger.WithContext(ctx).Warn("rate limit redis error", "error", err)
			c.Next()
			return
		}
		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
			rejectRateLimited(c, endpoint, window)
			return
		}

		RLRequests.WithLabelValues(endpoint).Inc()
		c.Next()
	}
}

func identity(c *gin.Context) string {
	if id := c.GetString(ContextPersonID); id != "" {
		return "person:" + id
	}
	return "ip:" + c.ClientIP()
}

func rejectRateLimited(c *gin.Context, endpoint string, window time.Duration) {
	RLBlocked.WithLabelValues(endpoint).Inc()
	c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "rate limit exceeded",
	})
}
