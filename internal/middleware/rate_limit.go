package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"Vidtube/internal/apperror"
	"Vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Counter 是限流用到的Redis命令，*redis.Client直接满足
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RateLimit 固定窗口限流：1、按scope+IP计数 2、计数键没有过期时间就补上，上次EXPIRE失败的键也会在下次请求时修好 3、超过上限返回429
// Redis出错时放行，登录不能因为限流组件故障而整体不可用
func RateLimit(counter Counter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := fmt.Sprintf("rate_limit:%s:%s", scope, c.ClientIP())
		ctx := c.Request.Context()

		count, err := counter.Incr(ctx, key).Result()
		if err != nil {
			logger.Log.WithError(err).WithField("key", key).Warn("限流计数失败，放行请求")
			c.Next()
			return
		}
		retryAfter := window
		ttl, err := counter.TTL(ctx, key).Result()
		switch {
		case err != nil:
			logger.Log.WithError(err).WithField("key", key).Warn("读取限流窗口失败")
		case ttl < 0:
			// -1表示键没有过期时间，不补上的话这个IP会被永久锁住
			if err := counter.Expire(ctx, key, window).Err(); err != nil {
				logger.Log.WithError(err).WithField("key", key).Warn("设置限流窗口失败")
			}
		default:
			retryAfter = ttl
		}
		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds()+0.5)))
			abort(c, apperror.New(http.StatusTooManyRequests, "Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
