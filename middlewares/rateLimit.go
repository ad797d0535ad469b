package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const rateLimitPeriod = time.Minute

// RateLimiter allows limit requests per client IP per minute for the route
// it guards. Redis failures let the request through.
func RateLimiter(client *redis.Client, name string, limit int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if client == nil || limit <= 0 {
			ctx.Next()
			return
		}

		key := "rate_limit:" + name + ":" + ctx.ClientIP()
		count, err := client.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
			ctx.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx.Request.Context(), key, rateLimitPeriod)
		}

		if count > limit {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		ctx.Next()
	}
}
