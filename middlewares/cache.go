package middlewares

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ProductCachePrefix namespaces cached product responses.
const ProductCachePrefix = "cache:products:"

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ResponseCache serves successful GET responses from redis for ttl. A nil
// client disables caching.
func ResponseCache(client *redis.Client, prefix string, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if client == nil || ttl <= 0 || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := prefix + ctx.Request.URL.RequestURI()
		cached, err := client.Get(ctx.Request.Context(), key).Bytes()
		if err == nil && len(cached) > 0 {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			ctx.Abort()
			return
		}
		if err != nil && err != redis.Nil {
			log.Warn().Err(err).Str("cache_key", key).Msg("cache lookup failed")
		}

		writer := &bodyCapture{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = writer
		ctx.Header("X-Cache", "MISS")
		ctx.Next()

		if writer.Status() != http.StatusOK || writer.body.Len() == 0 {
			return
		}
		if err := client.Set(ctx.Request.Context(), key, writer.body.Bytes(), ttl).Err(); err != nil {
			log.Warn().Err(err).Str("cache_key", key).Msg("failed to cache response")
		}
	}
}

// InvalidateCache deletes every key under prefix.
func InvalidateCache(ctx context.Context, client *redis.Client, prefix string) error {
	if client == nil {
		return nil
	}

	iter := client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		log.Debug().Int("count", len(keys)).Str("prefix", prefix).Msg("cache invalidated")
	}
	return nil
}
