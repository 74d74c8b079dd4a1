package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sportfitx/class-booking/internal/config"
)

// captureWriter captures the response body and status while forwarding to
// the client, so successful responses can be stored in the cache.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size < cw.limit {
		remain := cw.limit - cw.size
		if cw.limit <= 0 || int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else if remain > 0 {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom builds a stable cache key from the prefix, route and query.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
	return cfg.Prefix + ":" + c.Path() + "?" + c.Request().URL.RawQuery
}

// ResponseCache returns a middleware that serves GET responses from Redis
// when a cached copy exists and stores fresh 200 responses with the
// configured TTL.  When the client is nil or the config disables caching,
// the middleware is a pass-through, so the service degrades gracefully
// without Redis.  Intended for the popular listings, which are read-heavy
// and tolerate a short staleness window.
func ResponseCache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKeyFrom(cfg, c)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			cached, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}

			// Only cache complete 200 responses that fit within the limit.
			if cw.status == http.StatusOK && (cw.limit <= 0 || cw.size <= cw.limit) {
				sctx, scancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				_ = rdb.Set(sctx, key, cw.buf.Bytes(), cfg.TTL).Err()
				scancel()
			}
			return nil
		}
	}
}
