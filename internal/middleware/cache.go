package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/perkspot/venue-checkin/internal/config"
)

// bodyRecorder tees the response body so a successful JSON payload can be
// stored after the handler ran.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// CacheJSON returns a middleware that caches successful GET responses in
// Redis for the configured TTL.  It is applied only to the public deal
// browse routes, whose payloads are identical for every caller; anything
// authenticated must never pass through it.  A nil Redis client disables
// caching entirely.
func CacheJSON(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
            key := fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                return c.JSONBlob(http.StatusOK, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = rec
            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK && rec.buf.Len() > 0 {
                _ = rdb.Set(ctx, key, rec.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}
