package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/perkspot/venue-checkin/internal/config"
)

// RateLimit returns a fixed-window rate limiter backed by Redis.  It is
// applied to the check-in mutation routes to stop a single user or address
// from farming one-time codes.  The counter key combines route, user and
// client IP; the first request of a window sets the expiry.  When Redis is
// unavailable the limiter fails open – availability of the check-in flow
// beats strictness here.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := fmt.Sprintf("%s:%s:%s:%s", cfg.Prefix, c.Path(), userID(c), c.RealIP())
            ctx := c.Request().Context()

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if n == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }
            if n > int64(cfg.Limit) {
                ttl, err := rdb.TTL(ctx, key).Result()
                if err != nil || ttl < 0 {
                    ttl = cfg.Window
                }
                c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl/time.Second)+1))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate_limited"})
            }
            return next(c)
        }
    }
}
