package middleware

import (
	"fmt"
	"time"

	"github.com/GaganMittal847/Companio/internal/cache"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RateLimiter is a fixed window limiter backed by shared counters, so the
// limit holds across replicas.
type RateLimiter struct {
	Counters cache.Cache
	Prefix   string
	Limit    int // requests
	Window   time.Duration
	Logger   *zap.SugaredLogger
}

func NewRateLimiter(counters cache.Cache, prefix string, limit int, window time.Duration, logger *zap.SugaredLogger) *RateLimiter {
	return &RateLimiter{Counters: counters, Prefix: prefix, Limit: limit, Window: window, Logger: logger}
}

// MiddlewareByKey fails open when the counter store is unavailable.
func (r *RateLimiter) MiddlewareByKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if r.Limit <= 0 {
			return c.Next()
		}
		key := fmt.Sprintf("%s:%s", r.Prefix, keyFunc(c))
		count, err := r.Counters.Incr(c.UserContext(), key, r.Window)
		if err != nil {
			r.Logger.Warnw("rate limiter unavailable", "key", key, "error", err)
			return c.Next()
		}
		if count > int64(r.Limit) {
			return tooManyRequests(c)
		}
		return c.Next()
	}
}

func ByIP(c *fiber.Ctx) string { return c.IP() }

func tooManyRequests(c *fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"status":       "fail",
		"message":      "rate limit exceeded",
		"data":         nil,
		"responseCode": fiber.StatusTooManyRequests,
	})
}
