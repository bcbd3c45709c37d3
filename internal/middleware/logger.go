package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger writes one access line per request. The level follows the
// outcome: 5xx and handler errors log at error, 4xx at warn. Paths in skip
// (probes, scrapes) are not logged.
func RequestLogger(logger *zap.SugaredLogger, skip ...string) fiber.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []any{
			"requestId", c.Locals(RequestIDKey),
			"method", c.Method(),
			"route", c.Route().Path,
			"path", c.Path(),
			"ip", c.IP(),
			"status", status,
			"bytes", len(c.Response().Body()),
			"latency", time.Since(start),
		}
		switch {
		case err != nil:
			logger.Errorw("request failed", append(fields, "error", err)...)
		case status >= fiber.StatusInternalServerError:
			logger.Errorw("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warnw("request", fields...)
		default:
			logger.Infow("request", fields...)
		}
		return err
	}
}
