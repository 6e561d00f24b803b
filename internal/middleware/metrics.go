package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"lexcite/pkg/monitoring"
)

// Metrics records one prometheus observation per request via m, the same
// start-time/c.Next()/status-code shape as RequestLogger.
func Metrics(m *monitoring.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		m.RecordHTTPRequest(c.Method(), c.Route().Path, status, time.Since(start))

		return err
	}
}
