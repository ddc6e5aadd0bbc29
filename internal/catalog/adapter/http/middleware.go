package http

import (
	"time"

	"mflix-catalog/internal/shared/logger"
	"mflix-catalog/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDMiddleware reuses an incoming X-Request-ID or assigns a new uuid,
// echoes it on the response and stores it in the user context.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(fiber.HeaderXRequestID, requestID)
		c.Locals("requestID", requestID)
		c.SetUserContext(utils.WithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}

// AccessLogMiddleware logs one line per request after the handler ran
func AccessLogMiddleware(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("HTTP request")

		return err
	}
}
