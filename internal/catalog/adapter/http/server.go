package http

import (
	"context"
	"time"

	"mflix-catalog/internal/catalog/config"
	"mflix-catalog/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const healthTimeout = 5 * time.Second

// NewApp builds the fiber application with middleware, /health and the catalog routes
func NewApp(cfg config.ServerConfig, h *HTTPHandler, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "mflix catalog API",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{
					"error":   "request_failed",
					"message": fe.Message,
				})
			}
			log.WithContext(c.UserContext()).Errorf("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(RequestIDMiddleware())
	app.Use(AccessLogMiddleware(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := h.CatalogUC.HealthCheck(ctx); err != nil {
			log.WithContext(ctx).Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	})

	h.RegisterRoutes(app)
	return app
}
