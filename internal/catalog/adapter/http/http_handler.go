package http

import (
	"errors"
	"strings"

	"mflix-catalog/internal/catalog/usecase"
	apperrors "mflix-catalog/internal/shared/errors"
	"mflix-catalog/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPHandler exposes the catalog operations over REST
type HTTPHandler struct {
	CatalogUC usecase.CatalogUsecaseInterface
	Log       logger.Logger
}

// NewCatalogHTTPHandler creates a new HTTPHandler
func NewCatalogHTTPHandler(catalogUC usecase.CatalogUsecaseInterface, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		CatalogUC: catalogUC,
		Log:       log,
	}
}

func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	v1 := router.Group("/v1")

	v1.Post("/indexes", h.CreateIndex)
	v1.Get("/indexes", h.ListIndexes)
	v1.Delete("/indexes/:name", h.DropIndex)

	v1.Get("/movies", h.QueryMovies)
}

// errorResponse writes the {"error","message"} body with a status derived from err
func (h *HTTPHandler) errorResponse(c *fiber.Ctx, err error, fallback string) error {
	code := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal {
		code = strings.ToLower(string(appErr.Type))
	}

	body := fiber.Map{
		"error":   code,
		"message": err.Error(),
	}
	if appErr != nil && len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return c.Status(apperrors.HTTPStatus(err)).JSON(body)
}
