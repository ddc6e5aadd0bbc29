package http

import (
	"mflix-catalog/internal/catalog/domain/model"

	"github.com/gofiber/fiber/v2"
)

func (h *HTTPHandler) CreateIndex(c *fiber.Ctx) error {
	var spec model.IndexSpec
	if err := c.BodyParser(&spec); err != nil {
		h.Log.WithContext(c.UserContext()).Warnf("Failed to parse index body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request_body",
			"message": "Failed to parse request body",
		})
	}

	name, err := h.CatalogUC.CreateIndex(c.UserContext(), spec)
	if err != nil {
		return h.errorResponse(c, err, "create_index_failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": name})
}

func (h *HTTPHandler) ListIndexes(c *fiber.Ctx) error {
	indexes, err := h.CatalogUC.ListIndexes(c.UserContext())
	if err != nil {
		return h.errorResponse(c, err, "list_indexes_failed")
	}

	return c.JSON(fiber.Map{
		"indexes": indexes,
		"count":   len(indexes),
	})
}

func (h *HTTPHandler) DropIndex(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.CatalogUC.DropIndex(c.UserContext(), name); err != nil {
		return h.errorResponse(c, err, "drop_index_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
