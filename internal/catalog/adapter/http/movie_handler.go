package http

import (
	"mflix-catalog/internal/catalog/domain/model"

	"github.com/gofiber/fiber/v2"
)

// QueryMovies returns one page of movies matching type and genre,
// sorted by type then genre and projected to those two fields.
// Without query parameters it serves the drama listing.
func (h *HTTPHandler) QueryMovies(c *fiber.Ctx) error {
	kind := c.Query("type", "movie")
	genre := c.Query("genre", "Drama")

	limit := c.QueryInt("limit", model.DefaultPageLimit)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_limit",
			"message": "limit must not be negative",
		})
	}

	req := model.PageRequest{
		Token: c.Query("pageToken"),
		Limit: limit,
	}

	page, err := h.CatalogUC.FetchPage(c.UserContext(), model.MoviesByGenreQuery(kind, genre), req)
	if err != nil {
		return h.errorResponse(c, err, "query_movies_failed")
	}

	h.Log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"type":     kind,
		"genre":    genre,
		"count":    page.Pagination.Count,
		"has_next": page.Pagination.HasNext,
	}).Debug("Movies page served")

	return c.JSON(page)
}
