package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ats-screener/internal/models"
	"ats-screener/internal/services"
)

type SearchHandler struct {
	similarity services.SimilarityService
	talent     services.TalentIndexService
}

func NewSearchHandler(similarity services.SimilarityService, talent services.TalentIndexService) *SearchHandler {
	return &SearchHandler{
		similarity: similarity,
		talent:     talent,
	}
}

// HandleSearch handles POST /candidates/search: embed the query text and
// return the nearest previously screened resumes from the talent index.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	if h.talent == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Talent index is not configured",
		})
	}

	var req models.CandidateSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	embedding, err := h.similarity.Embed(c.Context(), req.Query)
	if err != nil {
		return c.Status(statusForScreeningError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	matches, err := h.talent.SearchSimilar(c.Context(), embedding, req.Limit)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to search talent index",
		})
	}

	return c.JSON(fiber.Map{"candidates": matches})
}
