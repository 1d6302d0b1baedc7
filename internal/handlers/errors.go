package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ats-screener/internal/services"
)

// statusForScreeningError maps the core error taxonomy to HTTP codes.
// Narrative-model failures never surface here; they are absorbed by the
// fallback chain inside the screener.
func statusForScreeningError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrExtractionFailed),
		errors.Is(err, services.ErrEmptyDocument):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrEmbeddingFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
