package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ats-screener/internal/services"
)

type ScreenHandler struct {
	screener    services.ScreenerService
	maxFileSize int64
}

func NewScreenHandler(screener services.ScreenerService, maxFileSize int64) *ScreenHandler {
	return &ScreenHandler{
		screener:    screener,
		maxFileSize: maxFileSize,
	}
}

// HandleScreen handles POST /screen: a synchronous screening of a multipart
// job_description + resume pair, returning the full result in one round
// trip. The uploaded file is read in memory and never stored.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Please upload a 'resume' file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded resume",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded resume",
		})
	}

	result, err := h.screener.Screen(c.Context(), uuid.Nil, jobDescription, content, file.Filename)
	if err != nil {
		return c.Status(statusForScreeningError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
