package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ats-screener/internal/models"
	"ats-screener/internal/repositories"
	"ats-screener/internal/services"
)

type ScreeningHandler struct {
	screeningRepo repositories.ScreeningRepository
	jobRepo       repositories.JobRepository
	docRepo       repositories.DocumentRepository
	worker        services.Worker
}

func NewScreeningHandler(
	screeningRepo repositories.ScreeningRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningRepo: screeningRepo,
		jobRepo:       jobRepo,
		docRepo:       docRepo,
		worker:        worker,
	}
}

// HandleCreate handles POST /screenings: queue an async screening of an
// uploaded resume against a stored job or inline job description.
func (h *ScreeningHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateScreeningRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.JobDescription) == "" && req.JobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Either job_id or job_description is required",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(resumeDocID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	var jobID *uuid.UUID
	if req.JobID != "" {
		parsed, err := uuid.Parse(req.JobID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job_id format",
			})
		}

		if _, err := h.jobRepo.FindByID(parsed); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job not found",
			})
		}
		jobID = &parsed
	}

	screening := &models.Screening{
		ID:               uuid.New(),
		JobID:            jobID,
		JobDescription:   strings.TrimSpace(req.JobDescription),
		ResumeDocumentID: resumeDocID,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.screeningRepo.Create(screening); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create screening",
		})
	}

	h.worker.EnqueueScreening(screening.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.CreateScreeningResponse{
		ID:     screening.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleGetResult handles GET /screenings/:id.
func (h *ScreeningHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	screeningID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	screening, err := h.screeningRepo.FindByID(screeningID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening not found",
		})
	}

	response := models.ScreeningStatusResponse{
		ID:     screening.ID.String(),
		Status: string(screening.Status),
	}

	if screening.Status == models.StatusCompleted && screening.ResultJSON != nil {
		var result models.ScreeningResult
		if err := json.Unmarshal([]byte(*screening.ResultJSON), &result); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to decode stored screening result",
			})
		}
		response.Result = &result
	}

	if screening.Status == models.StatusFailed {
		response.ErrorMessage = screening.ErrorMessage
	}

	return c.JSON(response)
}
