package handler

import (
	"aibubu/internal/dto"
	"aibubu/internal/middleware"
	"aibubu/internal/service"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TutorialHandler serves the teacher authoring endpoints.
type TutorialHandler struct {
	tutorialService   service.TutorialService
	generationService service.GenerationService
	validator         *validation.Validator
}

func NewTutorialHandler(
	tutorialService service.TutorialService,
	generationService service.GenerationService,
	validator *validation.Validator,
) *TutorialHandler {
	return &TutorialHandler{
		tutorialService:   tutorialService,
		generationService: generationService,
		validator:         validator,
	}
}

// CreateTutorial creates a new draft tutorial.
// @Summary Create tutorial draft
// @Tags teacher
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateTutorialRequest true "Tutorial draft"
// @Success 201 {object} dto.TutorialResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /teacher/tutorials [post]
func (h *TutorialHandler) CreateTutorial(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)

	var req dto.CreateTutorialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateCreateTutorialRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.tutorialService.CreateTutorial(c.Context(), playerID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetOwnTutorials lists the teacher's tutorials, drafts included.
// @Summary List own tutorials
// @Tags teacher
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.TutorialResponse
// @Router /teacher/tutorials [get]
func (h *TutorialHandler) GetOwnTutorials(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	tutorials, err := h.tutorialService.GetOwnTutorials(c.Context(), playerID)
	if err != nil {
		return err
	}
	return c.JSON(tutorials)
}

// UpdateTutorial replaces a tutorial's content. Owner-only.
// @Summary Update tutorial
// @Tags teacher
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Tutorial ID"
// @Param body body dto.UpdateTutorialRequest true "Updated tutorial"
// @Success 200 {object} dto.TutorialResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 404 {object} middleware.ErrorResponse "Tutorial not found"
// @Router /teacher/tutorials/{id} [put]
func (h *TutorialHandler) UpdateTutorial(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	tutorialID := c.Params("id")

	if errs := h.validator.ValidateTutorialID(tutorialID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateTutorialRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateCreateTutorialRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.tutorialService.UpdateTutorial(c.Context(), playerID, tutorialID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PublishTutorial lists the tutorial in the marketplace.
// @Summary Publish tutorial
// @Tags teacher
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tutorial ID"
// @Success 200 {object} dto.TutorialResponse
// @Failure 400 {object} middleware.ErrorResponse "Tutorial has no screens or questions"
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Router /teacher/tutorials/{id}/publish [post]
func (h *TutorialHandler) PublishTutorial(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	tutorialID := c.Params("id")

	if errs := h.validator.ValidateTutorialID(tutorialID); len(errs) > 0 {
		return errs
	}

	resp, err := h.tutorialService.PublishTutorial(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateContent produces tutorial screens or questions with the LLM.
// @Summary Generate tutorial content
// @Tags teacher
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateContentRequest true "Generation request"
// @Success 200 {object} dto.GenerateContentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Generation service unavailable"
// @Router /teacher/generate-content [post]
func (h *TutorialHandler) GenerateContent(c *fiber.Ctx) error {
	var req dto.GenerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateGenerateContentRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.generationService.GenerateContent(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
