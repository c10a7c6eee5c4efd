package handler

import (
	"aibubu/internal/dto"
	"aibubu/internal/middleware"
	"aibubu/internal/service"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PlaybackHandler serves the tutorial playback endpoints.
type PlaybackHandler struct {
	playbackService service.PlaybackService
	validator       *validation.Validator
}

func NewPlaybackHandler(playbackService service.PlaybackService, validator *validation.Validator) *PlaybackHandler {
	return &PlaybackHandler{playbackService: playbackService, validator: validator}
}

// Start begins a fresh playback run.
// @Summary Start tutorial playback
// @Tags playback
// @Security ApiKeyAuth
// @Produce json
// @Param tutorialID path string true "Tutorial ID"
// @Success 200 {object} dto.PlaybackStateResponse
// @Failure 403 {object} middleware.ErrorResponse "Not subscribed"
// @Failure 404 {object} middleware.ErrorResponse "Tutorial not found"
// @Router /playback/{tutorialID}/start [post]
func (h *PlaybackHandler) Start(c *fiber.Ctx) error {
	playerID, tutorialID, errs := h.params(c)
	if errs != nil {
		return errs
	}
	resp, err := h.playbackService.Start(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AdvanceScreen moves to the next screen or into the questions.
// @Summary Advance to the next screen
// @Tags playback
// @Security ApiKeyAuth
// @Produce json
// @Param tutorialID path string true "Tutorial ID"
// @Success 200 {object} dto.PlaybackStateResponse
// @Failure 404 {object} middleware.ErrorResponse "No active session"
// @Failure 409 {object} middleware.ErrorResponse "Invalid playback state"
// @Router /playback/{tutorialID}/advance-screen [post]
func (h *PlaybackHandler) AdvanceScreen(c *fiber.Ctx) error {
	playerID, tutorialID, errs := h.params(c)
	if errs != nil {
		return errs
	}
	resp, err := h.playbackService.AdvanceScreen(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// PreviousScreen steps back one screen.
// @Summary Go back to the previous screen
// @Tags playback
// @Security ApiKeyAuth
// @Produce json
// @Param tutorialID path string true "Tutorial ID"
// @Success 200 {object} dto.PlaybackStateResponse
// @Failure 409 {object} middleware.ErrorResponse "Invalid playback state"
// @Router /playback/{tutorialID}/previous-screen [post]
func (h *PlaybackHandler) PreviousScreen(c *fiber.Ctx) error {
	playerID, tutorialID, errs := h.params(c)
	if errs != nil {
		return errs
	}
	resp, err := h.playbackService.PreviousScreen(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SelectAnswer records the answer for the current question.
// @Summary Select an answer
// @Tags playback
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param tutorialID path string true "Tutorial ID"
// @Param body body dto.SelectAnswerRequest true "Answer index"
// @Success 200 {object} dto.PlaybackStateResponse
// @Failure 409 {object} middleware.ErrorResponse "Answer already recorded"
// @Router /playback/{tutorialID}/select-answer [post]
func (h *PlaybackHandler) SelectAnswer(c *fiber.Ctx) error {
	playerID, tutorialID, errs := h.params(c)
	if errs != nil {
		return errs
	}

	var req dto.SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.playbackService.SelectAnswer(c.Context(), playerID, tutorialID, req.AnswerIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// AdvanceQuestion moves past the current answered question, completing the
// tutorial after the last one.
// @Summary Advance to the next question
// @Tags playback
// @Security ApiKeyAuth
// @Produce json
// @Param tutorialID path string true "Tutorial ID"
// @Success 200 {object} dto.PlaybackStateResponse
// @Failure 409 {object} middleware.ErrorResponse "No answer recorded"
// @Router /playback/{tutorialID}/advance-question [post]
func (h *PlaybackHandler) AdvanceQuestion(c *fiber.Ctx) error {
	playerID, tutorialID, errs := h.params(c)
	if errs != nil {
		return errs
	}
	resp, err := h.playbackService.AdvanceQuestion(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *PlaybackHandler) params(c *fiber.Ctx) (playerID, tutorialID string, err error) {
	playerID = c.Locals(middleware.PlayerIDKey).(string)
	tutorialID = c.Params("tutorialID")
	if errs := h.validator.ValidateTutorialID(tutorialID); len(errs) > 0 {
		return "", "", errs
	}
	return playerID, tutorialID, nil
}
