package handler

import (
	"aibubu/internal/middleware"
	"aibubu/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlayerHandler struct {
	playerService service.PlayerService
}

func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// GetMe returns the authenticated player's profile.
// @Summary Get own profile
// @Tags players
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.PlayerProfileResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /players/me [get]
func (h *PlayerHandler) GetMe(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	profile, err := h.playerService.GetProfile(c.Context(), playerID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetMyProgress returns the player's progress records.
// @Summary Get own progress
// @Tags players
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /players/me/progress [get]
func (h *PlayerHandler) GetMyProgress(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	progress, err := h.playerService.GetProgress(c.Context(), playerID)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}
