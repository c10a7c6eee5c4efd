package handler

import (
	"aibubu/internal/middleware"
	"aibubu/internal/service"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type MarketplaceHandler struct {
	marketplaceService service.MarketplaceService
	validator          *validation.Validator
}

func NewMarketplaceHandler(marketplaceService service.MarketplaceService, validator *validation.Validator) *MarketplaceHandler {
	return &MarketplaceHandler{
		marketplaceService: marketplaceService,
		validator:          validator,
	}
}

// ListTutorials lists published tutorials filtered by search and category.
// @Summary List marketplace tutorials
// @Tags marketplace
// @Security ApiKeyAuth
// @Produce json
// @Param search query string false "Substring match on title, description, category, or teacher name"
// @Param category query string false "Exact category filter"
// @Success 200 {object} dto.MarketplaceListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /marketplace/tutorials [get]
func (h *MarketplaceHandler) ListTutorials(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	listing, err := h.marketplaceService.ListTutorials(c.Context(), playerID, c.Query("search"), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(listing)
}

// Subscribe subscribes the player to a tutorial.
// @Summary Subscribe to a tutorial
// @Tags marketplace
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Tutorial ID"
// @Success 200 {object} dto.SubscribeResponse
// @Failure 404 {object} middleware.ErrorResponse "Tutorial not found"
// @Failure 409 {object} middleware.ErrorResponse "Already subscribed"
// @Router /marketplace/tutorials/{id}/subscribe [post]
func (h *MarketplaceHandler) Subscribe(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)
	tutorialID := c.Params("id")

	if errs := h.validator.ValidateTutorialID(tutorialID); len(errs) > 0 {
		return errs
	}

	resp, err := h.marketplaceService.Subscribe(c.Context(), playerID, tutorialID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
