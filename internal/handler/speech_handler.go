package handler

import (
	"io"

	"aibubu/internal/dto"
	"aibubu/internal/middleware"
	"aibubu/internal/service"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SpeechHandler serves TTS synthesis and voice cloning.
type SpeechHandler struct {
	voiceService service.VoiceService
	validator    *validation.Validator
}

func NewSpeechHandler(voiceService service.VoiceService, validator *validation.Validator) *SpeechHandler {
	return &SpeechHandler{voiceService: voiceService, validator: validator}
}

// Synthesize converts text to speech.
// @Summary Synthesize speech
// @Tags speech
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.SynthesizeRequest true "Text to synthesize"
// @Success 200 {object} dto.SynthesizeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Speech service unavailable"
// @Router /speech/synthesize [post]
func (h *SpeechHandler) Synthesize(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)

	var req dto.SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := h.validator.ValidateSynthesizeRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.voiceService.Synthesize(c.Context(), playerID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CloneVoice creates a cloned voice from an uploaded recording.
// @Summary Clone teacher voice
// @Tags speech
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Voice recording"
// @Param name formData string true "Voice name"
// @Param description formData string false "Voice description"
// @Success 200 {object} dto.VoiceCloneResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Speech service unavailable"
// @Router /teacher/voice-clone [post]
func (h *SpeechHandler) CloneVoice(c *fiber.Ctx) error {
	playerID := c.Locals(middleware.PlayerIDKey).(string)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "audio file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to open uploaded audio")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded audio")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")

	resp, err := h.voiceService.CloneVoice(c.Context(), playerID, audio, name, description)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
