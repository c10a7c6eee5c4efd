package validation

import (
	"regexp"
	"strings"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
)

const maxSynthesizeTextLen = 2000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTutorialID validates a tutorial id path parameter
func (v *Validator) ValidateTutorialID(tutorialID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(tutorialID) == "" {
		errors = append(errors, domain.NewMissingFieldError("tutorial_id"))
	} else if !isValidULID(tutorialID) {
		errors = append(errors, domain.NewInvalidFormatError("tutorial_id", tutorialID))
	}

	return errors
}

// ValidateCreateTutorialRequest validates the teacher authoring payload
func (v *Validator) ValidateCreateTutorialRequest(req *dto.CreateTutorialRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	}
	if strings.TrimSpace(req.Category) == "" {
		errors = append(errors, domain.NewMissingFieldError("category"))
	}
	if req.Difficulty < 1 || req.Difficulty > 10 {
		errors = append(errors, domain.NewOutOfRangeError("difficulty", req.Difficulty, 1, 10))
	}
	if req.PointsReward < 0 {
		errors = append(errors, domain.NewOutOfRangeError("points_reward", req.PointsReward, 0, 1000000))
	}

	return errors
}

// ValidateGenerateContentRequest validates the generation payload
func (v *Validator) ValidateGenerateContentRequest(req *dto.GenerateContentRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Prompt) == "" {
		errors = append(errors, domain.NewMissingFieldError("prompt"))
	}
	switch req.GenerateType {
	case string(domain.GenerateContent), string(domain.GenerateQuestions):
	default:
		errors = append(errors, domain.NewInvalidFormatError("generateType", req.GenerateType))
	}

	return errors
}

// ValidateSynthesizeRequest validates the TTS payload
func (v *Validator) ValidateSynthesizeRequest(req *dto.SynthesizeRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(req.Text) > maxSynthesizeTextLen {
		errors = append(errors, domain.NewOutOfRangeError("text", len(req.Text), 1, maxSynthesizeTextLen))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
