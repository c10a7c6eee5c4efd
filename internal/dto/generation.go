package dto

import "aibubu/internal/domain"

// GenerateContentRequest asks the LLM for tutorial screens or questions.
type GenerateContentRequest struct {
	Prompt       string              `json:"prompt"`
	TutorialInfo domain.TutorialInfo `json:"tutorialInfo"`
	GenerateType string              `json:"generateType"`
}

// GenerateContentResponse returns the normalized generation output.
type GenerateContentResponse struct {
	Screens   []domain.ContentScreen `json:"screens,omitempty"`
	Questions []domain.Question      `json:"questions,omitempty"`
}
