package dto

import (
	"time"

	"aibubu/internal/domain"
)

// CreateTutorialRequest is the teacher authoring payload. Screens and
// questions are optional on create; publish requires both.
type CreateTutorialRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	Difficulty   int                    `json:"difficulty"`
	PointsReward int                    `json:"points_reward"`
	Screens      []domain.ContentScreen `json:"screens,omitempty"`
	Questions    []domain.Question      `json:"questions,omitempty"`
}

// UpdateTutorialRequest mirrors the create payload for full replacement.
type UpdateTutorialRequest = CreateTutorialRequest

// TutorialResponse is the full tutorial as seen by its owner.
type TutorialResponse struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	Difficulty   int                    `json:"difficulty"`
	PointsReward int                    `json:"points_reward"`
	Screens      []domain.ContentScreen `json:"screens"`
	Questions    []domain.Question      `json:"questions"`
	Published    bool                   `json:"published"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// NewTutorialResponse maps a domain tutorial to its owner-facing response.
func NewTutorialResponse(t *domain.Tutorial) *TutorialResponse {
	return &TutorialResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		Difficulty:   t.Difficulty,
		PointsReward: t.PointsReward,
		Screens:      t.Screens,
		Questions:    t.Questions,
		Published:    t.Published,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
