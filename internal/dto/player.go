package dto

import (
	"time"

	"aibubu/internal/domain"
)

// PlayerProfileResponse is the authenticated player's own profile.
type PlayerProfileResponse struct {
	ID          string                   `json:"id"`
	Email       string                   `json:"email"`
	Username    string                   `json:"username"`
	TotalPoints int                      `json:"total_points"`
	Preferences domain.PlayerPreferences `json:"preferences"`
}

// ProgressResponse is one progress record in the dashboard listing.
type ProgressResponse struct {
	TutorialID   string     `json:"tutorial_id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	PointsEarned int        `json:"points_earned"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
