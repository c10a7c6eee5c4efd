package domain

import "time"

// PlayerPreferences holds per-player settings stored as JSON.
type PlayerPreferences struct {
	Language string `json:"language,omitempty"`
	VoiceID  string `json:"voice_id,omitempty"`
}

// Player is an account on the platform. Teachers and learners share the
// same account type; authoring is gated by ownership, not role.
type Player struct {
	ID          string
	GoogleID    string
	Email       string
	Username    string
	TotalPoints int
	Preferences PlayerPreferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
