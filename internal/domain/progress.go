package domain

import "time"

// Progress statuses
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// ProgressRecord is one player's progress on one tutorial. There is at most
// one record per (player, tutorial) pair; completion writes upsert it.
type ProgressRecord struct {
	PlayerID     string
	TutorialID   string
	Status       string
	PointsEarned int
	CompletedAt  *time.Time
	UpdatedAt    time.Time
}

// Subscription links a player to a tutorial they can play. Unique per
// (player, tutorial) pair.
type Subscription struct {
	ID         string
	PlayerID   string
	TutorialID string
	CreatedAt  time.Time
}
