package models

import (
	"database/sql"
	"time"

	"aibubu/internal/domain"
)

// PlayerProgress represents one player's progress row on one tutorial.
// There is a unique constraint on (PLAYER_ID, TUTORIAL_ID).
type PlayerProgress struct {
	ID           string       `db:"ID"` // ULID
	PlayerID     string       `db:"PLAYER_ID"`
	TutorialID   string       `db:"TUTORIAL_ID"`
	Status       string       `db:"STATUS"` // not_started | in_progress | completed
	PointsEarned int          `db:"POINTS_EARNED"`
	CompletedAt  sql.NullTime `db:"COMPLETED_AT"`
	CreatedAt    time.Time    `db:"CREATED_AT"`
	UpdatedAt    time.Time    `db:"UPDATED_AT"`
}

// ToDomain maps the row to the domain record.
func (p *PlayerProgress) ToDomain() *domain.ProgressRecord {
	rec := &domain.ProgressRecord{
		PlayerID:     p.PlayerID,
		TutorialID:   p.TutorialID,
		Status:       p.Status,
		PointsEarned: p.PointsEarned,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.CompletedAt.Valid {
		t := p.CompletedAt.Time
		rec.CompletedAt = &t
	}
	return rec
}

// TutorialSubscription links a player to a tutorial. Unique on
// (PLAYER_ID, TUTORIAL_ID).
type TutorialSubscription struct {
	ID         string    `db:"ID"` // ULID
	PlayerID   string    `db:"PLAYER_ID"`
	TutorialID string    `db:"TUTORIAL_ID"`
	CreatedAt  time.Time `db:"CREATED_AT"`
}

// ToDomain maps the row to the domain subscription.
func (s *TutorialSubscription) ToDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:         s.ID,
		PlayerID:   s.PlayerID,
		TutorialID: s.TutorialID,
		CreatedAt:  s.CreatedAt,
	}
}
