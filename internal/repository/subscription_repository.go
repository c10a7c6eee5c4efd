package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aibubu/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// SubscriptionRepository defines the interface for subscription operations.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *models.TutorialSubscription) error
	GetSubscription(ctx context.Context, playerID, tutorialID string) (*models.TutorialSubscription, error)
	GetSubscribedTutorialIDs(ctx context.Context, playerID string) ([]string, error)
}

// sqlxSubscriptionRepository implements SubscriptionRepository using sqlx.
type sqlxSubscriptionRepository struct {
	db *sqlx.DB
}

// NewSQLXSubscriptionRepository creates a new instance of sqlxSubscriptionRepository.
func NewSQLXSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &sqlxSubscriptionRepository{db: db}
}

// CreateSubscription inserts a new subscription. The unique constraint on
// (player_id, tutorial_id) backs up the service-level duplicate check.
func (r *sqlxSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.TutorialSubscription) error {
	query := `INSERT INTO tutorial_subscriptions (id, player_id, tutorial_id, created_at)
	          VALUES (:ID, :PLAYER_ID, :TUTORIAL_ID, :CREATED_AT)`

	sub.CreatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// GetSubscription retrieves one subscription. Returns nil, nil when absent.
func (r *sqlxSubscriptionRepository) GetSubscription(ctx context.Context, playerID, tutorialID string) (*models.TutorialSubscription, error) {
	var sub models.TutorialSubscription
	query := `SELECT * FROM tutorial_subscriptions WHERE player_id = :1 AND tutorial_id = :2`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &sub, query, playerID, tutorialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// GetSubscribedTutorialIDs retrieves the ids of every tutorial the player
// has subscribed to.
func (r *sqlxSubscriptionRepository) GetSubscribedTutorialIDs(ctx context.Context, playerID string) ([]string, error) {
	var ids []string
	query := `SELECT tutorial_id FROM tutorial_subscriptions WHERE player_id = :1`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &ids, query, playerID); err != nil {
		return nil, fmt.Errorf("failed to get subscribed tutorial ids: %w", err)
	}
	return ids, nil
}
