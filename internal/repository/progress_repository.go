package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aibubu/internal/domain"
	"aibubu/internal/repository/models"
	"aibubu/internal/util"

	"github.com/jmoiron/sqlx"
)

// ProgressRepository defines the interface for player progress operations.
type ProgressRepository interface {
	GetProgress(ctx context.Context, playerID, tutorialID string) (*models.PlayerProgress, error)
	GetProgressByPlayer(ctx context.Context, playerID string) ([]models.PlayerProgress, error)
	MarkInProgress(ctx context.Context, playerID, tutorialID string) error
	// UpsertCompletion records a completed run. It returns alreadyCompleted =
	// true (and writes nothing) when the pair was completed before, so the
	// caller can skip the points award. Must run inside a transaction.
	UpsertCompletion(ctx context.Context, playerID, tutorialID string, pointsEarned int) (alreadyCompleted bool, err error)
}

// sqlxProgressRepository implements ProgressRepository using sqlx.
type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

// GetProgress retrieves one progress record. Returns nil, nil when absent.
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, playerID, tutorialID string) (*models.PlayerProgress, error) {
	var progress models.PlayerProgress
	query := `SELECT * FROM player_progress WHERE player_id = :1 AND tutorial_id = :2`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &progress, query, playerID, tutorialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

// GetProgressByPlayer retrieves all of a player's progress records.
func (r *sqlxProgressRepository) GetProgressByPlayer(ctx context.Context, playerID string) ([]models.PlayerProgress, error) {
	var records []models.PlayerProgress
	query := `SELECT * FROM player_progress WHERE player_id = :1 ORDER BY updated_at DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &records, query, playerID); err != nil {
		return nil, fmt.Errorf("failed to get progress by player: %w", err)
	}
	return records, nil
}

// MarkInProgress records that playback started. An existing record keeps its
// status so a replay of a completed tutorial does not demote it.
func (r *sqlxProgressRepository) MarkInProgress(ctx context.Context, playerID, tutorialID string) error {
	executor := GetExecutor(ctx, r.db)

	existing, err := r.GetProgress(ctx, playerID, tutorialID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	insert := `INSERT INTO player_progress (id, player_id, tutorial_id, status, points_earned, created_at, updated_at)
	           VALUES (:1, :2, :3, :4, :5, :6, :7)`
	now := time.Now()
	if _, err := executor.ExecContext(ctx, insert, util.NewULID(), playerID, tutorialID, domain.ProgressInProgress, 0, now, now); err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	return nil
}

// UpsertCompletion implements the completion write. The row is locked for
// the duration of the surrounding transaction so concurrent completions of
// the same pair serialize, and the award stays exactly-once.
func (r *sqlxProgressRepository) UpsertCompletion(ctx context.Context, playerID, tutorialID string, pointsEarned int) (bool, error) {
	executor := GetExecutor(ctx, r.db)
	now := time.Now()

	var existing models.PlayerProgress
	selectQuery := `SELECT * FROM player_progress WHERE player_id = :1 AND tutorial_id = :2 FOR UPDATE`
	err := executor.GetContext(ctx, &existing, selectQuery, playerID, tutorialID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to lock progress row: %w", err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		insert := `INSERT INTO player_progress (id, player_id, tutorial_id, status, points_earned, completed_at, created_at, updated_at)
		           VALUES (:1, :2, :3, :4, :5, :6, :7, :8)`
		if _, err := executor.ExecContext(ctx, insert, util.NewULID(), playerID, tutorialID, domain.ProgressCompleted, pointsEarned, now, now, now); err != nil {
			return false, fmt.Errorf("failed to insert completion: %w", err)
		}
		return false, nil
	}

	if existing.Status == domain.ProgressCompleted {
		return true, nil
	}

	update := `UPDATE player_progress SET status = :1, points_earned = :2, completed_at = :3, updated_at = :4
	           WHERE player_id = :5 AND tutorial_id = :6`
	if _, err := executor.ExecContext(ctx, update, domain.ProgressCompleted, pointsEarned, now, now, playerID, tutorialID); err != nil {
		return false, fmt.Errorf("failed to update completion: %w", err)
	}
	return false, nil
}
