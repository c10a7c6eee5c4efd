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

// PlayerRepository defines the interface for player data operations.
type PlayerRepository interface {
	CreatePlayer(ctx context.Context, player *models.Player) error
	GetPlayerByGoogleID(ctx context.Context, googleID string) (*models.Player, error)
	GetPlayerByID(ctx context.Context, playerID string) (*models.Player, error)
	UpdatePlayer(ctx context.Context, player *models.Player) error
	UpdatePreferences(ctx context.Context, playerID string, prefs models.PreferencesJSON) error
	IncrementPoints(ctx context.Context, playerID string, points int) error
}

// sqlxPlayerRepository implements PlayerRepository using sqlx.
type sqlxPlayerRepository struct {
	db *sqlx.DB
}

// NewSQLXPlayerRepository creates a new instance of sqlxPlayerRepository.
func NewSQLXPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &sqlxPlayerRepository{db: db}
}

// CreatePlayer inserts a new player into the database.
func (r *sqlxPlayerRepository) CreatePlayer(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (id, google_id, email, username, total_points, preferences, encrypted_access_token, encrypted_refresh_token, token_expires_at, created_at, updated_at)
	          VALUES (:ID, :GOOGLE_ID, :EMAIL, :USERNAME, :TOTAL_POINTS, :PREFERENCES, :ENCRYPTED_ACCESS_TOKEN, :ENCRYPTED_REFRESH_TOKEN, :TOKEN_EXPIRES_AT, :CREATED_AT, :UPDATED_AT)`

	player.CreatedAt = time.Now()
	player.UpdatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.NamedExecContext(ctx, query, player); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayerByGoogleID retrieves a player by their Google ID.
// Returns nil, nil when no such player exists.
func (r *sqlxPlayerRepository) GetPlayerByGoogleID(ctx context.Context, googleID string) (*models.Player, error) {
	var player models.Player
	query := `SELECT * FROM players WHERE google_id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &player, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by google_id: %w", err)
	}
	return &player, nil
}

// GetPlayerByID retrieves a player by their internal ID.
// Returns nil, nil when no such player exists.
func (r *sqlxPlayerRepository) GetPlayerByID(ctx context.Context, playerID string) (*models.Player, error) {
	var player models.Player
	query := `SELECT * FROM players WHERE id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &player, query, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return &player, nil
}

// UpdatePlayer updates a player's profile and token fields.
func (r *sqlxPlayerRepository) UpdatePlayer(ctx context.Context, player *models.Player) error {
	player.UpdatedAt = time.Now()

	query := `UPDATE players SET
				email = :EMAIL,
				username = :USERNAME,
				encrypted_access_token = :ENCRYPTED_ACCESS_TOKEN,
				encrypted_refresh_token = :ENCRYPTED_REFRESH_TOKEN,
				token_expires_at = :TOKEN_EXPIRES_AT,
				updated_at = :UPDATED_AT
	          WHERE id = :ID AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.NamedExecContext(ctx, query, player)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePreferences replaces the player's stored preferences JSON.
func (r *sqlxPlayerRepository) UpdatePreferences(ctx context.Context, playerID string, prefs models.PreferencesJSON) error {
	query := `UPDATE players SET preferences = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	prefsValue, err := prefs.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, prefsValue, time.Now(), playerID)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementPoints adds points to the player's running total. The increment
// happens in SQL so concurrent completions of different tutorials do not
// lose updates.
func (r *sqlxPlayerRepository) IncrementPoints(ctx context.Context, playerID string, points int) error {
	query := `UPDATE players SET total_points = total_points + :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, points, time.Now(), playerID)
	if err != nil {
		return fmt.Errorf("failed to increment points: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
