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

// PublishedTutorialRow is the marketplace projection: tutorial metadata
// joined with the owner's display name and the screen/question JSON for
// counting.
type PublishedTutorialRow struct {
	models.Tutorial
	TeacherName sql.NullString `db:"TEACHER_NAME"`
}

// TutorialRepository defines the interface for tutorial data operations.
type TutorialRepository interface {
	CreateTutorial(ctx context.Context, tutorial *models.Tutorial) error
	GetTutorialByID(ctx context.Context, tutorialID string) (*models.Tutorial, error)
	GetTutorialsByOwner(ctx context.Context, ownerID string) ([]models.Tutorial, error)
	UpdateTutorial(ctx context.Context, tutorial *models.Tutorial) error
	SetPublished(ctx context.Context, tutorialID string, published bool) error
	GetPublishedTutorials(ctx context.Context) ([]PublishedTutorialRow, error)
}

// sqlxTutorialRepository implements TutorialRepository using sqlx.
type sqlxTutorialRepository struct {
	db *sqlx.DB
}

// NewSQLXTutorialRepository creates a new instance of sqlxTutorialRepository.
func NewSQLXTutorialRepository(db *sqlx.DB) TutorialRepository {
	return &sqlxTutorialRepository{db: db}
}

// CreateTutorial inserts a new draft tutorial.
func (r *sqlxTutorialRepository) CreateTutorial(ctx context.Context, tutorial *models.Tutorial) error {
	query := `INSERT INTO tutorials (id, owner_id, title, description, category, difficulty, points_reward, screens, questions, published, created_at, updated_at)
	          VALUES (:ID, :OWNER_ID, :TITLE, :DESCRIPTION, :CATEGORY, :DIFFICULTY, :POINTS_REWARD, :SCREENS, :QUESTIONS, :PUBLISHED, :CREATED_AT, :UPDATED_AT)`

	tutorial.CreatedAt = time.Now()
	tutorial.UpdatedAt = time.Now()

	executor := GetExecutor(ctx, r.db)
	if _, err := executor.NamedExecContext(ctx, query, tutorial); err != nil {
		return fmt.Errorf("failed to create tutorial: %w", err)
	}
	return nil
}

// GetTutorialByID retrieves one tutorial. Returns nil, nil when not found.
func (r *sqlxTutorialRepository) GetTutorialByID(ctx context.Context, tutorialID string) (*models.Tutorial, error) {
	var tutorial models.Tutorial
	query := `SELECT * FROM tutorials WHERE id = :1 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	if err := executor.GetContext(ctx, &tutorial, query, tutorialID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tutorial by id: %w", err)
	}
	return &tutorial, nil
}

// GetTutorialsByOwner retrieves all of one teacher's tutorials, newest first.
func (r *sqlxTutorialRepository) GetTutorialsByOwner(ctx context.Context, ownerID string) ([]models.Tutorial, error) {
	var tutorials []models.Tutorial
	query := `SELECT * FROM tutorials WHERE owner_id = :1 AND deleted_at IS NULL ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &tutorials, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to get tutorials by owner: %w", err)
	}
	return tutorials, nil
}

// UpdateTutorial replaces the tutorial's content and metadata.
func (r *sqlxTutorialRepository) UpdateTutorial(ctx context.Context, tutorial *models.Tutorial) error {
	tutorial.UpdatedAt = time.Now()

	query := `UPDATE tutorials SET
				title = :TITLE,
				description = :DESCRIPTION,
				category = :CATEGORY,
				difficulty = :DIFFICULTY,
				points_reward = :POINTS_REWARD,
				screens = :SCREENS,
				questions = :QUESTIONS,
				updated_at = :UPDATED_AT
	          WHERE id = :ID AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.NamedExecContext(ctx, query, tutorial)
	if err != nil {
		return fmt.Errorf("failed to update tutorial: %w", err)
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

// SetPublished flips the tutorial's published flag.
func (r *sqlxTutorialRepository) SetPublished(ctx context.Context, tutorialID string, published bool) error {
	flag := 0
	if published {
		flag = 1
	}
	query := `UPDATE tutorials SET published = :1, updated_at = :2 WHERE id = :3 AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, flag, time.Now(), tutorialID)
	if err != nil {
		return fmt.Errorf("failed to set published flag: %w", err)
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

// GetPublishedTutorials retrieves every published tutorial joined with its
// teacher's display name. Filtering happens in the service layer against the
// cached listing.
func (r *sqlxTutorialRepository) GetPublishedTutorials(ctx context.Context) ([]PublishedTutorialRow, error) {
	var rows []PublishedTutorialRow
	query := `SELECT t.id, t.owner_id, t.title, t.description, t.category, t.difficulty, t.points_reward,
	                 t.screens, t.questions, t.published, t.created_at, t.updated_at, t.deleted_at,
	                 p.username AS teacher_name
	          FROM tutorials t
	          JOIN players p ON p.id = t.owner_id
	          WHERE t.published = 1 AND t.deleted_at IS NULL AND p.deleted_at IS NULL
	          ORDER BY t.created_at DESC`

	executor := GetExecutor(ctx, r.db)
	if err := executor.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get published tutorials: %w", err)
	}
	return rows, nil
}
