package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"aibubu/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setupProgressTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func progressColumns() []string {
	return []string{"ID", "PLAYER_ID", "TUTORIAL_ID", "STATUS", "POINTS_EARNED", "COMPLETED_AT", "CREATED_AT", "UPDATED_AT"}
}

const (
	progressPlayerID   = "01HPLAYER00000000000000001"
	progressTutorialID = "01HTUTORIAL000000000000001"
)

func TestGetProgress_NotFound(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnError(sql.ErrNoRows)

	progress, err := repo.GetProgress(context.Background(), progressPlayerID, progressTutorialID)

	assert.NoError(t, err)
	assert.Nil(t, progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkInProgress_InsertsWhenAbsent(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO player_progress`).
		WithArgs(sqlmock.AnyArg(), progressPlayerID, progressTutorialID, domain.ProgressInProgress, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.MarkInProgress(context.Background(), progressPlayerID, progressTutorialID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkInProgress_KeepsExistingStatus(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(progressColumns()).
		AddRow("01HPROGRESS000000000000001", progressPlayerID, progressTutorialID,
			domain.ProgressCompleted, 10, now, now, now)

	// Replaying a completed tutorial must not demote the record, so no
	// insert or update follows the lookup.
	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnRows(rows)

	err := repo.MarkInProgress(context.Background(), progressPlayerID, progressTutorialID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCompletion_FirstCompletionInserts(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2 FOR UPDATE`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO player_progress`).
		WithArgs(sqlmock.AnyArg(), progressPlayerID, progressTutorialID, domain.ProgressCompleted, 10,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	alreadyCompleted, err := repo.UpsertCompletion(context.Background(), progressPlayerID, progressTutorialID, 10)

	assert.NoError(t, err)
	assert.False(t, alreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCompletion_UpgradesInProgressRow(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(progressColumns()).
		AddRow("01HPROGRESS000000000000001", progressPlayerID, progressTutorialID,
			domain.ProgressInProgress, 0, nil, now, now)

	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2 FOR UPDATE`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE player_progress SET status = :1`).
		WithArgs(domain.ProgressCompleted, 10, sqlmock.AnyArg(), sqlmock.AnyArg(), progressPlayerID, progressTutorialID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	alreadyCompleted, err := repo.UpsertCompletion(context.Background(), progressPlayerID, progressTutorialID, 10)

	assert.NoError(t, err)
	assert.False(t, alreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCompletion_AlreadyCompletedWritesNothing(t *testing.T) {
	db, mock := setupProgressTestDB(t)
	repo := NewSQLXProgressRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(progressColumns()).
		AddRow("01HPROGRESS000000000000001", progressPlayerID, progressTutorialID,
			domain.ProgressCompleted, 10, now, now, now)

	mock.ExpectQuery(`SELECT \* FROM player_progress WHERE player_id = :1 AND tutorial_id = :2 FOR UPDATE`).
		WithArgs(progressPlayerID, progressTutorialID).
		WillReturnRows(rows)

	alreadyCompleted, err := repo.UpsertCompletion(context.Background(), progressPlayerID, progressTutorialID, 10)

	assert.NoError(t, err)
	assert.True(t, alreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
