package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"aibubu/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupPlayerTestDB creates a new sqlx.DB instance and sqlmock for player repository testing.
func setupPlayerTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func playerColumns() []string {
	return []string{"ID", "GOOGLE_ID", "EMAIL", "USERNAME", "TOTAL_POINTS", "PREFERENCES",
		"ENCRYPTED_ACCESS_TOKEN", "ENCRYPTED_REFRESH_TOKEN", "TOKEN_EXPIRES_AT",
		"CREATED_AT", "UPDATED_AT", "DELETED_AT"}
}

func TestGetPlayerByID_Success(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	playerID := "01HPLAYER00000000000000001"
	now := time.Now()

	rows := sqlmock.NewRows(playerColumns()).
		AddRow(playerID, "google-123", "kid@example.com", "bubu", 40, `{"voice_id":"v1"}`,
			nil, nil, nil, now, now, nil)

	mock.ExpectQuery(`SELECT \* FROM players WHERE id = :1 AND deleted_at IS NULL`).
		WithArgs(playerID).
		WillReturnRows(rows)

	player, err := repo.GetPlayerByID(context.Background(), playerID)

	assert.NoError(t, err)
	assert.NotNil(t, player)
	assert.Equal(t, playerID, player.ID)
	assert.Equal(t, 40, player.TotalPoints)
	assert.Equal(t, "v1", player.Preferences.VoiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlayerByID_NotFound(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM players WHERE id = :1 AND deleted_at IS NULL`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	player, err := repo.GetPlayerByID(context.Background(), "missing")

	assert.NoError(t, err, "not found maps to nil, nil")
	assert.Nil(t, player)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPlayerByGoogleID_NotFound(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM players WHERE google_id = :1 AND deleted_at IS NULL`).
		WithArgs("no-such-google-id").
		WillReturnError(sql.ErrNoRows)

	player, err := repo.GetPlayerByGoogleID(context.Background(), "no-such-google-id")

	assert.NoError(t, err)
	assert.Nil(t, player)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePlayer_Success(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	player := &models.Player{
		ID:       "01HPLAYER00000000000000001",
		GoogleID: "google-123",
		Email:    "kid@example.com",
		Username: sql.NullString{String: "bubu", Valid: true},
	}

	mock.ExpectExec(`INSERT INTO players`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreatePlayer(context.Background(), player)

	assert.NoError(t, err)
	assert.False(t, player.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementPoints_Success(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	playerID := "01HPLAYER00000000000000001"

	mock.ExpectExec(`UPDATE players SET total_points = total_points \+ :1`).
		WithArgs(10, sqlmock.AnyArg(), playerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementPoints(context.Background(), playerID, 10)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementPoints_PlayerMissing(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	mock.ExpectExec(`UPDATE players SET total_points = total_points \+ :1`).
		WithArgs(10, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementPoints(context.Background(), "missing", 10)

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePreferences_Success(t *testing.T) {
	db, mock := setupPlayerTestDB(t)
	repo := NewSQLXPlayerRepository(db)
	defer db.Close()

	playerID := "01HPLAYER00000000000000001"
	prefs := models.PreferencesJSON{Language: "en", VoiceID: "cloned-voice"}

	mock.ExpectExec(`UPDATE players SET preferences = :1`).
		WithArgs(`{"language":"en","voice_id":"cloned-voice"}`, sqlmock.AnyArg(), playerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePreferences(context.Background(), playerID, prefs)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
