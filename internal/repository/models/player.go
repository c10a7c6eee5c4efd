package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aibubu/internal/domain"
)

// PreferencesJSON stores player preferences as a JSON CLOB column.
type PreferencesJSON domain.PlayerPreferences

// Value implements the driver.Valuer interface
func (p PreferencesJSON) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (p *PreferencesJSON) Scan(value interface{}) error {
	if value == nil {
		*p = PreferencesJSON{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("PreferencesJSON Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*p = PreferencesJSON{}
		return nil
	}
	return json.Unmarshal(bytesToParse, p)
}

// Player represents a player account row.
type Player struct {
	ID                    string          `db:"ID"`                      // ULID
	GoogleID              string          `db:"GOOGLE_ID"`               // Google's unique identifier
	Email                 string          `db:"EMAIL"`                   // Player's email address
	Username              sql.NullString  `db:"USERNAME"`                // Display name
	TotalPoints           int             `db:"TOTAL_POINTS"`            // Accumulated reward points
	Preferences           PreferencesJSON `db:"PREFERENCES"`             // JSON preferences (voice id, language)
	EncryptedAccessToken  sql.NullString  `db:"ENCRYPTED_ACCESS_TOKEN"`  // Encrypted Google OAuth access token
	EncryptedRefreshToken sql.NullString  `db:"ENCRYPTED_REFRESH_TOKEN"` // Encrypted Google OAuth refresh token
	TokenExpiresAt        sql.NullTime    `db:"TOKEN_EXPIRES_AT"`        // Expiry time for the access token
	CreatedAt             time.Time       `db:"CREATED_AT"`
	UpdatedAt             time.Time       `db:"UPDATED_AT"`
	DeletedAt             sql.NullTime    `db:"DELETED_AT"`
}

// ToDomain maps the row to the domain player.
func (p *Player) ToDomain() *domain.Player {
	return &domain.Player{
		ID:          p.ID,
		GoogleID:    p.GoogleID,
		Email:       p.Email,
		Username:    p.Username.String,
		TotalPoints: p.TotalPoints,
		Preferences: domain.PlayerPreferences(p.Preferences),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
