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

// ScreenList stores the ordered content screens as a JSON CLOB column.
type ScreenList []domain.ContentScreen

// Value implements the driver.Valuer interface
func (s ScreenList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *ScreenList) Scan(value interface{}) error {
	bytesToParse, err := clobBytes("ScreenList", value)
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*s = ScreenList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// QuestionList stores the ordered questions as a JSON CLOB column.
type QuestionList []domain.Question

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(value interface{}) error {
	bytesToParse, err := clobBytes("QuestionList", value)
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// clobBytes normalizes a scanned CLOB value to JSON bytes. A nil return with
// nil error means the column was NULL, empty, or the literal "null".
func clobBytes(typeName string, value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

// Tutorial represents a tutorial row.
type Tutorial struct {
	ID           string         `db:"ID"`       // ULID
	OwnerID      string         `db:"OWNER_ID"` // Foreign key to players
	Title        string         `db:"TITLE"`
	Description  sql.NullString `db:"DESCRIPTION"`
	Category     string         `db:"CATEGORY"`
	Difficulty   int            `db:"DIFFICULTY"`
	PointsReward int            `db:"POINTS_REWARD"`
	Screens      ScreenList     `db:"SCREENS"`   // JSON CLOB
	Questions    QuestionList   `db:"QUESTIONS"` // JSON CLOB
	Published    int            `db:"PUBLISHED"` // Oracle NUMBER(1) boolean
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
	DeletedAt    sql.NullTime   `db:"DELETED_AT"`
}

// ToDomain maps the row to the domain tutorial.
func (t *Tutorial) ToDomain() *domain.Tutorial {
	return &domain.Tutorial{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Title:        t.Title,
		Description:  t.Description.String,
		Category:     t.Category,
		Difficulty:   t.Difficulty,
		PointsReward: t.PointsReward,
		Screens:      []domain.ContentScreen(t.Screens),
		Questions:    []domain.Question(t.Questions),
		Published:    t.Published == 1,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDomainTutorial maps a domain tutorial back to its row form.
func FromDomainTutorial(t *domain.Tutorial) *Tutorial {
	published := 0
	if t.Published {
		published = 1
	}
	return &Tutorial{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Title:        t.Title,
		Description:  sql.NullString{String: t.Description, Valid: t.Description != ""},
		Category:     t.Category,
		Difficulty:   t.Difficulty,
		PointsReward: t.PointsReward,
		Screens:      ScreenList(t.Screens),
		Questions:    QuestionList(t.Questions),
		Published:    published,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
