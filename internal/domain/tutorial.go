package domain

import (
	"fmt"
	"time"
)

// Screen types
const (
	ScreenTypeContent     = "content"
	ScreenTypeInstruction = "instruction"
	ScreenTypeExample     = "example"
)

// Question types
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypePronunciation  = "pronunciation"
)

// MultipleChoiceOptionCount is the fixed option count for multiple choice questions.
const MultipleChoiceOptionCount = 4

// ContentScreen is one page of tutorial material shown before the questions.
type ContentScreen struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	AudioEnabled bool   `json:"audio_enabled,omitempty"`
}

// Validate checks the screen fields
func (s *ContentScreen) Validate() error {
	var errs ValidationErrors
	switch s.Type {
	case ScreenTypeContent, ScreenTypeInstruction, ScreenTypeExample:
	default:
		errs = append(errs, NewInvalidFormatError("type", s.Type))
	}
	if s.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if s.Content == "" {
		errs = append(errs, NewMissingFieldError("content"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Question is a tagged variant: multiple_choice carries Options and
// CorrectAnswer, pronunciation carries Phrase/Language/Phonetic.
type Question struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Instruction string `json:"instruction"`

	// multiple_choice fields
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer int      `json:"correct_answer,omitempty"`

	// pronunciation fields
	Phrase   string `json:"phrase,omitempty"`
	Language string `json:"language,omitempty"`
	Phonetic string `json:"phonetic,omitempty"`
}

// Validate checks the variant-specific fields
func (q *Question) Validate() error {
	var errs ValidationErrors
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if q.Question == "" {
			errs = append(errs, NewMissingFieldError("question"))
		}
		if len(q.Options) != MultipleChoiceOptionCount {
			errs = append(errs, ValidationError{
				Code:    CodeInvalidFormat,
				Field:   "options",
				Message: fmt.Sprintf("exactly %d options required, got %d", MultipleChoiceOptionCount, len(q.Options)),
			})
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= MultipleChoiceOptionCount {
			errs = append(errs, NewOutOfRangeError("correct_answer", q.CorrectAnswer, 0, MultipleChoiceOptionCount-1))
		}
	case QuestionTypePronunciation:
		if q.Phrase == "" {
			errs = append(errs, NewMissingFieldError("phrase"))
		}
		if q.Language == "" {
			errs = append(errs, NewMissingFieldError("language"))
		}
	default:
		errs = append(errs, NewInvalidFormatError("type", q.Type))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Tutorial is the aggregate a teacher authors and players subscribe to.
type Tutorial struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	Category     string
	Difficulty   int
	PointsReward int
	Screens      []ContentScreen
	Questions    []Question
	Published    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTutorial creates a draft tutorial owned by ownerID.
func NewTutorial(id, ownerID, title, description, category string, difficulty, pointsReward int) (*Tutorial, error) {
	t := &Tutorial{
		ID:           id,
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		Category:     category,
		Difficulty:   difficulty,
		PointsReward: pointsReward,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the tutorial metadata and its screens and questions.
func (t *Tutorial) Validate() error {
	var errs ValidationErrors
	if t.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if t.Category == "" {
		errs = append(errs, NewMissingFieldError("category"))
	}
	if t.Difficulty < 1 || t.Difficulty > 10 {
		errs = append(errs, NewOutOfRangeError("difficulty", t.Difficulty, 1, 10))
	}
	if t.PointsReward < 0 {
		errs = append(errs, ValidationError{
			Code:    CodeOutOfRange,
			Field:   "points_reward",
			Message: "points_reward must not be negative",
		})
	}
	for i, s := range t.Screens {
		if err := s.Validate(); err != nil {
			if ve, ok := err.(ValidationErrors); ok {
				for _, v := range ve {
					v.Field = fmt.Sprintf("screens[%d].%s", i, v.Field)
					errs = append(errs, v)
				}
			}
		}
	}
	for i, q := range t.Questions {
		if err := q.Validate(); err != nil {
			if ve, ok := err.(ValidationErrors); ok {
				for _, v := range ve {
					v.Field = fmt.Sprintf("questions[%d].%s", i, v.Field)
					errs = append(errs, v)
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CanPublish reports whether the tutorial has enough material to be listed.
// A published tutorial must have at least one screen and one question so
// playback always has somewhere to start and somewhere to finish.
func (t *Tutorial) CanPublish() error {
	if len(t.Screens) == 0 {
		return NewInvalidInputError("cannot publish a tutorial without content screens")
	}
	if len(t.Questions) == 0 {
		return NewInvalidInputError("cannot publish a tutorial without questions")
	}
	return t.Validate()
}
