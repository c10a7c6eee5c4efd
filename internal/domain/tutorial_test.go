package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMCQuestion() Question {
	return Question{
		ID:            "q1",
		Type:          QuestionTypeMultipleChoice,
		Instruction:   "Choose answer",
		Question:      "How many apples?",
		Options:       []string{"1", "2", "3", "4"},
		CorrectAnswer: 2,
	}
}

func TestNewTutorial(t *testing.T) {
	tut, err := NewTutorial("01HT1", "01HOWNER", "Counting to Ten", "Learn numbers", "Math", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "Counting to Ten", tut.Title)
	assert.False(t, tut.Published)
}

func TestNewTutorialRejectsBadMetadata(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		category   string
		difficulty int
		points     int
		wantField  string
	}{
		{"missing title", "", "Math", 1, 10, "title"},
		{"missing category", "Counting", "", 1, 10, "category"},
		{"difficulty too low", "Counting", "Math", 0, 10, "difficulty"},
		{"difficulty too high", "Counting", "Math", 11, 10, "difficulty"},
		{"negative points", "Counting", "Math", 1, -5, "points_reward"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTutorial("01HT1", "01HOWNER", tc.title, "", tc.category, tc.difficulty, tc.points)
			require.Error(t, err)

			ve, ok := err.(ValidationErrors)
			require.True(t, ok)
			found := false
			for _, v := range ve {
				if v.Field == tc.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected a validation error on %q", tc.wantField)
		})
	}
}

func TestContentScreenValidate(t *testing.T) {
	s := ContentScreen{ID: "s1", Type: ScreenTypeContent, Title: "Numbers", Content: "One, two, three"}
	assert.NoError(t, s.Validate())

	s.Type = "video"
	assert.Error(t, s.Validate())

	s = ContentScreen{ID: "s1", Type: ScreenTypeInstruction, Title: "Numbers"}
	assert.Error(t, s.Validate())
}

func TestQuestionValidateMultipleChoice(t *testing.T) {
	q := validMCQuestion()
	assert.NoError(t, q.Validate())

	q = validMCQuestion()
	q.Options = []string{"1", "2"}
	assert.Error(t, q.Validate())

	q = validMCQuestion()
	q.CorrectAnswer = 4
	assert.Error(t, q.Validate())

	q = validMCQuestion()
	q.Question = ""
	assert.Error(t, q.Validate())
}

func TestQuestionValidatePronunciation(t *testing.T) {
	q := Question{
		ID:          "q1",
		Type:        QuestionTypePronunciation,
		Instruction: "Say it aloud",
		Phrase:      "Good morning!",
		Language:    "en",
	}
	assert.NoError(t, q.Validate())

	q.Phrase = ""
	assert.Error(t, q.Validate())

	q = Question{ID: "q1", Type: "essay"}
	assert.Error(t, q.Validate())
}

func TestTutorialValidatePrefixesNestedFields(t *testing.T) {
	tut := &Tutorial{
		ID:         "01HT1",
		OwnerID:    "01HOWNER",
		Title:      "Counting",
		Category:   "Math",
		Difficulty: 1,
		Screens: []ContentScreen{
			{ID: "s1", Type: ScreenTypeContent, Title: "", Content: "text"},
		},
		Questions: []Question{validMCQuestion()},
	}
	err := tut.Validate()
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, ve, 1)
	assert.Equal(t, "screens[0].title", ve[0].Field)
}

func TestCanPublish(t *testing.T) {
	tut, err := NewTutorial("01HT1", "01HOWNER", "Counting", "", "Math", 1, 10)
	require.NoError(t, err)

	// No material at all.
	assert.Error(t, tut.CanPublish())

	tut.Screens = []ContentScreen{{ID: "s1", Type: ScreenTypeContent, Title: "Numbers", Content: "One"}}
	assert.Error(t, tut.CanPublish())

	tut.Questions = []Question{validMCQuestion()}
	assert.NoError(t, tut.CanPublish())
}
