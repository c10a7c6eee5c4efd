package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTutorial(screens, questions int) *Tutorial {
	t := &Tutorial{
		ID:           "01HTESTTUTORIAL0000000000A",
		OwnerID:      "01HTESTOWNER000000000000AA",
		Title:        "Counting",
		Category:     "Math",
		Difficulty:   1,
		PointsReward: 10,
		Published:    true,
	}
	for i := 0; i < screens; i++ {
		t.Screens = append(t.Screens, ContentScreen{
			ID:      "s1",
			Type:    ScreenTypeContent,
			Title:   "Screen",
			Content: "Content",
		})
	}
	for i := 0; i < questions; i++ {
		t.Questions = append(t.Questions, Question{
			ID:            "q1",
			Type:          QuestionTypeMultipleChoice,
			Instruction:   "Choose answer",
			Question:      "What comes after 3?",
			Options:       []string{"2", "4", "5", "7"},
			CorrectAnswer: 1,
		})
	}
	return t
}

func TestNewPlaybackSessionStartsAtFirstScreen(t *testing.T) {
	tut := makeTutorial(3, 2)
	s := NewPlaybackSession(tut)

	assert.Equal(t, tut.ID, s.TutorialID)
	assert.Equal(t, 0, s.ScreenIndex)
	assert.False(t, s.ShowingQuestions)
	assert.False(t, s.Completed)
}

func TestAdvanceScreenSwitchesToQuestionsAfterLastScreen(t *testing.T) {
	tut := makeTutorial(2, 1)
	s := NewPlaybackSession(tut)

	require.NoError(t, s.AdvanceScreen(tut))
	assert.Equal(t, 1, s.ScreenIndex)
	assert.False(t, s.ShowingQuestions)

	require.NoError(t, s.AdvanceScreen(tut))
	assert.True(t, s.ShowingQuestions)
	assert.Equal(t, 0, s.QuestionIndex)

	err := s.AdvanceScreen(tut)
	assert.Error(t, err)
}

func TestPreviousScreen(t *testing.T) {
	tut := makeTutorial(3, 1)
	s := NewPlaybackSession(tut)

	// At the first screen going back is rejected.
	assert.Error(t, s.PreviousScreen())

	require.NoError(t, s.AdvanceScreen(tut))
	require.NoError(t, s.PreviousScreen())
	assert.Equal(t, 0, s.ScreenIndex)
}

func TestSelectAnswerGradesMultipleChoice(t *testing.T) {
	tut := makeTutorial(1, 1)
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))

	require.NoError(t, s.SelectAnswer(tut, 1))
	require.NotNil(t, s.Correct)
	assert.True(t, *s.Correct)
	assert.True(t, s.Answered)
}

func TestSelectAnswerRejectsSecondSelection(t *testing.T) {
	tut := makeTutorial(1, 1)
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))
	require.NoError(t, s.SelectAnswer(tut, 0))

	before := *s
	err := s.SelectAnswer(tut, 1)
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeAnswerAlreadyLocked, domainErr.Code)

	// The rejected selection must not change the session.
	assert.Equal(t, before.SelectedAnswer, s.SelectedAnswer)
	assert.Equal(t, before.Correct, s.Correct)
	assert.Equal(t, before.QuestionIndex, s.QuestionIndex)
}

func TestSelectAnswerBeforeQuestionsRejected(t *testing.T) {
	tut := makeTutorial(2, 1)
	s := NewPlaybackSession(tut)

	assert.Error(t, s.SelectAnswer(tut, 0))
}

func TestPronunciationAnswerIsRecordedUngraded(t *testing.T) {
	tut := makeTutorial(1, 0)
	tut.Questions = []Question{{
		ID:          "q1",
		Type:        QuestionTypePronunciation,
		Instruction: "Say it aloud",
		Phrase:      "Hello, my friend!",
		Language:    "en",
	}}
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))

	require.NoError(t, s.SelectAnswer(tut, 0))
	assert.True(t, s.Answered)
	assert.Nil(t, s.Correct)

	completed, err := s.AdvanceQuestion(tut)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestAdvanceQuestionRequiresAnswer(t *testing.T) {
	tut := makeTutorial(1, 2)
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))

	_, err := s.AdvanceQuestion(tut)
	assert.Error(t, err)
}

func TestExactAdvanceCountReachesCompletion(t *testing.T) {
	cases := []struct{ screens, questions int }{
		{1, 1},
		{2, 1},
		{3, 4},
		{5, 2},
	}
	for _, tc := range cases {
		tut := makeTutorial(tc.screens, tc.questions)
		s := NewPlaybackSession(tut)

		advances := 0
		for i := 0; i < tc.screens; i++ {
			require.NoError(t, s.AdvanceScreen(tut))
			advances++
		}
		completed := false
		for i := 0; i < tc.questions; i++ {
			require.NoError(t, s.SelectAnswer(tut, 1))
			var err error
			completed, err = s.AdvanceQuestion(tut)
			require.NoError(t, err)
			advances++
		}

		assert.Equal(t, tc.screens+tc.questions, advances)
		assert.True(t, completed)
		assert.True(t, s.Completed)

		// Terminal: nothing moves after completion.
		assert.Error(t, s.AdvanceScreen(tut))
		assert.Error(t, s.SelectAnswer(tut, 0))
		_, err := s.AdvanceQuestion(tut)
		assert.Error(t, err)
	}
}

func TestWrongAnswerStaysLocked(t *testing.T) {
	// Two screens, one question with correct index 1: a wrong selection is
	// recorded and locked; a corrective re-selection on the same question
	// is rejected, and only advancing moves the session forward.
	tut := makeTutorial(2, 1)
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))
	require.NoError(t, s.AdvanceScreen(tut))
	require.True(t, s.ShowingQuestions)

	require.NoError(t, s.SelectAnswer(tut, 0))
	require.NotNil(t, s.Correct)
	assert.False(t, *s.Correct)
	assert.False(t, s.Completed)

	err := s.SelectAnswer(tut, 1)
	require.Error(t, err)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeAnswerAlreadyLocked, domainErr.Code)

	// The locked wrong answer is untouched by the rejected re-selection.
	require.NotNil(t, s.SelectedAnswer)
	assert.Equal(t, 0, *s.SelectedAnswer)
	require.NotNil(t, s.Correct)
	assert.False(t, *s.Correct)

	completed, err := s.AdvanceQuestion(tut)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestAdvanceQuestionResetsAnswerStateBetweenQuestions(t *testing.T) {
	tut := makeTutorial(1, 2)
	s := NewPlaybackSession(tut)
	require.NoError(t, s.AdvanceScreen(tut))

	require.NoError(t, s.SelectAnswer(tut, 1))
	completed, err := s.AdvanceQuestion(tut)
	require.NoError(t, err)
	assert.False(t, completed)

	assert.Equal(t, 1, s.QuestionIndex)
	assert.False(t, s.Answered)
	assert.Nil(t, s.SelectedAnswer)
	assert.Nil(t, s.Correct)
}

func TestCurrentQuestion(t *testing.T) {
	tut := makeTutorial(1, 1)
	s := NewPlaybackSession(tut)

	assert.Nil(t, s.CurrentQuestion(tut))

	require.NoError(t, s.AdvanceScreen(tut))
	q := s.CurrentQuestion(tut)
	require.NotNil(t, q)
	assert.Equal(t, "q1", q.ID)
}
