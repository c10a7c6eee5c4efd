package domain

// PlaybackSession tracks a single player's position inside one tutorial.
// It moves through the content screens first, then the questions, and
// becomes Completed after the last question is answered and advanced past.
// Sessions are transient: Start always builds a fresh one.
type PlaybackSession struct {
	TutorialID       string `json:"tutorial_id"`
	ScreenIndex      int    `json:"screen_index"`
	QuestionIndex    int    `json:"question_index"`
	ShowingQuestions bool   `json:"showing_questions"`
	SelectedAnswer   *int   `json:"selected_answer,omitempty"`
	Correct          *bool  `json:"correct,omitempty"`
	Answered         bool   `json:"answered"`
	Completed        bool   `json:"completed"`
}

// NewPlaybackSession starts playback at the first content screen.
func NewPlaybackSession(t *Tutorial) *PlaybackSession {
	return &PlaybackSession{
		TutorialID: t.ID,
	}
}

// AdvanceScreen moves to the next content screen. Past the last screen it
// switches to the question phase at question 0.
func (s *PlaybackSession) AdvanceScreen(t *Tutorial) error {
	if s.Completed {
		return NewInvalidPlaybackError("playback already completed")
	}
	if s.ShowingQuestions {
		return NewInvalidPlaybackError("cannot advance screen while showing questions")
	}
	if s.ScreenIndex >= len(t.Screens)-1 {
		s.ShowingQuestions = true
		s.QuestionIndex = 0
		return nil
	}
	s.ScreenIndex++
	return nil
}

// PreviousScreen steps back one content screen. At the first screen it is
// rejected rather than wrapping.
func (s *PlaybackSession) PreviousScreen() error {
	if s.Completed {
		return NewInvalidPlaybackError("playback already completed")
	}
	if s.ShowingQuestions {
		return NewInvalidPlaybackError("cannot go back to screens while showing questions")
	}
	if s.ScreenIndex == 0 {
		return NewInvalidPlaybackError("already at the first screen")
	}
	s.ScreenIndex--
	return nil
}

// SelectAnswer records the player's answer for the current question. Once an
// answer is recorded it is locked until AdvanceQuestion; a second selection
// is rejected with no state change. Multiple choice answers are graded
// immediately; pronunciation attempts are recorded without grading.
func (s *PlaybackSession) SelectAnswer(t *Tutorial, answerIndex int) error {
	if s.Completed {
		return NewInvalidPlaybackError("playback already completed")
	}
	if !s.ShowingQuestions {
		return NewInvalidPlaybackError("not showing questions yet")
	}
	if s.Answered {
		return NewError(CodeAnswerAlreadyLocked, "answer already recorded for this question", nil)
	}
	q := t.Questions[s.QuestionIndex]
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if answerIndex < 0 || answerIndex >= len(q.Options) {
			return NewInvalidInputError("answer index out of range")
		}
		correct := answerIndex == q.CorrectAnswer
		s.SelectedAnswer = &answerIndex
		s.Correct = &correct
	case QuestionTypePronunciation:
		// Pronunciation attempts are not graded server-side.
		s.SelectedAnswer = &answerIndex
		s.Correct = nil
	default:
		return NewInvalidPlaybackError("unknown question type")
	}
	s.Answered = true
	return nil
}

// AdvanceQuestion moves past the current answered question. Past the last
// question the session becomes Completed and completed=true is returned so
// the caller can perform the progress write.
func (s *PlaybackSession) AdvanceQuestion(t *Tutorial) (completed bool, err error) {
	if s.Completed {
		return false, NewInvalidPlaybackError("playback already completed")
	}
	if !s.ShowingQuestions {
		return false, NewInvalidPlaybackError("not showing questions yet")
	}
	if !s.Answered {
		return false, NewInvalidPlaybackError("no answer recorded for this question")
	}
	if s.QuestionIndex >= len(t.Questions)-1 {
		s.Completed = true
		return true, nil
	}
	s.QuestionIndex++
	s.SelectedAnswer = nil
	s.Correct = nil
	s.Answered = false
	return false, nil
}

// CurrentQuestion returns the question the session is showing, or nil while
// still on the content screens.
func (s *PlaybackSession) CurrentQuestion(t *Tutorial) *Question {
	if !s.ShowingQuestions || s.Completed {
		return nil
	}
	if s.QuestionIndex < 0 || s.QuestionIndex >= len(t.Questions) {
		return nil
	}
	return &t.Questions[s.QuestionIndex]
}
