package dto

import "aibubu/internal/domain"

// SelectAnswerRequest records the answer chosen for the current question.
type SelectAnswerRequest struct {
	AnswerIndex int `json:"answer_index"`
}

// PlaybackStateResponse is the session as the client renders it: the current
// screen or question plus position counters. Correct answers are never
// echoed back for unanswered questions.
type PlaybackStateResponse struct {
	TutorialID       string                `json:"tutorial_id"`
	ScreenIndex      int                   `json:"screen_index"`
	QuestionIndex    int                   `json:"question_index"`
	ShowingQuestions bool                  `json:"showing_questions"`
	Completed        bool                  `json:"completed"`
	Answered         bool                  `json:"answered"`
	SelectedAnswer   *int                  `json:"selected_answer,omitempty"`
	Correct          *bool                 `json:"correct,omitempty"`
	TotalScreens     int                   `json:"total_screens"`
	TotalQuestions   int                   `json:"total_questions"`
	Screen           *domain.ContentScreen `json:"screen,omitempty"`
	Question         *PlaybackQuestion     `json:"question,omitempty"`
	PointsAwarded    int                   `json:"points_awarded,omitempty"`
}

// PlaybackQuestion is the question as shown during playback, without the
// correct answer index.
type PlaybackQuestion struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Instruction string   `json:"instruction"`
	Question    string   `json:"question,omitempty"`
	Options     []string `json:"options,omitempty"`
	Phrase      string   `json:"phrase,omitempty"`
	Language    string   `json:"language,omitempty"`
	Phonetic    string   `json:"phonetic,omitempty"`
}

// NewPlaybackStateResponse projects a session onto its tutorial.
func NewPlaybackStateResponse(s *domain.PlaybackSession, t *domain.Tutorial) *PlaybackStateResponse {
	resp := &PlaybackStateResponse{
		TutorialID:       s.TutorialID,
		ScreenIndex:      s.ScreenIndex,
		QuestionIndex:    s.QuestionIndex,
		ShowingQuestions: s.ShowingQuestions,
		Completed:        s.Completed,
		Answered:         s.Answered,
		SelectedAnswer:   s.SelectedAnswer,
		Correct:          s.Correct,
		TotalScreens:     len(t.Screens),
		TotalQuestions:   len(t.Questions),
	}
	if !s.ShowingQuestions && !s.Completed && s.ScreenIndex < len(t.Screens) {
		screen := t.Screens[s.ScreenIndex]
		resp.Screen = &screen
	}
	if q := s.CurrentQuestion(t); q != nil {
		resp.Question = &PlaybackQuestion{
			ID:          q.ID,
			Type:        q.Type,
			Instruction: q.Instruction,
			Question:    q.Question,
			Options:     q.Options,
			Phrase:      q.Phrase,
			Language:    q.Language,
			Phonetic:    q.Phonetic,
		}
	}
	return resp
}
