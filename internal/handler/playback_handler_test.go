package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"aibubu/internal/config"
	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"
	"aibubu/internal/middleware"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		log.Fatalf("Failed to initialize logger for handler tests: %v", err)
	}
	os.Exit(m.Run())
}

const (
	testPlayerID        = "01HPLAYER00000000000000001"
	validTutorialID     = "01HTWXYZ9ABCDEFGHJKMNPQRST"
	playbackURL         = "/playback/" + validTutorialID
	playbackURLBadParam = "/playback/not-a-ulid"
)

// MockPlaybackService is a mock implementation of service.PlaybackService
type MockPlaybackService struct {
	mock.Mock
}

func (m *MockPlaybackService) Start(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	args := m.Called(ctx, playerID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaybackStateResponse), args.Error(1)
}

func (m *MockPlaybackService) AdvanceScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	args := m.Called(ctx, playerID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaybackStateResponse), args.Error(1)
}

func (m *MockPlaybackService) PreviousScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	args := m.Called(ctx, playerID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaybackStateResponse), args.Error(1)
}

func (m *MockPlaybackService) SelectAnswer(ctx context.Context, playerID, tutorialID string, answerIndex int) (*dto.PlaybackStateResponse, error) {
	args := m.Called(ctx, playerID, tutorialID, answerIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaybackStateResponse), args.Error(1)
}

func (m *MockPlaybackService) AdvanceQuestion(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	args := m.Called(ctx, playerID, tutorialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PlaybackStateResponse), args.Error(1)
}

func setupPlaybackApp(svc *MockPlaybackService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	// Stand-in for the JWT middleware.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.PlayerIDKey, testPlayerID)
		return c.Next()
	})

	handler := NewPlaybackHandler(svc, validation.NewValidator())
	playback := app.Group("/playback/:tutorialID")
	playback.Post("/start", handler.Start)
	playback.Post("/advance-screen", handler.AdvanceScreen)
	playback.Post("/previous-screen", handler.PreviousScreen)
	playback.Post("/select-answer", handler.SelectAnswer)
	playback.Post("/advance-question", handler.AdvanceQuestion)
	return app
}

func TestPlaybackHandler_Start(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	svc.On("Start", mock.Anything, testPlayerID, validTutorialID).
		Return(&dto.PlaybackStateResponse{
			TutorialID:   validTutorialID,
			TotalScreens: 2,
		}, nil)

	req := httptest.NewRequest(http.MethodPost, playbackURL+"/start", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var state dto.PlaybackStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, validTutorialID, state.TutorialID)
	assert.Equal(t, 2, state.TotalScreens)

	svc.AssertExpectations(t)
}

func TestPlaybackHandler_InvalidTutorialID(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	req := httptest.NewRequest(http.MethodPost, playbackURLBadParam+"/start", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "tutorial_id", body.Errors[0].Field)

	svc.AssertNotCalled(t, "Start", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaybackHandler_StartNotSubscribed(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	svc.On("Start", mock.Anything, testPlayerID, validTutorialID).
		Return(nil, domain.NewNotSubscribedError(validTutorialID))

	req := httptest.NewRequest(http.MethodPost, playbackURL+"/start", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeNotSubscribed), body.Code)
}

func TestPlaybackHandler_SelectAnswer(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	correct := true
	svc.On("SelectAnswer", mock.Anything, testPlayerID, validTutorialID, 1).
		Return(&dto.PlaybackStateResponse{
			TutorialID:       validTutorialID,
			ShowingQuestions: true,
			Answered:         true,
			Correct:          &correct,
		}, nil)

	payload, _ := json.Marshal(dto.SelectAnswerRequest{AnswerIndex: 1})
	req := httptest.NewRequest(http.MethodPost, playbackURL+"/select-answer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var state dto.PlaybackStateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.True(t, state.Answered)
	require.NotNil(t, state.Correct)
	assert.True(t, *state.Correct)
}

func TestPlaybackHandler_AnswerAlreadyLocked(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	svc.On("SelectAnswer", mock.Anything, testPlayerID, validTutorialID, 2).
		Return(nil, domain.NewError(domain.CodeAnswerAlreadyLocked, "answer already recorded for this question", nil))

	payload, _ := json.Marshal(dto.SelectAnswerRequest{AnswerIndex: 2})
	req := httptest.NewRequest(http.MethodPost, playbackURL+"/select-answer", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPlaybackHandler_SessionGoneMapsTo404(t *testing.T) {
	svc := new(MockPlaybackService)
	app := setupPlaybackApp(svc)

	svc.On("AdvanceScreen", mock.Anything, testPlayerID, validTutorialID).
		Return(nil, domain.NewError(domain.CodePlaybackSessionGone, "No active playback session; start the tutorial first", nil))

	req := httptest.NewRequest(http.MethodPost, playbackURL+"/advance-screen", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
