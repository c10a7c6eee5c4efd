package service

import (
	"context"
	"testing"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeUsesRequestedVoice(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)
	ctx := context.Background()

	speechClient.On("Synthesize", ctx, "Hello!", "voice-123").
		Return(&domain.SynthesizedSpeech{AudioBase64: "YXVkaW8=", ContentType: "audio/mpeg"}, nil)

	resp, err := svc.Synthesize(ctx, testPlayerID, &dto.SynthesizeRequest{Text: "Hello!", VoiceID: "voice-123"})
	require.NoError(t, err)

	assert.Equal(t, "YXVkaW8=", resp.Audio)
	assert.Equal(t, "audio/mpeg", resp.ContentType)

	playerRepo.AssertNotCalled(t, "GetPlayerByID", mock.Anything, mock.Anything)
}

func TestSynthesizeFallsBackToStoredVoice(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)
	ctx := context.Background()

	playerRepo.On("GetPlayerByID", ctx, testPlayerID).Return(&models.Player{
		ID:          testPlayerID,
		Preferences: models.PreferencesJSON{VoiceID: "cloned-voice"},
	}, nil)
	speechClient.On("Synthesize", ctx, "Hello!", "cloned-voice").
		Return(&domain.SynthesizedSpeech{AudioBase64: "YXVkaW8=", ContentType: "audio/mpeg"}, nil)

	_, err := svc.Synthesize(ctx, testPlayerID, &dto.SynthesizeRequest{Text: "Hello!"})
	require.NoError(t, err)

	speechClient.AssertExpectations(t)
}

func TestSynthesizeRequiresText(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)

	_, err := svc.Synthesize(context.Background(), testPlayerID, &dto.SynthesizeRequest{})
	require.Error(t, err)

	speechClient.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything, mock.Anything)
}

func TestCloneVoiceStoresVoiceIDInPreferences(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)
	ctx := context.Background()

	audio := []byte("wav-bytes")
	speechClient.On("CloneVoice", ctx, audio, "My Voice", "for tutorials").
		Return(&domain.ClonedVoice{VoiceID: "new-voice-id"}, nil)
	playerRepo.On("GetPlayerByID", ctx, testPlayerID).Return(&models.Player{
		ID:          testPlayerID,
		Preferences: models.PreferencesJSON{Language: "ko"},
	}, nil)
	playerRepo.On("UpdatePreferences", ctx, testPlayerID, mock.MatchedBy(func(prefs models.PreferencesJSON) bool {
		// The new voice id is stored without losing other preferences.
		return prefs.VoiceID == "new-voice-id" && prefs.Language == "ko"
	})).Return(nil).Once()

	resp, err := svc.CloneVoice(ctx, testPlayerID, audio, "My Voice", "for tutorials")
	require.NoError(t, err)

	assert.Equal(t, "new-voice-id", resp.VoiceData.VoiceID)
	playerRepo.AssertExpectations(t)
}

func TestCloneVoiceValidatesInput(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)
	ctx := context.Background()

	_, err := svc.CloneVoice(ctx, testPlayerID, nil, "My Voice", "")
	require.Error(t, err)

	_, err = svc.CloneVoice(ctx, testPlayerID, []byte("wav"), "", "")
	require.Error(t, err)

	speechClient.AssertNotCalled(t, "CloneVoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCloneVoicePropagatesSpeechFailure(t *testing.T) {
	speechClient := new(MockSpeechClient)
	playerRepo := new(MockPlayerRepository)
	svc := NewVoiceService(speechClient, playerRepo)
	ctx := context.Background()

	speechClient.On("CloneVoice", ctx, mock.Anything, "My Voice", "").
		Return(nil, domain.NewSpeechServiceError(assert.AnError))

	_, err := svc.CloneVoice(ctx, testPlayerID, []byte("wav"), "My Voice", "")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSpeechServiceError, domainErr.Code)

	playerRepo.AssertNotCalled(t, "UpdatePreferences", mock.Anything, mock.Anything, mock.Anything)
}
