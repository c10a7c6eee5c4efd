package service

import (
	"context"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"
	"aibubu/internal/repository"

	"go.uber.org/zap"
)

// VoiceService covers TTS synthesis and voice cloning for teachers.
type VoiceService interface {
	Synthesize(ctx context.Context, playerID string, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error)
	CloneVoice(ctx context.Context, playerID string, audio []byte, name, description string) (*dto.VoiceCloneResponse, error)
}

type voiceService struct {
	speechClient domain.SpeechClient
	playerRepo   repository.PlayerRepository
}

// NewVoiceService creates a new instance of VoiceService.
func NewVoiceService(speechClient domain.SpeechClient, playerRepo repository.PlayerRepository) VoiceService {
	return &voiceService{speechClient: speechClient, playerRepo: playerRepo}
}

// Synthesize converts text to speech. When the request does not name a
// voice, the player's stored cloned voice is used if present.
func (s *voiceService) Synthesize(ctx context.Context, playerID string, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error) {
	if req.Text == "" {
		return nil, domain.NewInvalidInputError("text is required")
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		player, err := s.playerRepo.GetPlayerByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		if player != nil {
			voiceID = player.Preferences.VoiceID
		}
	}

	speech, err := s.speechClient.Synthesize(ctx, req.Text, voiceID)
	if err != nil {
		return nil, err
	}

	return &dto.SynthesizeResponse{
		Audio:       speech.AudioBase64,
		ContentType: speech.ContentType,
	}, nil
}

// CloneVoice creates a cloned voice from the uploaded recording and stores
// the resulting voice id in the player's preferences so later synthesis
// defaults to it.
func (s *voiceService) CloneVoice(ctx context.Context, playerID string, audio []byte, name, description string) (*dto.VoiceCloneResponse, error) {
	if len(audio) == 0 {
		return nil, domain.NewInvalidInputError("audio recording is required")
	}
	if name == "" {
		return nil, domain.NewInvalidInputError("name is required")
	}

	cloned, err := s.speechClient.CloneVoice(ctx, audio, name, description)
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, domain.NewNotFoundError("Player not found")
	}

	prefs := player.Preferences
	prefs.VoiceID = cloned.VoiceID
	if err := s.playerRepo.UpdatePreferences(ctx, playerID, prefs); err != nil {
		return nil, err
	}

	logger.Get().Info("Voice cloned for player",
		zap.String("playerID", playerID),
		zap.String("voiceID", cloned.VoiceID))

	return &dto.VoiceCloneResponse{VoiceData: dto.VoiceData{VoiceID: cloned.VoiceID}}, nil
}
