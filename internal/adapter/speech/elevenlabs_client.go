package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"aibubu/internal/config"
	"aibubu/internal/domain"
	"aibubu/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultVoiceID is used when neither the request nor the player's
// preferences name a voice.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// elevenLabsClient implements domain.SpeechClient against the ElevenLabs API.
type elevenLabsClient struct {
	client  *resty.Client
	modelID string
}

// NewElevenLabsClient creates the ElevenLabs-backed speech client.
func NewElevenLabsClient(cfg config.ElevenLabsConfig) (domain.SpeechClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("elevenlabs API key cannot be empty")
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("xi-api-key", cfg.APIKey)
	return &elevenLabsClient{client: client, modelID: cfg.ModelID}, nil
}

// NewElevenLabsClientWithResty wires an existing resty client, used by tests.
func NewElevenLabsClientWithResty(client *resty.Client, modelID string) domain.SpeechClient {
	return &elevenLabsClient{client: client, modelID: modelID}
}

// Synthesize converts text to speech with the given voice. The audio comes
// back base64-encoded together with its content type so handlers can return
// it inline as JSON.
func (c *elevenLabsClient) Synthesize(ctx context.Context, text, voiceID string) (*domain.SynthesizedSpeech, error) {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"text":     text,
			"model_id": c.modelID,
		}).
		Post(fmt.Sprintf("/v1/text-to-speech/%s", voiceID))
	if err != nil {
		return nil, domain.NewSpeechServiceError(err)
	}
	if resp.IsError() {
		logger.Get().Error("ElevenLabs TTS request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return nil, domain.NewSpeechServiceError(fmt.Errorf("tts request returned status %d", resp.StatusCode()))
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	return &domain.SynthesizedSpeech{
		AudioBase64: base64.StdEncoding.EncodeToString(resp.Body()),
		ContentType: contentType,
	}, nil
}

// CloneVoice uploads a recording and creates a cloned voice, returning its id.
func (c *elevenLabsClient) CloneVoice(ctx context.Context, audio []byte, name, description string) (*domain.ClonedVoice, error) {
	var result struct {
		VoiceID string `json:"voice_id"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("files", "voice-recording.wav", bytes.NewReader(audio)).
		SetFormData(map[string]string{
			"name":        name,
			"description": description,
		}).
		SetResult(&result).
		Post("/v1/voices/add")
	if err != nil {
		return nil, domain.NewSpeechServiceError(err)
	}
	if resp.IsError() {
		logger.Get().Error("ElevenLabs voice clone request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return nil, domain.NewSpeechServiceError(fmt.Errorf("voice clone request returned status %d", resp.StatusCode()))
	}
	if result.VoiceID == "" {
		return nil, domain.NewSpeechServiceError(fmt.Errorf("voice clone response missing voice_id"))
	}

	return &domain.ClonedVoice{VoiceID: result.VoiceID}, nil
}
