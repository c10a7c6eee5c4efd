package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"aibubu/internal/config"
	"aibubu/internal/domain"
	"aibubu/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestClient(server *httptest.Server) domain.SpeechClient {
	restyClient := resty.New().SetBaseURL(server.URL)
	return NewElevenLabsClientWithResty(restyClient, "eleven_multilingual_v2")
}

func TestSynthesize(t *testing.T) {
	audio := []byte("mp3-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello!", body["text"])
		assert.Equal(t, "eleven_multilingual_v2", body["model_id"])

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	client := newTestClient(server)
	speech, err := client.Synthesize(context.Background(), "Hello!", "voice-123")
	require.NoError(t, err)

	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), speech.AudioBase64)
	assert.Equal(t, "audio/mpeg", speech.ContentType)
}

func TestSynthesizeUsesDefaultVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/"+DefaultVoiceID, r.URL.Path)
		_, _ = w.Write([]byte("audio"))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Synthesize(context.Background(), "Hello!", "")
	require.NoError(t, err)
}

func TestSynthesizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.Synthesize(context.Background(), "Hello!", "voice-123")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeSpeechServiceError, domainErr.Code)
}

func TestCloneVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/voices/add", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My Voice", r.FormValue("name"))
		assert.Equal(t, "for tutorials", r.FormValue("description"))

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "voice-recording.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"voice_id":"new-voice-id"}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	cloned, err := client.CloneVoice(context.Background(), []byte("wav-bytes"), "My Voice", "for tutorials")
	require.NoError(t, err)

	assert.Equal(t, "new-voice-id", cloned.VoiceID)
}

func TestCloneVoiceRejectsMissingVoiceID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.CloneVoice(context.Background(), []byte("wav-bytes"), "My Voice", "")
	require.Error(t, err)
}
