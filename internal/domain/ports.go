package domain

import "context"

// TransactionManager abstracts transactional execution. The transaction is
// carried in the context so repositories can pick it up transparently.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GenerateType selects what the content generator produces.
type GenerateType string

const (
	GenerateContent   GenerateType = "content"
	GenerateQuestions GenerateType = "questions"
)

// TutorialInfo gives the generator context about the tutorial being authored.
type TutorialInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  int    `json:"difficulty"`
}

// GeneratedContent is the raw output of one generation call, before
// post-processing normalizes it.
type GeneratedContent struct {
	Screens   []ContentScreen `json:"screens,omitempty"`
	Questions []Question      `json:"questions,omitempty"`
}

// ContentGenerator is the port for LLM-backed tutorial content generation.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, info TutorialInfo, generateType GenerateType) (*GeneratedContent, error)
}

// SynthesizedSpeech is the result of one TTS call.
type SynthesizedSpeech struct {
	AudioBase64 string
	ContentType string
}

// ClonedVoice is the result of one voice clone call.
type ClonedVoice struct {
	VoiceID string
}

// SpeechClient is the port for the external speech service.
type SpeechClient interface {
	Synthesize(ctx context.Context, text, voiceID string) (*SynthesizedSpeech, error)
	CloneVoice(ctx context.Context, audio []byte, name, description string) (*ClonedVoice, error)
}
