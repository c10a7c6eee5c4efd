package contentgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"aibubu/internal/config"
	"aibubu/internal/domain"
	"aibubu/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// geminiGenerator implements domain.ContentGenerator using the Gemini API.
type geminiGenerator struct {
	model      llms.Model
	maxRetries int
}

// NewGeminiGenerator creates the Gemini-backed content generator.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig) (domain.ContentGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}
	return &geminiGenerator{model: model, maxRetries: cfg.MaxRetries}, nil
}

// NewGeminiGeneratorWithModel wires an existing model, used by tests.
func NewGeminiGeneratorWithModel(model llms.Model, maxRetries int) domain.ContentGenerator {
	return &geminiGenerator{model: model, maxRetries: maxRetries}
}

// Generate asks the model for screens or questions and parses the JSON
// object embedded in its reply. Transient failures (call errors, malformed
// JSON) are retried up to the configured count.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string, info domain.TutorialInfo, generateType domain.GenerateType) (*domain.GeneratedContent, error) {
	l := logger.Get()

	fullPrompt, err := buildPrompt(prompt, info, generateType)
	if err != nil {
		return nil, err
	}

	var lastErr error
	attempts := g.maxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, err := llms.GenerateFromSinglePrompt(ctx, g.model, fullPrompt, llms.WithTemperature(0.7))
		if err != nil {
			l.Warn("Gemini call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			continue
		}

		content, err := parseGeneration(raw, generateType)
		if err != nil {
			l.Warn("Failed to parse Gemini response",
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			continue
		}
		return content, nil
	}
	return nil, domain.NewGenerationError(lastErr)
}

func buildPrompt(prompt string, info domain.TutorialInfo, generateType domain.GenerateType) (string, error) {
	header := fmt.Sprintf(`You are creating material for a children's learning tutorial.
Tutorial: %q
Description: %q
Category: %s, difficulty %d/10.
Teacher's request: %s

Keep every text field short and child-friendly (30 characters or less).
Respond with ONLY a JSON object, no prose around it.`,
		info.Title, info.Description, info.Category, info.Difficulty, prompt)

	switch generateType {
	case domain.GenerateContent:
		return header + `

Format:
{
  "screens": [
    {"type": "content", "title": "...", "content": "..."}
  ]
}
Allowed types: "content", "instruction", "example". Produce 3 to 5 screens.`, nil
	case domain.GenerateQuestions:
		return header + `

Format:
{
  "questions": [
    {"type": "multiple_choice", "instruction": "Choose answer", "question": "...", "options": ["a","b","c","d"], "correct_answer": 0},
    {"type": "pronunciation", "instruction": "Say it aloud", "phrase": "...", "language": "en"}
  ]
}
Multiple choice questions need exactly 4 options. Produce 3 to 5 questions.`, nil
	default:
		return "", domain.NewInvalidInputError(fmt.Sprintf("unknown generateType: %s", generateType))
	}
}

// parseGeneration extracts the JSON object between the first '{' and the
// last '}' and unmarshals it, tolerating code fences and chatter around it.
func parseGeneration(raw string, generateType domain.GenerateType) (*domain.GeneratedContent, error) {
	cleaned := strings.TrimSpace(raw)

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object found in LLM response: %s", cleaned)
	}

	var content domain.GeneratedContent
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LLM response: %w", err)
	}

	switch generateType {
	case domain.GenerateContent:
		if len(content.Screens) == 0 {
			return nil, fmt.Errorf("LLM response contained no screens")
		}
	case domain.GenerateQuestions:
		if len(content.Questions) == 0 {
			return nil, fmt.Errorf("LLM response contained no questions")
		}
	}
	return &content, nil
}
