package service

import (
	"context"
	"fmt"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"

	"go.uber.org/zap"
)

// maxGeneratedTextLen bounds every generated text field so content fits the
// young readers' screens.
const maxGeneratedTextLen = 30

// GenerationService produces tutorial material with the LLM and normalizes
// it to the tutorial schemas.
type GenerationService interface {
	GenerateContent(ctx context.Context, req *dto.GenerateContentRequest) (*dto.GenerateContentResponse, error)
}

type generationService struct {
	generator domain.ContentGenerator
}

// NewGenerationService creates a new instance of GenerationService.
func NewGenerationService(generator domain.ContentGenerator) GenerationService {
	return &generationService{generator: generator}
}

// GenerateContent runs one generation call and post-processes the output:
// text fields are truncated, missing question ids are back-filled as
// q{position}, and missing defaults are supplied.
func (s *generationService) GenerateContent(ctx context.Context, req *dto.GenerateContentRequest) (*dto.GenerateContentResponse, error) {
	generateType := domain.GenerateType(req.GenerateType)
	switch generateType {
	case domain.GenerateContent, domain.GenerateQuestions:
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("generateType must be %q or %q", domain.GenerateContent, domain.GenerateQuestions))
	}
	if req.Prompt == "" {
		return nil, domain.NewInvalidInputError("prompt is required")
	}

	content, err := s.generator.Generate(ctx, req.Prompt, req.TutorialInfo, generateType)
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerateContentResponse{
		Screens:   normalizeScreens(content.Screens),
		Questions: normalizeQuestions(content.Questions),
	}

	logger.Get().Info("Generated tutorial content",
		zap.String("generateType", req.GenerateType),
		zap.Int("screens", len(resp.Screens)),
		zap.Int("questions", len(resp.Questions)))

	return resp, nil
}

func normalizeScreens(screens []domain.ContentScreen) []domain.ContentScreen {
	for i := range screens {
		if screens[i].ID == "" {
			screens[i].ID = fmt.Sprintf("s%d", i+1)
		}
		if screens[i].Type == "" {
			screens[i].Type = domain.ScreenTypeContent
		}
		screens[i].Title = truncate(screens[i].Title)
		screens[i].Content = truncate(screens[i].Content)
	}
	return screens
}

func normalizeQuestions(questions []domain.Question) []domain.Question {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = fmt.Sprintf("q%d", i+1)
		}
		if questions[i].Type == "" {
			questions[i].Type = domain.QuestionTypeMultipleChoice
		}
		if questions[i].Instruction == "" {
			questions[i].Instruction = "Choose answer"
		}
		questions[i].Instruction = truncate(questions[i].Instruction)
		questions[i].Question = truncate(questions[i].Question)
		questions[i].Phrase = truncate(questions[i].Phrase)
		questions[i].Phonetic = truncate(questions[i].Phonetic)
		for j := range questions[i].Options {
			questions[i].Options[j] = truncate(questions[i].Options[j])
		}
	}
	return questions
}

// truncate caps a text field at maxGeneratedTextLen runes.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxGeneratedTextLen {
		return s
	}
	return string(runes[:maxGeneratedTextLen])
}
