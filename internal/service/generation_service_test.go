package service

import (
	"context"
	"strings"
	"testing"

	"aibubu/internal/domain"
	"aibubu/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentRejectsBadRequests(t *testing.T) {
	generator := new(MockContentGenerator)
	svc := NewGenerationService(generator)
	ctx := context.Background()

	_, err := svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "numbers", GenerateType: "essay"})
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)

	_, err = svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "", GenerateType: "content"})
	require.Error(t, err)

	generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateContentTruncatesLongText(t *testing.T) {
	generator := new(MockContentGenerator)
	svc := NewGenerationService(generator)
	ctx := context.Background()

	longTitle := strings.Repeat("a", 50)
	generator.On("Generate", ctx, "counting", mock.Anything, domain.GenerateContent).
		Return(&domain.GeneratedContent{
			Screens: []domain.ContentScreen{
				{ID: "s1", Type: domain.ScreenTypeContent, Title: longTitle, Content: strings.Repeat("b", 31)},
			},
		}, nil)

	resp, err := svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "counting", GenerateType: "content"})
	require.NoError(t, err)
	require.Len(t, resp.Screens, 1)

	assert.Len(t, []rune(resp.Screens[0].Title), 30)
	assert.Len(t, []rune(resp.Screens[0].Content), 30)
}

func TestGenerateContentTruncationCountsRunes(t *testing.T) {
	generator := new(MockContentGenerator)
	svc := NewGenerationService(generator)
	ctx := context.Background()

	// 31 multibyte runes must come back as 30 runes, not 30 bytes.
	title := strings.Repeat("수", 31)
	generator.On("Generate", ctx, mock.Anything, mock.Anything, domain.GenerateContent).
		Return(&domain.GeneratedContent{
			Screens: []domain.ContentScreen{{Title: title, Content: "short"}},
		}, nil)

	resp, err := svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "counting", GenerateType: "content"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("수", 30), resp.Screens[0].Title)
	assert.Equal(t, "short", resp.Screens[0].Content)
}

func TestGenerateContentBackfillsIDsAndDefaults(t *testing.T) {
	generator := new(MockContentGenerator)
	svc := NewGenerationService(generator)
	ctx := context.Background()

	generator.On("Generate", ctx, "animals", mock.Anything, domain.GenerateQuestions).
		Return(&domain.GeneratedContent{
			Questions: []domain.Question{
				{Question: "Which animal barks?", Options: []string{"Cat", "Dog", "Fish", "Bird"}, CorrectAnswer: 1},
				{ID: "custom", Type: domain.QuestionTypePronunciation, Instruction: "Say it", Phrase: "Dog", Language: "en"},
				{Question: "Which animal meows?", Options: []string{"Cat", "Dog", "Fish", "Bird"}},
			},
		}, nil)

	resp, err := svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "animals", GenerateType: "questions"})
	require.NoError(t, err)
	require.Len(t, resp.Questions, 3)

	// Missing ids are back-filled by position; supplied ids are kept.
	assert.Equal(t, "q1", resp.Questions[0].ID)
	assert.Equal(t, "custom", resp.Questions[1].ID)
	assert.Equal(t, "q3", resp.Questions[2].ID)

	assert.Equal(t, domain.QuestionTypeMultipleChoice, resp.Questions[0].Type)
	assert.Equal(t, "Choose answer", resp.Questions[0].Instruction)
	assert.Equal(t, "Say it", resp.Questions[1].Instruction)
}

func TestGenerateContentPropagatesGeneratorFailure(t *testing.T) {
	generator := new(MockContentGenerator)
	svc := NewGenerationService(generator)
	ctx := context.Background()

	generator.On("Generate", ctx, mock.Anything, mock.Anything, domain.GenerateContent).
		Return(nil, domain.NewGenerationError(assert.AnError))

	_, err := svc.GenerateContent(ctx, &dto.GenerateContentRequest{Prompt: "counting", GenerateType: "content"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeGenerationFailed, domainErr.Code)
}
