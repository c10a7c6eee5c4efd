package service

import (
	"context"
	"fmt"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"
	"aibubu/internal/repository"
	"aibubu/internal/repository/models"
	"aibubu/internal/util"

	"go.uber.org/zap"
)

// TutorialService covers the teacher authoring flow: drafts, edits, publish.
type TutorialService interface {
	CreateTutorial(ctx context.Context, ownerID string, req *dto.CreateTutorialRequest) (*dto.TutorialResponse, error)
	GetOwnTutorials(ctx context.Context, ownerID string) ([]dto.TutorialResponse, error)
	UpdateTutorial(ctx context.Context, ownerID, tutorialID string, req *dto.UpdateTutorialRequest) (*dto.TutorialResponse, error)
	PublishTutorial(ctx context.Context, ownerID, tutorialID string) (*dto.TutorialResponse, error)
}

type tutorialService struct {
	tutorialRepo repository.TutorialRepository
}

// NewTutorialService creates a new instance of TutorialService.
func NewTutorialService(tutorialRepo repository.TutorialRepository) TutorialService {
	return &tutorialService{tutorialRepo: tutorialRepo}
}

// CreateTutorial saves a new draft. Screens and questions may be empty at
// this point; publish enforces them.
func (s *tutorialService) CreateTutorial(ctx context.Context, ownerID string, req *dto.CreateTutorialRequest) (*dto.TutorialResponse, error) {
	tutorial, err := domain.NewTutorial(util.NewULID(), ownerID, req.Title, req.Description, req.Category, req.Difficulty, req.PointsReward)
	if err != nil {
		return nil, err
	}
	tutorial.Screens = req.Screens
	tutorial.Questions = req.Questions
	if err := tutorial.Validate(); err != nil {
		return nil, err
	}

	row := models.FromDomainTutorial(tutorial)
	if err := s.tutorialRepo.CreateTutorial(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create tutorial: %w", err)
	}
	tutorial.CreatedAt = row.CreatedAt
	tutorial.UpdatedAt = row.UpdatedAt

	logger.Get().Info("Tutorial draft created",
		zap.String("tutorialID", tutorial.ID),
		zap.String("ownerID", ownerID))

	return dto.NewTutorialResponse(tutorial), nil
}

// GetOwnTutorials lists the teacher's tutorials, drafts included.
func (s *tutorialService) GetOwnTutorials(ctx context.Context, ownerID string) ([]dto.TutorialResponse, error) {
	rows, err := s.tutorialRepo.GetTutorialsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TutorialResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, *dto.NewTutorialResponse(rows[i].ToDomain()))
	}
	return responses, nil
}

// UpdateTutorial replaces the tutorial's content. Owner-only.
func (s *tutorialService) UpdateTutorial(ctx context.Context, ownerID, tutorialID string, req *dto.UpdateTutorialRequest) (*dto.TutorialResponse, error) {
	tutorial, err := s.getOwnedTutorial(ctx, ownerID, tutorialID)
	if err != nil {
		return nil, err
	}

	tutorial.Title = req.Title
	tutorial.Description = req.Description
	tutorial.Category = req.Category
	tutorial.Difficulty = req.Difficulty
	tutorial.PointsReward = req.PointsReward
	tutorial.Screens = req.Screens
	tutorial.Questions = req.Questions

	if err := tutorial.Validate(); err != nil {
		return nil, err
	}

	row := models.FromDomainTutorial(tutorial)
	if err := s.tutorialRepo.UpdateTutorial(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to update tutorial: %w", err)
	}
	tutorial.UpdatedAt = row.UpdatedAt

	return dto.NewTutorialResponse(tutorial), nil
}

// PublishTutorial lists the tutorial in the marketplace. Requires at least
// one screen and one question.
func (s *tutorialService) PublishTutorial(ctx context.Context, ownerID, tutorialID string) (*dto.TutorialResponse, error) {
	tutorial, err := s.getOwnedTutorial(ctx, ownerID, tutorialID)
	if err != nil {
		return nil, err
	}

	if err := tutorial.CanPublish(); err != nil {
		return nil, err
	}

	if err := s.tutorialRepo.SetPublished(ctx, tutorialID, true); err != nil {
		return nil, fmt.Errorf("failed to publish tutorial: %w", err)
	}
	tutorial.Published = true

	logger.Get().Info("Tutorial published",
		zap.String("tutorialID", tutorialID),
		zap.String("ownerID", ownerID))

	return dto.NewTutorialResponse(tutorial), nil
}

func (s *tutorialService) getOwnedTutorial(ctx context.Context, ownerID, tutorialID string) (*domain.Tutorial, error) {
	row, err := s.tutorialRepo.GetTutorialByID(ctx, tutorialID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.NewTutorialNotFoundError(tutorialID)
	}
	tutorial := row.ToDomain()
	if tutorial.OwnerID != ownerID {
		return nil, domain.NewForbiddenError("You do not own this tutorial")
	}
	return tutorial, nil
}
