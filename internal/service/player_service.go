package service

import (
	"context"

	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/repository"
)

// PlayerService serves the player's own profile and dashboard data.
type PlayerService interface {
	GetProfile(ctx context.Context, playerID string) (*dto.PlayerProfileResponse, error)
	GetProgress(ctx context.Context, playerID string) ([]dto.ProgressResponse, error)
}

type playerService struct {
	playerRepo   repository.PlayerRepository
	progressRepo repository.ProgressRepository
	tutorialRepo repository.TutorialRepository
}

// NewPlayerService creates a new instance of PlayerService.
func NewPlayerService(
	playerRepo repository.PlayerRepository,
	progressRepo repository.ProgressRepository,
	tutorialRepo repository.TutorialRepository,
) PlayerService {
	return &playerService{
		playerRepo:   playerRepo,
		progressRepo: progressRepo,
		tutorialRepo: tutorialRepo,
	}
}

// GetProfile returns the authenticated player's profile.
func (s *playerService) GetProfile(ctx context.Context, playerID string) (*dto.PlayerProfileResponse, error) {
	row, err := s.playerRepo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.NewNotFoundError("Player not found")
	}

	player := row.ToDomain()
	return &dto.PlayerProfileResponse{
		ID:          player.ID,
		Email:       player.Email,
		Username:    player.Username,
		TotalPoints: player.TotalPoints,
		Preferences: player.Preferences,
	}, nil
}

// GetProgress returns the player's progress records with tutorial titles.
func (s *playerService) GetProgress(ctx context.Context, playerID string) ([]dto.ProgressResponse, error) {
	records, err := s.progressRepo.GetProgressByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgressResponse, 0, len(records))
	for i := range records {
		rec := records[i].ToDomain()
		title := ""
		if tutorial, err := s.tutorialRepo.GetTutorialByID(ctx, rec.TutorialID); err == nil && tutorial != nil {
			title = tutorial.Title
		}
		responses = append(responses, dto.ProgressResponse{
			TutorialID:   rec.TutorialID,
			Title:        title,
			Status:       rec.Status,
			PointsEarned: rec.PointsEarned,
			CompletedAt:  rec.CompletedAt,
		})
	}
	return responses, nil
}
