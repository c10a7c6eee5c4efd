package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aibubu/internal/cache"
	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"
	"aibubu/internal/repository"

	"go.uber.org/zap"
)

// PlaybackService drives a player's run through a tutorial. The session
// itself lives in the cache; only completion touches the database.
type PlaybackService interface {
	Start(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error)
	AdvanceScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error)
	PreviousScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error)
	SelectAnswer(ctx context.Context, playerID, tutorialID string, answerIndex int) (*dto.PlaybackStateResponse, error)
	AdvanceQuestion(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error)
}

type playbackService struct {
	tutorialRepo     repository.TutorialRepository
	subscriptionRepo repository.SubscriptionRepository
	progressRepo     repository.ProgressRepository
	playerRepo       repository.PlayerRepository
	txManager        domain.TransactionManager
	sessionCache     domain.Cache
	sessionTTL       time.Duration
}

// NewPlaybackService creates a new instance of PlaybackService.
func NewPlaybackService(
	tutorialRepo repository.TutorialRepository,
	subscriptionRepo repository.SubscriptionRepository,
	progressRepo repository.ProgressRepository,
	playerRepo repository.PlayerRepository,
	txManager domain.TransactionManager,
	sessionCache domain.Cache,
	sessionTTL time.Duration,
) PlaybackService {
	return &playbackService{
		tutorialRepo:     tutorialRepo,
		subscriptionRepo: subscriptionRepo,
		progressRepo:     progressRepo,
		playerRepo:       playerRepo,
		txManager:        txManager,
		sessionCache:     sessionCache,
		sessionTTL:       sessionTTL,
	}
}

// Start begins a fresh playback run at the first screen. An existing session
// for the pair is overwritten, never resumed.
func (s *playbackService) Start(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	tutorial, err := s.loadPlayableTutorial(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}

	session := domain.NewPlaybackSession(tutorial)
	if err := s.saveSession(ctx, playerID, session); err != nil {
		return nil, err
	}

	if err := s.progressRepo.MarkInProgress(ctx, playerID, tutorialID); err != nil {
		// Progress is advisory at start; playback still works without it.
		logger.Get().Warn("Failed to mark tutorial in progress",
			zap.String("playerID", playerID),
			zap.String("tutorialID", tutorialID),
			zap.Error(err))
	}

	return dto.NewPlaybackStateResponse(session, tutorial), nil
}

// AdvanceScreen moves the session to the next screen or into the questions.
func (s *playbackService) AdvanceScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	tutorial, session, err := s.loadSession(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}
	if err := session.AdvanceScreen(tutorial); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, playerID, session); err != nil {
		return nil, err
	}
	return dto.NewPlaybackStateResponse(session, tutorial), nil
}

// PreviousScreen steps the session back one screen.
func (s *playbackService) PreviousScreen(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	tutorial, session, err := s.loadSession(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}
	if err := session.PreviousScreen(); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, playerID, session); err != nil {
		return nil, err
	}
	return dto.NewPlaybackStateResponse(session, tutorial), nil
}

// SelectAnswer records the answer for the current question.
func (s *playbackService) SelectAnswer(ctx context.Context, playerID, tutorialID string, answerIndex int) (*dto.PlaybackStateResponse, error) {
	tutorial, session, err := s.loadSession(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectAnswer(tutorial, answerIndex); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, playerID, session); err != nil {
		return nil, err
	}
	return dto.NewPlaybackStateResponse(session, tutorial), nil
}

// AdvanceQuestion moves past the current answered question. On the final
// question it completes the run: the progress upsert and the points award
// happen in one transaction, and the award is skipped when the pair was
// completed before.
func (s *playbackService) AdvanceQuestion(ctx context.Context, playerID, tutorialID string) (*dto.PlaybackStateResponse, error) {
	tutorial, session, err := s.loadSession(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}

	completed, err := session.AdvanceQuestion(tutorial)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPlaybackStateResponse(session, tutorial)

	if !completed {
		if err := s.saveSession(ctx, playerID, session); err != nil {
			return nil, err
		}
		return resp, nil
	}

	var alreadyCompleted bool
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		alreadyCompleted, txErr = s.progressRepo.UpsertCompletion(txCtx, playerID, tutorialID, tutorial.PointsReward)
		if txErr != nil {
			return txErr
		}
		if !alreadyCompleted {
			return s.playerRepo.IncrementPoints(txCtx, playerID, tutorial.PointsReward)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	if !alreadyCompleted {
		resp.PointsAwarded = tutorial.PointsReward
	}

	if err := s.sessionCache.Delete(ctx, cache.PlaybackSessionKey(playerID, tutorialID)); err != nil {
		logger.Get().Warn("Failed to delete playback session",
			zap.String("playerID", playerID),
			zap.String("tutorialID", tutorialID),
			zap.Error(err))
	}

	logger.Get().Info("Tutorial completed",
		zap.String("playerID", playerID),
		zap.String("tutorialID", tutorialID),
		zap.Bool("alreadyCompleted", alreadyCompleted),
		zap.Int("pointsAwarded", resp.PointsAwarded))

	return resp, nil
}

// loadPlayableTutorial fetches the tutorial and checks the player may play
// it: it must be published (owners may preview drafts) and the player must
// be subscribed or the owner.
func (s *playbackService) loadPlayableTutorial(ctx context.Context, playerID, tutorialID string) (*domain.Tutorial, error) {
	row, err := s.tutorialRepo.GetTutorialByID(ctx, tutorialID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.NewTutorialNotFoundError(tutorialID)
	}
	tutorial := row.ToDomain()

	if tutorial.OwnerID == playerID {
		return tutorial, nil
	}
	if !tutorial.Published {
		return nil, domain.NewError(domain.CodeNotPublished, "Tutorial is not published", nil)
	}

	sub, err := s.subscriptionRepo.GetSubscription(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.NewNotSubscribedError(tutorialID)
	}
	return tutorial, nil
}

func (s *playbackService) loadSession(ctx context.Context, playerID, tutorialID string) (*domain.Tutorial, *domain.PlaybackSession, error) {
	tutorial, err := s.loadPlayableTutorial(ctx, playerID, tutorialID)
	if err != nil {
		return nil, nil, err
	}

	raw, err := s.sessionCache.Get(ctx, cache.PlaybackSessionKey(playerID, tutorialID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil, domain.NewError(domain.CodePlaybackSessionGone, "No active playback session; start the tutorial first", nil)
		}
		return nil, nil, err
	}

	var session domain.PlaybackSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal playback session: %w", err)
	}
	return tutorial, &session, nil
}

func (s *playbackService) saveSession(ctx context.Context, playerID string, session *domain.PlaybackSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal playback session: %w", err)
	}
	return s.sessionCache.Set(ctx, cache.PlaybackSessionKey(playerID, session.TutorialID), string(data), s.sessionTTL)
}
