package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aibubu/internal/cache"
	"aibubu/internal/domain"
	"aibubu/internal/dto"
	"aibubu/internal/logger"
	"aibubu/internal/repository"
	"aibubu/internal/repository/models"
	"aibubu/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const marketplaceCacheKey = "published_listing"

// MarketplaceService lists published tutorials and manages subscriptions.
type MarketplaceService interface {
	ListTutorials(ctx context.Context, playerID, search, category string) (*dto.MarketplaceListResponse, error)
	Subscribe(ctx context.Context, playerID, tutorialID string) (*dto.SubscribeResponse, error)
}

type marketplaceService struct {
	tutorialRepo     repository.TutorialRepository
	subscriptionRepo repository.SubscriptionRepository
	listingCache     domain.Cache
	listingTTL       time.Duration
	rebuildGroup     singleflight.Group
}

// NewMarketplaceService creates a new instance of MarketplaceService.
func NewMarketplaceService(
	tutorialRepo repository.TutorialRepository,
	subscriptionRepo repository.SubscriptionRepository,
	listingCache domain.Cache,
	listingTTL time.Duration,
) MarketplaceService {
	return &marketplaceService{
		tutorialRepo:     tutorialRepo,
		subscriptionRepo: subscriptionRepo,
		listingCache:     listingCache,
		listingTTL:       listingTTL,
	}
}

// ListTutorials returns the published listing filtered by the player's
// search terms, with their subscription status stamped on each entry. The
// unfiltered listing is cached; concurrent cache rebuilds are collapsed.
func (s *marketplaceService) ListTutorials(ctx context.Context, playerID, search, category string) (*dto.MarketplaceListResponse, error) {
	listing, err := s.getListing(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterTutorials(listing, search, category)

	subscribedIDs, err := s.subscriptionRepo.GetSubscribedTutorialIDs(ctx, playerID)
	if err != nil {
		return nil, err
	}
	subscribed := make(map[string]bool, len(subscribedIDs))
	for _, id := range subscribedIDs {
		subscribed[id] = true
	}
	for i := range filtered {
		filtered[i].Subscribed = subscribed[filtered[i].ID]
	}

	return &dto.MarketplaceListResponse{Tutorials: filtered}, nil
}

// Subscribe creates a subscription, rejecting duplicates.
func (s *marketplaceService) Subscribe(ctx context.Context, playerID, tutorialID string) (*dto.SubscribeResponse, error) {
	row, err := s.tutorialRepo.GetTutorialByID(ctx, tutorialID)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Published != 1 {
		return nil, domain.NewTutorialNotFoundError(tutorialID)
	}

	existing, err := s.subscriptionRepo.GetSubscription(ctx, playerID, tutorialID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAlreadySubscribedError(tutorialID)
	}

	sub := &models.TutorialSubscription{
		ID:         util.NewULID(),
		PlayerID:   playerID,
		TutorialID: tutorialID,
	}
	if err := s.subscriptionRepo.CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	created := sub.ToDomain()

	logger.Get().Info("Player subscribed to tutorial",
		zap.String("playerID", playerID),
		zap.String("tutorialID", tutorialID))

	return &dto.SubscribeResponse{SubscriptionID: created.ID, TutorialID: created.TutorialID}, nil
}

// getListing reads the cached published listing, rebuilding it from the
// database on a miss. The singleflight group keeps a cold cache from
// fanning out into parallel identical queries.
func (s *marketplaceService) getListing(ctx context.Context) ([]dto.MarketplaceTutorial, error) {
	key := cache.GenerateCacheKey("marketplace", "tutorials", marketplaceCacheKey)

	cached, err := s.listingCache.Get(ctx, key)
	if err == nil {
		var listing []dto.MarketplaceTutorial
		if err := json.Unmarshal([]byte(cached), &listing); err == nil {
			return listing, nil
		}
		logger.Get().Warn("Corrupt marketplace listing cache entry, rebuilding", zap.String("key", key))
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Marketplace listing cache read failed", zap.Error(err))
	}

	result, err, _ := s.rebuildGroup.Do(key, func() (interface{}, error) {
		rows, err := s.tutorialRepo.GetPublishedTutorials(ctx)
		if err != nil {
			return nil, err
		}

		listing := make([]dto.MarketplaceTutorial, 0, len(rows))
		for _, row := range rows {
			listing = append(listing, dto.MarketplaceTutorial{
				ID:            row.ID,
				Title:         row.Title,
				Description:   row.Description.String,
				Category:      row.Category,
				Difficulty:    row.Difficulty,
				PointsReward:  row.PointsReward,
				TeacherName:   row.TeacherName.String,
				ScreenCount:   len(row.Screens),
				QuestionCount: len(row.Questions),
			})
		}

		if data, err := json.Marshal(listing); err == nil {
			if err := s.listingCache.Set(ctx, key, string(data), s.listingTTL); err != nil {
				logger.Get().Warn("Failed to cache marketplace listing", zap.Error(err))
			}
		}
		return listing, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build marketplace listing: %w", err)
	}
	return result.([]dto.MarketplaceTutorial), nil
}

// FilterTutorials applies the marketplace search. The search term matches
// case-insensitively as a substring of the title, description, category, or
// teacher name; the category filter is an exact match. Both compose with AND.
func FilterTutorials(listing []dto.MarketplaceTutorial, search, category string) []dto.MarketplaceTutorial {
	filtered := make([]dto.MarketplaceTutorial, 0, len(listing))
	term := strings.ToLower(strings.TrimSpace(search))

	for _, t := range listing {
		if category != "" && t.Category != category {
			continue
		}
		if term != "" {
			haystack := []string{t.Title, t.Description, t.Category, t.TeacherName}
			matched := false
			for _, h := range haystack {
				if strings.Contains(strings.ToLower(h), term) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered
}
