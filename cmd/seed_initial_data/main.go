package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"aibubu/internal/config"
	"aibubu/internal/database"
	"aibubu/internal/domain"
	"aibubu/internal/logger"
	"aibubu/internal/repository"
	"aibubu/internal/repository/models"
	"aibubu/internal/util"

	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/starter_tutorials.json"

type seedFile struct {
	Teacher struct {
		GoogleID string `json:"google_id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"teacher"`
	Tutorials []struct {
		Title        string                 `json:"title"`
		Description  string                 `json:"description"`
		Category     string                 `json:"category"`
		Difficulty   int                    `json:"difficulty"`
		PointsReward int                    `json:"points_reward"`
		Screens      []domain.ContentScreen `json:"screens"`
		Questions    []domain.Question      `json:"questions"`
	} `json:"tutorials"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seed seedFile
	if err := json.Unmarshal(byteValue, &seed); err != nil {
		log.Fatal("Failed to parse seed file", zap.Error(err))
	}

	playerRepo := repository.NewSQLXPlayerRepository(db)
	tutorialRepo := repository.NewSQLXTutorialRepository(db)

	// The starter tutorials belong to a dedicated platform account.
	teacher, err := playerRepo.GetPlayerByGoogleID(ctx, seed.Teacher.GoogleID)
	if err != nil {
		log.Fatal("Failed to look up seed teacher", zap.Error(err))
	}
	if teacher == nil {
		teacher = &models.Player{
			ID:       util.NewULID(),
			GoogleID: seed.Teacher.GoogleID,
			Email:    seed.Teacher.Email,
			Username: util.StringToNullString(seed.Teacher.Username),
		}
		if err := playerRepo.CreatePlayer(ctx, teacher); err != nil {
			log.Fatal("Failed to create seed teacher", zap.Error(err))
		}
		log.Info("Created seed teacher account", zap.String("playerID", teacher.ID))
	}

	existing, err := tutorialRepo.GetTutorialsByOwner(ctx, teacher.ID)
	if err != nil {
		log.Fatal("Failed to list existing seed tutorials", zap.Error(err))
	}
	existingTitles := make(map[string]bool, len(existing))
	for _, t := range existing {
		existingTitles[t.Title] = true
	}

	seeded := 0
	for _, entry := range seed.Tutorials {
		if existingTitles[entry.Title] {
			log.Info("Skipping existing tutorial", zap.String("title", entry.Title))
			continue
		}

		tutorial, err := domain.NewTutorial(util.NewULID(), teacher.ID, entry.Title, entry.Description, entry.Category, entry.Difficulty, entry.PointsReward)
		if err != nil {
			log.Fatal("Seed tutorial is invalid", zap.String("title", entry.Title), zap.Error(err))
		}
		tutorial.Screens = entry.Screens
		tutorial.Questions = entry.Questions
		tutorial.Published = true
		if err := tutorial.CanPublish(); err != nil {
			log.Fatal("Seed tutorial cannot be published", zap.String("title", entry.Title), zap.Error(err))
		}

		if err := tutorialRepo.CreateTutorial(ctx, models.FromDomainTutorial(tutorial)); err != nil {
			log.Fatal("Failed to insert seed tutorial", zap.String("title", entry.Title), zap.Error(err))
		}
		seeded++
		log.Info("Seeded tutorial", zap.String("title", entry.Title), zap.String("tutorialID", tutorial.ID))
	}

	log.Info("Initial data seeding finished", zap.Int("seeded", seeded), zap.Int("skipped", len(seed.Tutorials)-seeded))
}
