// @title aibubu API
// @version 1.0
// @description Backend API for the aibubu children's learning platform.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "aibubu/cmd/api/docs"
	"aibubu/internal/adapter"
	"aibubu/internal/adapter/contentgen"
	"aibubu/internal/adapter/speech"
	"aibubu/internal/cache"
	"aibubu/internal/config"
	"aibubu/internal/database"
	"aibubu/internal/handler"
	"aibubu/internal/logger"
	"aibubu/internal/middleware"
	"aibubu/internal/repository"
	"aibubu/internal/service"
	"aibubu/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	playerRepository := repository.NewSQLXPlayerRepository(db)
	tutorialRepository := repository.NewSQLXTutorialRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	subscriptionRepository := repository.NewSQLXSubscriptionRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("RedisCacheAdapter initialized")

	// Initialize external adapters
	generator, err := contentgen.NewGeminiGenerator(context.Background(), cfg.Gemini)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini content generator", zap.Error(err))
	}
	speechClient, err := speech.NewElevenLabsClient(cfg.ElevenLabs)
	if err != nil {
		appLogger.Fatal("Failed to create ElevenLabs client", zap.Error(err))
	}

	// Initialize services
	authService, err := service.NewAuthService(playerRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	playerService := service.NewPlayerService(playerRepository, progressRepository, tutorialRepository)
	tutorialService := service.NewTutorialService(tutorialRepository)
	marketplaceService := service.NewMarketplaceService(tutorialRepository, subscriptionRepository, cacheAdapter, cfg.CacheTTLs.MarketplaceListing)
	playbackService := service.NewPlaybackService(tutorialRepository, subscriptionRepository, progressRepository, playerRepository, txManager, cacheAdapter, cfg.CacheTTLs.PlaybackSession)
	generationService := service.NewGenerationService(generator)
	voiceService := service.NewVoiceService(speechClient, playerRepository)

	// Initialize handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(authService, cfg)
	playerHandler := handler.NewPlayerHandler(playerService)
	marketplaceHandler := handler.NewMarketplaceHandler(marketplaceService, validator)
	tutorialHandler := handler.NewTutorialHandler(tutorialService, generationService, validator)
	speechHandler := handler.NewSpeechHandler(voiceService, validator)
	playbackHandler := handler.NewPlaybackHandler(playbackService, validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// Player routes (all protected)
	playerGroup := apiGroup.Group("/players", middleware.Protected(authService))
	playerGroup.Get("/me", playerHandler.GetMe)
	playerGroup.Get("/me/progress", playerHandler.GetMyProgress)

	// Marketplace routes (all protected)
	marketplaceGroup := apiGroup.Group("/marketplace", middleware.Protected(authService))
	marketplaceGroup.Get("/tutorials", marketplaceHandler.ListTutorials)
	marketplaceGroup.Post("/tutorials/:id/subscribe", marketplaceHandler.Subscribe)

	// Teacher authoring routes (all protected)
	teacherGroup := apiGroup.Group("/teacher", middleware.Protected(authService))
	teacherGroup.Post("/tutorials", tutorialHandler.CreateTutorial)
	teacherGroup.Get("/tutorials", tutorialHandler.GetOwnTutorials)
	teacherGroup.Put("/tutorials/:id", tutorialHandler.UpdateTutorial)
	teacherGroup.Post("/tutorials/:id/publish", tutorialHandler.PublishTutorial)
	teacherGroup.Post("/generate-content", tutorialHandler.GenerateContent)
	teacherGroup.Post("/voice-clone", speechHandler.CloneVoice)

	// Speech routes (all protected)
	apiGroup.Post("/speech/synthesize", middleware.Protected(authService), speechHandler.Synthesize)

	// Playback routes (all protected)
	playbackGroup := apiGroup.Group("/playback", middleware.Protected(authService))
	playbackGroup.Post("/:tutorialID/start", playbackHandler.Start)
	playbackGroup.Post("/:tutorialID/advance-screen", playbackHandler.AdvanceScreen)
	playbackGroup.Post("/:tutorialID/previous-screen", playbackHandler.PreviousScreen)
	playbackGroup.Post("/:tutorialID/select-answer", playbackHandler.SelectAnswer)
	playbackGroup.Post("/:tutorialID/advance-question", playbackHandler.AdvanceQuestion)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
