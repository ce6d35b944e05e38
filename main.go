package main

import (
	"context"
	"log"
	"time"

	"restaurant-booking/cmd"
	"restaurant-booking/internal/adaptor"
	"restaurant-booking/internal/data/repository"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/internal/wire"
	"restaurant-booking/pkg/ai"
	"restaurant-booking/pkg/cache"
	"restaurant-booking/pkg/database"
	"restaurant-booking/pkg/messenger"
	"restaurant-booking/pkg/utils"

	"go.uber.org/zap"
)

const startupTimeout = 30 * time.Second

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using default production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("session_store", config.Session.Store),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Connect to database and apply schema
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(startCtx, db); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	checks := map[string]adaptor.HealthCheck{
		"postgres": db.Ping,
	}

	// Session store
	sessions := repository.NewMemorySessionStore()
	if config.Session.Store == "redis" {
		client, err := cache.NewRedisClient(config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()

		sessions = repository.NewRedisSessionStore(client, config.Session.TTL, logger)
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		logger.Info("Redis session store enabled", zap.String("addr", config.Redis.Addr))
	}

	repos := repository.NewRepository(db, sessions, logger)

	templates, err := usecase.LoadTemplates(config.App.TemplatesFile)
	if err != nil {
		logger.Fatal("Failed to load templates", zap.String("path", config.App.TemplatesFile), zap.Error(err))
	}

	ext := usecase.Integrations{
		Operator: messenger.NewBotClient(messenger.Options{
			BaseURL:       config.Messenger.APIURL,
			Token:         config.Messenger.OperatorBotToken,
			RatePerSecond: config.Messenger.RatePerSecond,
		}),
		Direct: messenger.NewBotClient(messenger.Options{
			BaseURL:       config.Messenger.APIURL,
			Token:         config.Messenger.DirectBotToken,
			RatePerSecond: config.Messenger.RatePerSecond,
		}),
		Clock:     utils.NewSystemClock(config.Booking.Timezone),
		Templates: templates,
	}

	// AI parsing is optional; without a key only the local fast paths run.
	if config.AI.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(startCtx, config.AI.GeminiAPIKey, config.AI.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to init gemini client", zap.Error(err))
		}
		defer gemini.Close()

		ext.Parser = ai.NewParser(gemini)
		logger.Info("AI parsing enabled", zap.String("model", config.AI.GeminiModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, free-text parsing limited to local formats")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, ext, checks, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}
