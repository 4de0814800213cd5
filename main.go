package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"cleaning-booking/cmd"
	"cleaning-booking/internal/data/repository"
	"cleaning-booking/internal/wire"
	"cleaning-booking/internal/worker"
	"cleaning-booking/pkg/cache"
	"cleaning-booking/pkg/database"
	"cleaning-booking/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis (booking drafts)
	rdb, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Background session cleanup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.NewJanitor(repos.Session, time.Hour, logger).Run(ctx)

	// Wire all dependencies
	app := wire.Wiring(repos, rdb, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
