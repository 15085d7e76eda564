package main

import (
	"log"

	"leaguedash/api/cache"
	"leaguedash/api/modules"
	"leaguedash/api/routes"
	"leaguedash/pkg/config"
	"leaguedash/pkg/database"
	"leaguedash/pkg/logger"
	"leaguedash/pkg/redis"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading the configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Bucket)
	if err != nil {
		log.Fatalf("Error creating the logger: %v", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error running the migrations: %v", err)
	}

	redisClient := redis.NewClient(cfg)
	defer redisClient.Close()

	gin.SetMode(cfg.Server.Mode)

	deps := &modules.ModuleDependencies{
		Config:            cfg,
		DB:                db,
		Logger:            appLogger,
		Redis:             redisClient,
		DashboardMemCache: cache.NewMemCache(),
		HistoryMemCache:   cache.NewMemCache(),
		ReferenceMemCache: cache.NewMemCache(),
	}

	// Create a module with all necessary handlers.
	module := modules.NewModule(deps)

	// Create a new router with the routes setup.
	router := routes.NewRouter(module.Router, cfg.Server.AllowedOrigins)
	router.SetupRoutes(
		module.DashboardHandler,
		module.HistoryHandler,
		module.ReferenceHandler,
	)

	// Start the server.
	if err := router.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Error starting the server: %v", err)
	}
}
