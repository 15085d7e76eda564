package modules

import (
	"leaguedash/api/cache"
	"leaguedash/api/handlers"
	"leaguedash/pkg/config"
	"leaguedash/pkg/logger"
	"leaguedash/pkg/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ModuleDependencies holds the shared infrastructure passed down to every
// handler initializer.
type ModuleDependencies struct {
	Config            *config.Config
	DB                *gorm.DB
	Logger            *logger.Logger
	Redis             *redis.Client
	DashboardMemCache cache.MemCache
	HistoryMemCache   cache.MemCache
	ReferenceMemCache cache.MemCache
}

// Module containing the necessary handlers.
type Module struct {
	Router           *gin.Engine
	DashboardHandler *handlers.DashboardHandler
	HistoryHandler   *handlers.HistoryHandler
	ReferenceHandler *handlers.ReferenceHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	return &Module{
		Router:           router,
		DashboardHandler: initializeDashboardHandler(deps),
		HistoryHandler:   initializeHistoryHandler(deps),
		ReferenceHandler: initializeReferenceHandler(deps),
	}
}
