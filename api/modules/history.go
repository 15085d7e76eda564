package modules

import (
	"leaguedash/api/handlers"
	historyservice "leaguedash/api/services/history"
)

func initializeHistoryHandler(deps *ModuleDependencies) *handlers.HistoryHandler {
	// Initialize the history service and handler.
	historyDeps := &historyservice.HistoryServiceDeps{
		DB:       deps.DB,
		MemCache: deps.HistoryMemCache,
		Redis:    deps.Redis,
		MemTTL:   deps.Config.Dashboard.MemCacheTTL,
		RedisTTL: deps.Config.Dashboard.RedisTTL,
	}

	historyService := historyservice.NewHistoryService(historyDeps)

	historyHandlerDeps := &handlers.HistoryHandlerDependencies{
		HistoryService: historyService,
		Logger:         deps.Logger,
		MinDate:        deps.Config.MinDataDate(),
	}

	return handlers.NewHistoryHandler(historyHandlerDeps)
}
