package modules

import (
	"leaguedash/api/handlers"
	dashboardservice "leaguedash/api/services/dashboard"
)

func initializeDashboardHandler(deps *ModuleDependencies) *handlers.DashboardHandler {
	// Initialize the dashboard service and handler.
	dashboardDeps := &dashboardservice.DashboardServiceDeps{
		DB:       deps.DB,
		MemCache: deps.DashboardMemCache,
		Redis:    deps.Redis,
		MemTTL:   deps.Config.Dashboard.MemCacheTTL,
		RedisTTL: deps.Config.Dashboard.RedisTTL,
	}

	dashboardService := dashboardservice.NewDashboardService(dashboardDeps)

	dashboardHandlerDeps := &handlers.DashboardHandlerDependencies{
		DashboardService: dashboardService,
		Logger:           deps.Logger,
		DefaultPerPage:   deps.Config.Dashboard.DefaultPerPage,
		MaxPerPage:       deps.Config.Dashboard.MaxPerPage,
		MinDate:          deps.Config.MinDataDate(),
	}

	return handlers.NewDashboardHandler(dashboardHandlerDeps)
}
