package routes

import (
	"time"

	"leaguedash/api/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine, allowedOrigins []string) *Router {
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return &Router{
		api:    engine.Group("/api/v1/lol/dashboard"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.DashboardHandler:
			r.registerDashboardHandler(handler)
		case *handlers.HistoryHandler:
			r.registerHistoryHandler(handler)
		case *handlers.ReferenceHandler:
			r.registerReferenceHandler(handler)
		}
	}
}

// Register the dashboard handler.
func (r *Router) registerDashboardHandler(handler *handlers.DashboardHandler) {
	r.api.GET("/summary", handler.GetSummary)
	r.api.GET("/teams", handler.GetTeams)
	r.api.GET("/players", handler.GetPlayers)
	r.api.GET("/top-grinders", handler.GetTopGrinders)
	r.api.GET("/streaks", handler.GetStreaks)
	r.api.GET("/loss-streaks", handler.GetLossStreaks)
	r.api.GET("/top-lp-gainers", handler.GetTopLpGainers)
	r.api.GET("/top-lp-losers", handler.GetTopLpLosers)
}

// Register the history handler.
func (r *Router) registerHistoryHandler(handler *handlers.HistoryHandler) {
	r.api.GET("/team-history", handler.GetTeamHistory)
	r.api.GET("/player-history", handler.GetPlayerHistory)
}

// Register the reference handler.
func (r *Router) registerReferenceHandler(handler *handlers.ReferenceHandler) {
	r.api.GET("/leagues", handler.GetLeagues)
	r.api.GET("/splits", handler.GetSplits)
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}
