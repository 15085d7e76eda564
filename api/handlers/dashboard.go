package handlers

import (
	"net/http"
	"time"

	"leaguedash/api/filters"
	dashboardservice "leaguedash/api/services/dashboard"
	"leaguedash/pkg/logger"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the summary, the leaderboards and the small
// ranked boards.
type DashboardHandler struct {
	dashboardService *dashboardservice.DashboardService
	logger           *logger.Logger
	defaultPerPage   int
	maxPerPage       int
	minDate          time.Time
}

// DashboardHandlerDependencies is the dependency list for the handler.
type DashboardHandlerDependencies struct {
	DashboardService *dashboardservice.DashboardService
	Logger           *logger.Logger
	DefaultPerPage   int
	MaxPerPage       int
	MinDate          time.Time
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(deps *DashboardHandlerDependencies) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: deps.DashboardService,
		logger:           deps.Logger,
		defaultPerPage:   deps.DefaultPerPage,
		maxPerPage:       deps.MaxPerPage,
		minDate:          deps.MinDate,
	}
}

// GetSummary handles GET /summary.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	var params filters.SummaryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewSummaryFilter(&params, h.minDate, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// GetTeams handles GET /teams.
func (h *DashboardHandler) GetTeams(c *gin.Context) {
	filter, ok := h.bindLeaderboard(c)
	if !ok {
		return
	}

	board, err := h.dashboardService.TeamBoard(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("team leaderboard failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the team leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": board.Rows, "meta": board.Meta})
}

// GetPlayers handles GET /players.
func (h *DashboardHandler) GetPlayers(c *gin.Context) {
	filter, ok := h.bindLeaderboard(c)
	if !ok {
		return
	}

	board, err := h.dashboardService.PlayerBoard(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("player leaderboard failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the player leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": board.Rows, "meta": board.Meta})
}

// GetTopGrinders handles GET /top-grinders.
func (h *DashboardHandler) GetTopGrinders(c *gin.Context) {
	filter, ok := h.bindBoard(c, 0)
	if !ok {
		return
	}

	rows, err := h.dashboardService.TopGrinders(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("top grinders failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the top grinders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GetStreaks handles GET /streaks.
func (h *DashboardHandler) GetStreaks(c *gin.Context) {
	h.streaks(c, false)
}

// GetLossStreaks handles GET /loss-streaks.
func (h *DashboardHandler) GetLossStreaks(c *gin.Context) {
	h.streaks(c, true)
}

func (h *DashboardHandler) streaks(c *gin.Context, losses bool) {
	filter, ok := h.bindBoard(c, 0)
	if !ok {
		return
	}

	rows, err := h.dashboardService.Streaks(c.Request.Context(), filter, losses)
	if err != nil {
		h.logger.Errorf("streaks failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the streaks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GetTopLpGainers handles GET /top-lp-gainers.
func (h *DashboardHandler) GetTopLpGainers(c *gin.Context) {
	h.lpMovers(c, false)
}

// GetTopLpLosers handles GET /top-lp-losers.
func (h *DashboardHandler) GetTopLpLosers(c *gin.Context) {
	h.lpMovers(c, true)
}

func (h *DashboardHandler) lpMovers(c *gin.Context, losers bool) {
	// The LP boards are capped harder than the other lists.
	filter, ok := h.bindBoard(c, filters.LpMoversLimit)
	if !ok {
		return
	}

	rows, err := h.dashboardService.LpMovers(c.Request.Context(), filter, losers)
	if err != nil {
		h.logger.Errorf("lp movers failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the LP movers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// bindLeaderboard binds and resolves the leaderboard query parameters,
// writing the 400 response itself on failure.
func (h *DashboardHandler) bindLeaderboard(c *gin.Context) (*filters.LeaderboardFilter, bool) {
	var params filters.LeaderboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	filter, err := filters.NewLeaderboardFilter(&params, h.defaultPerPage, h.maxPerPage, h.minDate, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return filter, true
}

// bindBoard binds and resolves the small board query parameters.
func (h *DashboardHandler) bindBoard(c *gin.Context, maxLimit int) (*filters.BoardFilter, bool) {
	var params filters.BoardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	filter, err := filters.NewBoardFilter(&params, maxLimit, h.minDate, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return filter, true
}
