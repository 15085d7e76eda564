package handlers

import (
	"net/http"
	"time"

	"leaguedash/api/filters"
	historyservice "leaguedash/api/services/history"
	"leaguedash/pkg/logger"
	"leaguedash/pkg/messages"

	"github.com/gin-gonic/gin"
)

// HistoryHandler exposes the daily time series endpoints.
type HistoryHandler struct {
	historyService *historyservice.HistoryService
	logger         *logger.Logger
	minDate        time.Time
}

// HistoryHandlerDependencies is the dependency list for the handler.
type HistoryHandlerDependencies struct {
	HistoryService *historyservice.HistoryService
	Logger         *logger.Logger
	MinDate        time.Time
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(deps *HistoryHandlerDependencies) *HistoryHandler {
	return &HistoryHandler{
		historyService: deps.HistoryService,
		logger:         deps.Logger,
		minDate:        deps.MinDate,
	}
}

// GetTeamHistory handles GET /team-history.
func (h *HistoryHandler) GetTeamHistory(c *gin.Context) {
	var params filters.HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.TeamId == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.MissingTeamId})
		return
	}

	filter, err := filters.NewHistoryFilter(&params, params.TeamId, h.minDate, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.historyService.TeamHistory(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("team history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the team history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": points})
}

// GetPlayerHistory handles GET /player-history.
func (h *HistoryHandler) GetPlayerHistory(c *gin.Context) {
	var params filters.HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.PlayerId == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.MissingPlayerId})
		return
	}

	filter, err := filters.NewHistoryFilter(&params, params.PlayerId, h.minDate, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.historyService.PlayerHistory(c.Request.Context(), filter)
	if err != nil {
		h.logger.Errorf("player history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the player history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": points})
}
