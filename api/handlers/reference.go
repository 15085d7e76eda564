package handlers

import (
	"net/http"

	referenceservice "leaguedash/api/services/reference"
	"leaguedash/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler exposes the league and split listings used to populate
// the dashboard filters.
type ReferenceHandler struct {
	referenceService *referenceservice.ReferenceService
	logger           *logger.Logger
}

// ReferenceHandlerDependencies is the dependency list for the handler.
type ReferenceHandlerDependencies struct {
	ReferenceService *referenceservice.ReferenceService
	Logger           *logger.Logger
}

// NewReferenceHandler creates a reference handler.
func NewReferenceHandler(deps *ReferenceHandlerDependencies) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: deps.ReferenceService,
		logger:           deps.Logger,
	}
}

// GetLeagues handles GET /leagues.
func (h *ReferenceHandler) GetLeagues(c *gin.Context) {
	leagues, err := h.referenceService.Leagues(c.Request.Context())
	if err != nil {
		h.logger.Errorf("leagues failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the leagues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": leagues})
}

// GetSplits handles GET /splits.
func (h *ReferenceHandler) GetSplits(c *gin.Context) {
	splits, err := h.referenceService.Splits(c.Request.Context())
	if err != nil {
		h.logger.Errorf("splits failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "couldn't load the splits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": splits})
}
