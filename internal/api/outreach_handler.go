package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/services"
)

// OutreachHandler tracks sent messages and serves the counters
type OutreachHandler struct {
	workspaces *services.WorkspaceService
	logger     logger.Logger
}

// NewOutreachHandler creates a new outreach handler
func NewOutreachHandler(workspaces *services.WorkspaceService, log logger.Logger) *OutreachHandler {
	return &OutreachHandler{workspaces: workspaces, logger: log}
}

type trackMessageRequest struct {
	Channel string `json:"channel" binding:"required"`
	LeadID  string `json:"leadId"`
}

// TrackMessage counts one message sent to a lead
func (h *OutreachHandler) TrackMessage(c *gin.Context) {
	var req trackMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid outreach format", err)
		return
	}
	channel, err := models.ParseChannel(req.Channel)
	if err != nil {
		badRequest(c, "Unknown outreach channel", err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.workspaces.TrackSentMessage(ctx, c.Param("user_id"), channel, req.LeadID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now().UTC(),
	})
}

// GetStats returns the stored counters
func (h *OutreachHandler) GetStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.workspaces.OutreachStats(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now().UTC(),
	})
}

// RefreshStats recomputes the lead-derived counters
func (h *OutreachHandler) RefreshStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.workspaces.RefreshOutreachStats(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now().UTC(),
	})
}
