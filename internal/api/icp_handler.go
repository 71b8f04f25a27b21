package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/services"
)

// ICPHandler generates and serves Ideal Customer Profiles
type ICPHandler struct {
	workspaces *services.WorkspaceService
	logger     logger.Logger
}

// NewICPHandler creates a new ICP handler
func NewICPHandler(workspaces *services.WorkspaceService, log logger.Logger) *ICPHandler {
	return &ICPHandler{workspaces: workspaces, logger: log}
}

// GenerateICP derives a new profile. The body is the onboarding context and may be empty.
func (h *ICPHandler) GenerateICP(c *gin.Context) {
	var userCtx models.UserContext
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&userCtx); err != nil {
			badRequest(c, "Invalid user context format", err)
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.workspaces.GenerateICP(ctx, c.Param("user_id"), userCtx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "ICP profile generated",
		"icp":       profile,
		"timestamp": time.Now().UTC(),
	})
}

// GetICP returns the stored profile, which may be the never-generated empty one
func (h *ICPHandler) GetICP(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.workspaces.ICP(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"icp":       profile,
		"timestamp": time.Now().UTC(),
	})
}
