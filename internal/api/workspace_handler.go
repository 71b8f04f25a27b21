package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/services"
)

// WorkspaceHandler exposes a user's whole workspace
type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
	logger     logger.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaces *services.WorkspaceService, log logger.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, logger: log}
}

// GetWorkspace returns leads, profile, counters and whether any data exists
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	ws, err := h.workspaces.Workspace(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspace":  ws,
		"lead_count": len(ws.Leads),
		"timestamp":  time.Now().UTC(),
	})
}

// ResetWorkspace deletes everything stored for the user
func (h *WorkspaceHandler) ResetWorkspace(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.workspaces.Reset(ctx, c.Param("user_id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Workspace reset",
		"timestamp": time.Now().UTC(),
	})
}
