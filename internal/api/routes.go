package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/metrics"
	"github.com/ignashub/ictperfect-tool2/internal/repository"
	"github.com/ignashub/ictperfect-tool2/internal/services"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck() error
}

// Dependencies are the collaborators the handlers need. Store, Monitor and Metrics may be nil.
type Dependencies struct {
	Services    *services.Services
	Store       HealthChecker
	Monitor     *repository.StorageMonitor
	StorageName string
	Metrics     *metrics.Recorder
	Logger      logger.Logger
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	healthHandler := NewHealthHandler(deps.Store, deps.Monitor, deps.StorageName)
	workspaceHandler := NewWorkspaceHandler(deps.Services.Workspace, log)
	leadsHandler := NewLeadsHandler(deps.Services.Workspace, deps.Services.Export, log)
	icpHandler := NewICPHandler(deps.Services.Workspace, log)
	outreachHandler := NewOutreachHandler(deps.Services.Workspace, log)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.GetHealth)

		ws := v1.Group("/workspaces/:user_id")
		{
			ws.GET("", workspaceHandler.GetWorkspace)
			ws.DELETE("", workspaceHandler.ResetWorkspace)

			ws.GET("/leads", leadsHandler.ListLeads)
			ws.POST("/leads", leadsHandler.CreateLead)
			ws.POST("/leads/bulk", leadsHandler.CreateLeads)
			ws.GET("/leads/stats", leadsHandler.GetLeadStats)
			ws.GET("/leads/export", leadsHandler.ExportLeads)
			ws.GET("/leads/:lead_id", leadsHandler.GetLead)

			ws.POST("/icp", icpHandler.GenerateICP)
			ws.GET("/icp", icpHandler.GetICP)

			ws.POST("/outreach", outreachHandler.TrackMessage)
			ws.GET("/outreach", outreachHandler.GetStats)
			ws.POST("/outreach/refresh", outreachHandler.RefreshStats)
		}
	}

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
}
