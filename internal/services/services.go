package services

import (
	"github.com/ignashub/ictperfect-tool2/internal/repository"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// Services contains all application services
type Services struct {
	Workspace *WorkspaceService
	Export    *LeadExportService
}

// NewServices creates a new Services instance with all dependencies
func NewServices(repo repository.WorkspaceRepository, engine *scoring.ScoringEngine, opts ...WorkspaceOption) *Services {
	workspace := NewWorkspaceService(repo, engine, opts...)
	return &Services{
		Workspace: workspace,
		Export:    NewLeadExportService(workspace),
	}
}
