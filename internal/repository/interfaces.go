package repository

import (
	"context"

	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// Blob kinds stored per user
const (
	KindLeads = "leads"
	KindICP   = "icp"
	KindStats = "stats"
)

// Snapshot is everything persisted for one user
type Snapshot struct {
	Leads []models.Lead
	ICP   scoring.ICPProfile
	Stats models.OutreachStats
}

// NewSnapshot returns the state of a workspace that has never been saved
func NewSnapshot() Snapshot {
	return Snapshot{
		Leads: []models.Lead{},
		ICP:   scoring.EmptyProfile(),
		Stats: models.NewOutreachStats(),
	}
}

// WorkspaceRepository defines the interface for workspace persistence.
// Load never fails for an unknown user; it returns NewSnapshot().
type WorkspaceRepository interface {
	Load(ctx context.Context, userID string) (Snapshot, error)
	Save(ctx context.Context, userID string, snap Snapshot) error
	Delete(ctx context.Context, userID string) error
}
