package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// postgresDB is the subset of *sql.DB the repository needs
type postgresDB interface {
	dbExecutor
	txBeginner
}

// PostgresRepository stores each workspace as three JSONB rows in workspace_blobs
type PostgresRepository struct {
	db     postgresDB
	logger logger.Logger
}

// NewPostgresRepository creates a repository on top of an open pool
func NewPostgresRepository(db *sql.DB, log logger.Logger) *PostgresRepository {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &PostgresRepository{db: db, logger: log}
}

// Load reads the three blobs of a user. A blob that is missing or cannot be
// decoded is replaced by its default.
func (r *PostgresRepository) Load(ctx context.Context, userID string) (Snapshot, error) {
	query := `
		SELECT kind, payload
		FROM workspace_blobs
		WHERE user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query workspace: %w", err)
	}
	defer rows.Close()

	blobs := make(map[string][]byte, 3)
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan workspace blob: %w", err)
		}
		blobs[kind] = payload
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read workspace blobs: %w", err)
	}

	return r.decodeSnapshot(userID, blobs), nil
}

// Save upserts all three blobs in one transaction
func (r *PostgresRepository) Save(ctx context.Context, userID string, snap Snapshot) error {
	blobs, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workspace_blobs (user_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, kind)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	return withTransaction(ctx, r.db, func(exec dbExecutor) error {
		for _, kind := range []string{KindLeads, KindICP, KindStats} {
			if _, err := exec.ExecContext(ctx, query, userID, kind, blobs[kind]); err != nil {
				return fmt.Errorf("failed to save %s blob: %w", kind, err)
			}
		}
		return nil
	})
}

// Delete removes every blob of a user
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workspace_blobs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

func encodeSnapshot(snap Snapshot) (map[string][]byte, error) {
	if snap.Leads == nil {
		snap.Leads = []models.Lead{}
	}
	snap.Stats.Normalize()

	leads, err := json.Marshal(snap.Leads)
	if err != nil {
		return nil, fmt.Errorf("failed to encode leads: %w", err)
	}
	icp, err := json.Marshal(snap.ICP)
	if err != nil {
		return nil, fmt.Errorf("failed to encode icp profile: %w", err)
	}
	stats, err := json.Marshal(snap.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode outreach stats: %w", err)
	}
	return map[string][]byte{KindLeads: leads, KindICP: icp, KindStats: stats}, nil
}

func (r *PostgresRepository) decodeSnapshot(userID string, blobs map[string][]byte) Snapshot {
	snap := NewSnapshot()

	if raw, ok := blobs[KindLeads]; ok {
		var leads []models.Lead
		if err := json.Unmarshal(raw, &leads); err != nil {
			r.logger.Error("Failed to decode leads blob", err, "user_id", userID)
		} else if leads != nil {
			snap.Leads = leads
		}
	}

	if raw, ok := blobs[KindICP]; ok {
		profile := scoring.EmptyProfile()
		if err := json.Unmarshal(raw, &profile); err != nil {
			r.logger.Error("Failed to decode icp blob", err, "user_id", userID)
		} else {
			snap.ICP = profile
		}
	}

	if raw, ok := blobs[KindStats]; ok {
		stats := models.NewOutreachStats()
		if err := json.Unmarshal(raw, &stats); err != nil {
			r.logger.Error("Failed to decode stats blob", err, "user_id", userID)
		} else {
			stats.Normalize()
			snap.Stats = stats
		}
	}

	return snap
}
