package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ignashub/ictperfect-tool2/internal/errors"
	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/metrics"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/repository"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

const (
	qualifiedScoreThreshold = 70
	aiConfidenceBase        = 80
	aiConfidenceSpread      = 20
)

// Workspace is everything a user has stored
type Workspace struct {
	UserID     string               `json:"userId"`
	Leads      []models.Lead        `json:"leads"`
	ICP        scoring.ICPProfile   `json:"icp"`
	Stats      models.OutreachStats `json:"stats"`
	HasAnyData bool                 `json:"hasAnyData"`
}

// WorkspaceService owns the lead store, ICP profile and outreach counters
// of every user. Mutations are serialized and persisted before returning.
type WorkspaceService struct {
	repo    repository.WorkspaceRepository
	engine  *scoring.ScoringEngine
	metrics *metrics.Recorder
	logger  logger.Logger
	now     func() time.Time
	newID   func() string

	// mu serializes read-modify-write cycles and guards the engine's random source
	mu sync.Mutex
}

// WorkspaceOption configures a WorkspaceService
type WorkspaceOption func(*WorkspaceService)

// WithMetrics records lead, profile and outreach counters
func WithMetrics(m *metrics.Recorder) WorkspaceOption {
	return func(s *WorkspaceService) { s.metrics = m }
}

// WithLogger sets the service logger
func WithLogger(l logger.Logger) WorkspaceOption {
	return func(s *WorkspaceService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the clock used to stamp new leads
func WithClock(now func() time.Time) WorkspaceOption {
	return func(s *WorkspaceService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid-based lead ids
func WithIDGenerator(newID func() string) WorkspaceOption {
	return func(s *WorkspaceService) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(repo repository.WorkspaceRepository, engine *scoring.ScoringEngine, opts ...WorkspaceOption) *WorkspaceService {
	if engine == nil {
		engine = scoring.NewScoringEngine()
	}
	s := &WorkspaceService{
		repo:   repo,
		engine: engine,
		logger: logger.NewNopLogger(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workspace returns a user's stored data
func (s *WorkspaceService) Workspace(ctx context.Context, userID string) (*Workspace, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		UserID:     userID,
		Leads:      snap.Leads,
		ICP:        snap.ICP,
		Stats:      snap.Stats,
		HasAnyData: len(snap.Leads) > 0 || snap.ICP.IsGenerated,
	}, nil
}

// AddLead validates, tiers and stores one lead
func (s *WorkspaceService) AddLead(ctx context.Context, userID string, in models.LeadInput) (models.Lead, error) {
	leads, err := s.AddLeads(ctx, userID, []models.LeadInput{in})
	if err != nil {
		return models.Lead{}, err
	}
	return leads[0], nil
}

// AddLeads stores a batch of leads. Nothing is stored unless every input is valid.
func (s *WorkspaceService) AddLeads(ctx context.Context, userID string, inputs []models.LeadInput) ([]models.Lead, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, apperrors.InvalidInput("at least one lead is required", nil).WithOperation("AddLeads")
	}
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, apperrors.ValidationError("invalid lead", err).
				WithOperation("AddLeads").
				WithDetails(leadPosition(i, inputs[i].Company))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	added := make([]models.Lead, 0, len(inputs))
	for _, in := range inputs {
		tier := in.Tier
		if tier == "" {
			tier = s.engine.ClassifyTier(in)
		}
		lead := models.NewLead(in, s.newID(), tier, s.now().UTC())
		added = append(added, lead)
	}
	snap.Leads = append(snap.Leads, added...)
	s.refreshStats(&snap)

	if err := s.save(ctx, userID, snap); err != nil {
		return nil, err
	}

	for _, lead := range added {
		s.metrics.LeadAdded(string(lead.Tier), string(lead.Source))
	}
	s.logger.Info("Leads added", "user_id", userID, "count", len(added), "total", len(snap.Leads))
	return added, nil
}

// GenerateICP derives a new profile from the current leads and counters and
// replaces the stored one. Profiles are never regenerated implicitly.
func (s *WorkspaceService) GenerateICP(ctx context.Context, userID string, userCtx models.UserContext) (scoring.ICPProfile, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return scoring.ICPProfile{}, err
	}
	if err := userCtx.Validate(); err != nil {
		return scoring.ICPProfile{}, apperrors.ValidationError("invalid user context", err).WithOperation("GenerateICP")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx, userID)
	if err != nil {
		return scoring.ICPProfile{}, err
	}

	snap.ICP = s.engine.DeriveICP(snap.Leads, snap.Stats, userCtx)
	if err := s.save(ctx, userID, snap); err != nil {
		return scoring.ICPProfile{}, err
	}

	s.metrics.ProfileGenerated(len(snap.Leads) > 0, snap.ICP.Confidence)
	s.logger.Info("ICP profile generated",
		"user_id", userID,
		"leads", len(snap.Leads),
		"confidence", snap.ICP.Confidence,
		"industries", strings.Join(snap.ICP.PrimaryIndustries, ","))
	return snap.ICP, nil
}

// ICP returns the stored profile
func (s *WorkspaceService) ICP(ctx context.Context, userID string) (scoring.ICPProfile, error) {
	ws, err := s.Workspace(ctx, userID)
	if err != nil {
		return scoring.ICPProfile{}, err
	}
	return ws.ICP, nil
}

// TrackSentMessage counts a message sent through a channel. A lead id is
// remembered once per channel; an empty id only bumps the counter.
func (s *WorkspaceService) TrackSentMessage(ctx context.Context, userID string, channel models.Channel, leadID string) (models.OutreachStats, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return models.OutreachStats{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx, userID)
	if err != nil {
		return models.OutreachStats{}, err
	}
	if err := snap.Stats.Track(channel, strings.TrimSpace(leadID)); err != nil {
		return models.OutreachStats{}, apperrors.InvalidInput("unknown outreach channel", err).WithOperation("TrackSentMessage")
	}
	if err := s.save(ctx, userID, snap); err != nil {
		return models.OutreachStats{}, err
	}

	s.metrics.MessageSent(string(channel))
	s.logger.Debug("Outreach message tracked", "user_id", userID, "channel", channel, "lead_id", leadID)
	return snap.Stats, nil
}

// OutreachStats returns the stored counters
func (s *WorkspaceService) OutreachStats(ctx context.Context, userID string) (models.OutreachStats, error) {
	ws, err := s.Workspace(ctx, userID)
	if err != nil {
		return models.OutreachStats{}, err
	}
	return ws.Stats, nil
}

// RefreshOutreachStats recomputes the lead-derived counters
func (s *WorkspaceService) RefreshOutreachStats(ctx context.Context, userID string) (models.OutreachStats, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return models.OutreachStats{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx, userID)
	if err != nil {
		return models.OutreachStats{}, err
	}
	s.refreshStats(&snap)
	if err := s.save(ctx, userID, snap); err != nil {
		return models.OutreachStats{}, err
	}
	return snap.Stats, nil
}

// MatchScore scores one stored lead against the stored profile
func (s *WorkspaceService) MatchScore(ctx context.Context, userID, leadID string) (int, error) {
	lead, err := s.Lead(ctx, userID, leadID)
	if err != nil {
		return 0, err
	}
	return lead.MatchScore, nil
}

// Lead returns one stored lead with its match breakdown
func (s *WorkspaceService) Lead(ctx context.Context, userID, leadID string) (*ScoredLead, error) {
	ws, err := s.Workspace(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, lead := range ws.Leads {
		if lead.ID == leadID {
			scored := scoreLead(lead, ws.ICP, ws.Stats)
			return &scored, nil
		}
	}
	return nil, apperrors.NotFound("lead not found", nil).WithOperation("Lead").WithDetails(leadID)
}

// Reset deletes all of a user's data
func (s *WorkspaceService) Reset(ctx context.Context, userID string) error {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, userID); err != nil {
		return apperrors.StorageError("failed to delete workspace", err).WithOperation("Reset")
	}
	s.logger.Info("Workspace reset", "user_id", userID)
	return nil
}

// refreshStats updates totals, qualification and the displayed AI confidence.
// Callers must hold mu.
func (s *WorkspaceService) refreshStats(snap *repository.Snapshot) {
	total := len(snap.Leads)
	qualified := 0
	for _, lead := range snap.Leads {
		if lead.Score >= qualifiedScoreThreshold {
			qualified++
		}
	}

	snap.Stats.Normalize()
	snap.Stats.TotalLeads = total
	snap.Stats.QualifiedLeads = qualified
	snap.Stats.ConversionRate = 0
	snap.Stats.AIConfidence = 0
	if total > 0 {
		snap.Stats.ConversionRate = roundToTenth(float64(qualified) / float64(total) * 100)
		snap.Stats.AIConfidence = aiConfidenceBase + s.engine.Intn(aiConfidenceSpread)
	}
}

func (s *WorkspaceService) load(ctx context.Context, userID string) (repository.Snapshot, error) {
	snap, err := s.repo.Load(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load workspace", err, "user_id", userID)
		return repository.Snapshot{}, apperrors.StorageError("failed to load workspace", err)
	}
	return snap, nil
}

func (s *WorkspaceService) save(ctx context.Context, userID string, snap repository.Snapshot) error {
	if err := s.repo.Save(ctx, userID, snap); err != nil {
		s.logger.Error("Failed to save workspace", err, "user_id", userID)
		return apperrors.StorageError("failed to save workspace", err)
	}
	return nil
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", apperrors.InvalidInput("user id is required", nil)
	}
	return userID, nil
}

func leadPosition(i int, company string) string {
	if company == "" {
		return fmt.Sprintf("lead #%d", i+1)
	}
	return fmt.Sprintf("lead #%d (%s)", i+1, company)
}

// roundToTenth rounds half up to one decimal place
func roundToTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
