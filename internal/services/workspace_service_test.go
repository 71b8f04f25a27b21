package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ignashub/ictperfect-tool2/internal/errors"
	"github.com/ignashub/ictperfect-tool2/internal/metrics"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/repository"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// zeroRandom always draws 0 and never shuffles
type zeroRandom struct{}

func (zeroRandom) Intn(int) int                 { return 0 }
func (zeroRandom) Shuffle(int, func(i, j int)) {}

type failingRepository struct {
	repository.WorkspaceRepository
	loadErr error
	saveErr error
}

func (r failingRepository) Load(ctx context.Context, userID string) (repository.Snapshot, error) {
	if r.loadErr != nil {
		return repository.Snapshot{}, r.loadErr
	}
	return repository.NewSnapshot(), nil
}

func (r failingRepository) Save(ctx context.Context, userID string, snap repository.Snapshot) error {
	return r.saveErr
}

func newTestService(t *testing.T, opts ...WorkspaceOption) (*WorkspaceService, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	engine := scoring.NewScoringEngine(
		scoring.WithRandomSource(zeroRandom{}),
		scoring.WithClock(func() time.Time { return testNow }),
	)
	seq := 0
	base := []WorkspaceOption{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("lead-%d", seq)
		}),
	}
	return NewWorkspaceService(repo, engine, append(base, opts...)...), repo
}

func hotInput() models.LeadInput {
	return models.LeadInput{
		Company:   "Mercy Health",
		Industry:  "Healthcare",
		Location:  "United States",
		Employees: "25-50",
		Title:     "CEO",
		Revenue:   "$5M",
		Score:     70,
	}
}

func TestAddLead_AssignsIdentityTierAndStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lead, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)

	assert.Equal(t, "lead-1", lead.ID)
	assert.Equal(t, models.TierHot, lead.Tier)
	assert.Equal(t, models.SourceManual, lead.Source)
	assert.Equal(t, testNow, lead.AddedDate)

	stats, err := svc.OutreachStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLeads)
	assert.Equal(t, 1, stats.QualifiedLeads)
	assert.Equal(t, 100.0, stats.ConversionRate)
	assert.Equal(t, 80, stats.AIConfidence)
}

func TestAddLead_HonoursProvidedTier(t *testing.T) {
	svc, _ := newTestService(t)

	in := hotInput()
	in.Tier = models.TierCold
	lead, err := svc.AddLead(context.Background(), "user-1", in)
	require.NoError(t, err)
	assert.Equal(t, models.TierCold, lead.Tier)
}

func TestAddLead_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		userID string
		input  models.LeadInput
		code   string
	}{
		{"missing user", "  ", hotInput(), apperrors.ErrCodeInvalidInput},
		{"score above range", "user-1", models.LeadInput{Company: "Acme", Score: 150}, apperrors.ErrCodeValidationError},
		{"negative score", "user-1", models.LeadInput{Company: "Acme", Score: -1}, apperrors.ErrCodeValidationError},
		{"missing company", "user-1", models.LeadInput{Score: 50}, apperrors.ErrCodeValidationError},
		{"unknown tier", "user-1", models.LeadInput{Company: "Acme", Tier: "Lukewarm"}, apperrors.ErrCodeValidationError},
		{"bad email", "user-1", models.LeadInput{Company: "Acme", Email: "not-an-email"}, apperrors.ErrCodeValidationError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddLead(ctx, tc.userID, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
		})
	}

	ws, err := svc.Workspace(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ws.Leads)
	assert.False(t, ws.HasAnyData)
}

func TestAddLeads_AllOrNothing(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLeads(ctx, "user-1", []models.LeadInput{hotInput(), {Company: "Broken", Score: 101}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidationError, apperrors.CodeOf(err))

	ws, err := svc.Workspace(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, ws.Leads)

	_, err = svc.AddLeads(ctx, "user-1", nil)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}

func TestAddLeads_ConversionRateRounding(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLeads(ctx, "user-1", []models.LeadInput{
		{Company: "A", Score: 90},
		{Company: "B", Score: 70},
		{Company: "C", Score: 69},
	})
	require.NoError(t, err)

	stats, err := svc.OutreachStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 2, stats.QualifiedLeads)
	assert.Equal(t, 66.7, stats.ConversionRate)
}

func TestGenerateICP_WithoutLeadsUsesFallbacks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	profile, err := svc.GenerateICP(ctx, "user-1", models.UserContext{Industry: "Fintech", Country: "Germany"})
	require.NoError(t, err)

	assert.True(t, profile.IsGenerated)
	assert.Equal(t, 75, profile.Confidence)
	assert.Equal(t, "Fintech", profile.PrimaryIndustries[0])
	assert.Len(t, profile.PrimaryIndustries, 3)
	assert.Equal(t, "51-200 employees", profile.IdealCompanySize)
	assert.Equal(t, 10000, profile.TotalAddressableMarket)
	assert.Equal(t, 10, profile.ConversionPrediction)
	require.NotNil(t, profile.GeneratedDate)
	assert.Equal(t, testNow, *profile.GeneratedDate)

	ws, err := svc.Workspace(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, ws.HasAnyData)
}

func TestGenerateICP_ProfileIsNotRederivedWhenLeadsChange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)
	profile, err := svc.GenerateICP(ctx, "user-1", models.UserContext{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Healthcare"}, profile.PrimaryIndustries)

	_, err = svc.AddLeads(ctx, "user-1", []models.LeadInput{
		{Company: "Byte", Industry: "SaaS", Score: 90},
		{Company: "Cloud", Industry: "SaaS", Score: 90},
	})
	require.NoError(t, err)

	stored, err := svc.ICP(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile.PrimaryIndustries, stored.PrimaryIndustries)
	assert.Equal(t, profile.Criteria, stored.Criteria)
}

func TestGenerateICP_RejectsOversizedContext(t *testing.T) {
	svc, _ := newTestService(t)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.GenerateICP(context.Background(), "user-1", models.UserContext{Industry: string(long)})
	assert.Equal(t, apperrors.ErrCodeValidationError, apperrors.CodeOf(err))
}

func TestTrackSentMessage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lead, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)

	_, err = svc.TrackSentMessage(ctx, "user-1", models.ChannelEmail, lead.ID)
	require.NoError(t, err)
	stats, err := svc.TrackSentMessage(ctx, "user-1", models.ChannelEmail, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EmailsSent)
	assert.Equal(t, []string{lead.ID}, stats.EmailLeads)
	assert.True(t, stats.HasContacted(models.ChannelEmail, lead.ID))
	assert.False(t, stats.HasContacted(models.ChannelPhone, lead.ID))

	stats, err = svc.TrackSentMessage(ctx, "user-1", models.ChannelPhone, "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CallsMade)
	assert.Empty(t, stats.PhoneLeads)

	_, err = svc.TrackSentMessage(ctx, "user-1", models.Channel("fax"), lead.ID)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))

	// counters survive a stats refresh
	stats, err = svc.RefreshOutreachStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EmailsSent)
	assert.Equal(t, 1, stats.TotalLeads)
}

func TestRefreshOutreachStats_EmptyWorkspace(t *testing.T) {
	svc, _ := newTestService(t)

	stats, err := svc.RefreshOutreachStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLeads)
	assert.Equal(t, 0.0, stats.ConversionRate)
	assert.Equal(t, 0, stats.AIConfidence)
	assert.NotNil(t, stats.EmailLeads)
}

func TestMatchScore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	lead, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)

	score, err := svc.MatchScore(ctx, "user-1", lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Score, score)

	_, err = svc.GenerateICP(ctx, "user-1", models.UserContext{})
	require.NoError(t, err)

	detail, err := svc.Lead(ctx, "user-1", lead.ID)
	require.NoError(t, err)
	assert.True(t, detail.Match.Matched)
	assert.Contains(t, detail.Match.Dimensions, "industry")
	assert.NotContains(t, detail.Match.Dimensions, "jobTitle")
	// industry, size and region score 100; "$5M" hits the $5M - $10M row (75 @ .7)
	// icp = 292.5 / 3.1 = 94.35 -> 94; 94*.7 + 70*.3 = 86.8 -> 87
	assert.Equal(t, 94, detail.Match.ICPScore)
	assert.Equal(t, 87, detail.MatchScore)

	_, err = svc.MatchScore(ctx, "user-1", "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)
	_, err = svc.AddLead(ctx, "user-2", hotInput())
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "user-1"))

	ws, err := svc.Workspace(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ws.HasAnyData)

	other, err := svc.Workspace(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, other.Leads, 1)
}

func TestWorkspaceService_StorageErrors(t *testing.T) {
	boom := errors.New("connection refused")
	ctx := context.Background()

	svc := NewWorkspaceService(failingRepository{loadErr: boom}, nil)
	_, err := svc.Workspace(ctx, "user-1")
	assert.Equal(t, apperrors.ErrCodeStorageError, apperrors.CodeOf(err))
	assert.ErrorIs(t, err, boom)

	svc = NewWorkspaceService(failingRepository{saveErr: boom}, nil)
	_, err = svc.AddLead(ctx, "user-1", hotInput())
	assert.Equal(t, apperrors.ErrCodeStorageError, apperrors.CodeOf(err))
}

func TestWorkspaceService_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	svc, _ := newTestService(t, WithMetrics(rec))
	ctx := context.Background()

	_, err := svc.AddLead(ctx, "user-1", hotInput())
	require.NoError(t, err)
	_, err = svc.TrackSentMessage(ctx, "user-1", models.ChannelLinkedIn, "lead-1")
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "icp_leads_added_total", "icp_outreach_messages_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
