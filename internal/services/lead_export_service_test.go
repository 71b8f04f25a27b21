package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ignashub/ictperfect-tool2/internal/errors"
	"github.com/ignashub/ictperfect-tool2/internal/models"
)

func intPtr(v int) *int { return &v }

func seedExportWorkspace(t *testing.T) (*LeadExportService, *WorkspaceService) {
	t.Helper()
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLeads(ctx, "user-1", []models.LeadInput{
		{Company: "Alpha", Industry: "SaaS", Employees: "200-500", Location: "Germany", Score: 90, Source: models.SourceImport},
		{Company: "Beta", Industry: "SaaS", Employees: "200-500", Location: "Germany", Score: 60},
		{Company: "Gamma", Industry: "Retail", Employees: "1-10", Location: "Brazil", Score: 40, Tier: models.TierCold},
	})
	require.NoError(t, err)
	_, err = svc.GenerateICP(ctx, "user-1", models.UserContext{})
	require.NoError(t, err)
	_, err = svc.TrackSentMessage(ctx, "user-1", models.ChannelEmail, "lead-2")
	require.NoError(t, err)

	export := NewLeadExportService(svc)
	export.now = func() time.Time { return testNow }
	return export, svc
}

func TestGetQualifiedLeads_SortedByMatchScore(t *testing.T) {
	export, _ := seedExportWorkspace(t)

	leads, err := export.GetQualifiedLeads(context.Background(), "user-1", LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 3)

	assert.Equal(t, "Alpha", leads[0].Company)
	assert.Equal(t, "Beta", leads[1].Company)
	assert.Equal(t, "Gamma", leads[2].Company)
	for i := 1; i < len(leads); i++ {
		assert.GreaterOrEqual(t, leads[i-1].MatchScore, leads[i].MatchScore)
	}
	assert.Equal(t, []models.Channel{models.ChannelEmail}, leads[1].ContactedChannels)
	assert.Empty(t, leads[0].ContactedChannels)
}

func TestGetQualifiedLeads_Filters(t *testing.T) {
	export, _ := seedExportWorkspace(t)
	ctx := context.Background()
	past := testNow.Add(-time.Hour)

	testCases := []struct {
		name     string
		filter   LeadFilter
		expected []string
	}{
		{"by tier", LeadFilter{Tiers: []models.Tier{models.TierCold}}, []string{"Gamma"}},
		{"by source", LeadFilter{Sources: []models.Source{models.SourceImport}}, []string{"Alpha"}},
		{"by industry ignores case", LeadFilter{Industries: []string{"saas"}}, []string{"Alpha", "Beta"}},
		{"score range", LeadFilter{MinScore: intPtr(50), MaxScore: intPtr(80)}, []string{"Beta"}},
		{"match threshold", LeadFilter{MinMatchScore: intPtr(80)}, []string{"Alpha"}},
		{"limit", LeadFilter{Limit: intPtr(1)}, []string{"Alpha"}},
		{"added after", LeadFilter{AddedAfter: &past}, []string{"Alpha", "Beta", "Gamma"}},
		{"added after now", LeadFilter{AddedAfter: &testNow}, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			leads, err := export.GetQualifiedLeads(ctx, "user-1", tc.filter)
			require.NoError(t, err)
			names := []string{}
			for _, l := range leads {
				names = append(names, l.Company)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func TestExportQualifiedLeads_CSV(t *testing.T) {
	export, _ := seedExportWorkspace(t)

	data, err := export.ExportQualifiedLeads(context.Background(), "user-1", LeadFilter{}, LeadExportOptions{Format: FormatCSV})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "match_score", records[0][15])
	assert.Equal(t, "Alpha", records[1][1])
	assert.Equal(t, "email", records[2][18])
}

func TestExportQualifiedLeads_JSON(t *testing.T) {
	export, _ := seedExportWorkspace(t)
	ctx := context.Background()

	data, err := export.ExportQualifiedLeads(ctx, "user-1", LeadFilter{}, LeadExportOptions{Format: FormatJSON, IncludeMetadata: true})
	require.NoError(t, err)

	var payload struct {
		Count    int                      `json:"count"`
		Leads    []map[string]interface{} `json:"leads"`
		Metadata map[string]interface{}   `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, 3, payload.Count)
	assert.Equal(t, "Alpha", payload.Leads[0]["company"])
	assert.Contains(t, payload.Leads[0], "matchScore")
	assert.NotContains(t, payload.Leads[0], "match")
	assert.Equal(t, float64(3), payload.Metadata["total_leads"])

	_, err = export.ExportQualifiedLeads(ctx, "user-1", LeadFilter{}, LeadExportOptions{Format: "xml"})
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}

func TestParseExportFormat(t *testing.T) {
	f, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseExportFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func TestGetLeadStats(t *testing.T) {
	export, _ := seedExportWorkspace(t)

	stats, err := export.GetLeadStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 2, stats.ByIndustry["SaaS"])
	assert.Equal(t, 1, stats.ByTier["Cold"])
	assert.Equal(t, 1, stats.BySource["Import"])
	assert.Equal(t, 2, stats.BySource["Manual"])
	assert.Equal(t, 63.3, stats.AverageScore)
	assert.Equal(t, 1, stats.QualifiedLeads)
	assert.Equal(t, 1, stats.ContactedLeads)
	assert.Equal(t, stats.ByTier["Hot"]+stats.ByTier["Warm"], stats.EngagedLeads)
	assert.Equal(t, 2, stats.EngagedLeads)
	assert.True(t, stats.ProfileGenerated)
}

func TestGetLeadStats_EmptyWorkspace(t *testing.T) {
	svc, _ := newTestService(t)
	export := NewLeadExportService(svc)

	stats, err := export.GetLeadStats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalLeads)
	assert.Equal(t, 0.0, stats.AverageMatchScore)
	assert.False(t, stats.ProfileGenerated)
}
