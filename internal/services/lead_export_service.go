package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/ignashub/ictperfect-tool2/internal/errors"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// LeadExportService handles filtering and exporting a workspace's leads
type LeadExportService struct {
	workspaces *WorkspaceService
	now        func() time.Time
}

// NewLeadExportService creates a new lead export service
func NewLeadExportService(workspaces *WorkspaceService) *LeadExportService {
	return &LeadExportService{
		workspaces: workspaces,
		now:        time.Now,
	}
}

// LeadFilter contains filtering criteria for stored leads
type LeadFilter struct {
	Tiers         []models.Tier   `json:"tiers"`           // Tiers to include
	Sources       []models.Source `json:"sources"`         // Sources to include
	Industries    []string        `json:"industries"`      // Industries to include, case-insensitive
	MinScore      *int            `json:"min_score"`       // Minimum lead score
	MaxScore      *int            `json:"max_score"`       // Maximum lead score
	MinMatchScore *int            `json:"min_match_score"` // Minimum ICP match score
	AddedAfter    *time.Time      `json:"added_after"`     // Only leads added after this time
	Limit         *int            `json:"limit"`           // Limit number of results
}

// ExportFormat specifies the format for exporting leads
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts "json" or "csv"; empty means json
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", apperrors.InvalidInput("unsupported export format", nil).WithDetails(s)
}

// LeadExportOptions contains options for exporting leads
type LeadExportOptions struct {
	Format                ExportFormat `json:"format"`
	IncludeMatchBreakdown bool         `json:"include_match_breakdown"`
	IncludeMetadata       bool         `json:"include_metadata"`
}

// ScoredLead is a stored lead with its fit against the workspace profile
type ScoredLead struct {
	models.Lead
	MatchScore        int                  `json:"matchScore"`
	Match             *scoring.MatchResult `json:"match,omitempty"`
	ContactedChannels []models.Channel     `json:"contactedChannels"`
}

// LeadStats summarizes a workspace's leads
type LeadStats struct {
	TotalLeads        int            `json:"totalLeads"`
	ByTier            map[string]int `json:"byTier"`
	BySource          map[string]int `json:"bySource"`
	ByIndustry        map[string]int `json:"byIndustry"`
	AverageScore      float64        `json:"averageScore"`
	AverageMatchScore float64        `json:"averageMatchScore"`
	QualifiedLeads    int            `json:"qualifiedLeads"`
	EngagedLeads      int            `json:"engagedLeads"`
	ContactedLeads    int            `json:"contactedLeads"`
	ProfileGenerated  bool           `json:"profileGenerated"`
}

// GetQualifiedLeads returns the leads that match the filter, best match first
func (s *LeadExportService) GetQualifiedLeads(ctx context.Context, userID string, filter LeadFilter) ([]ScoredLead, error) {
	ws, err := s.workspaces.Workspace(ctx, userID)
	if err != nil {
		return nil, err
	}

	leads := []ScoredLead{}
	for _, lead := range ws.Leads {
		if !filter.matchesLead(lead) {
			continue
		}
		scored := scoreLead(lead, ws.ICP, ws.Stats)
		if filter.MinMatchScore != nil && scored.MatchScore < *filter.MinMatchScore {
			continue
		}
		leads = append(leads, scored)
	}

	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].MatchScore > leads[j].MatchScore
	})

	if filter.Limit != nil && *filter.Limit >= 0 && len(leads) > *filter.Limit {
		leads = leads[:*filter.Limit]
	}
	return leads, nil
}

// ExportQualifiedLeads exports filtered leads in the specified format
func (s *LeadExportService) ExportQualifiedLeads(ctx context.Context, userID string, filter LeadFilter, options LeadExportOptions) ([]byte, error) {
	leads, err := s.GetQualifiedLeads(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	switch options.Format {
	case FormatJSON, "":
		return s.exportToJSON(leads, options)
	case FormatCSV:
		return s.exportToCSV(leads)
	default:
		return nil, apperrors.InvalidInput("unsupported export format", nil).WithDetails(string(options.Format))
	}
}

// GetLeadStats returns distribution and average figures for a workspace
func (s *LeadExportService) GetLeadStats(ctx context.Context, userID string) (*LeadStats, error) {
	ws, err := s.workspaces.Workspace(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &LeadStats{
		TotalLeads:       len(ws.Leads),
		ByTier:           make(map[string]int),
		BySource:         make(map[string]int),
		ByIndustry:       make(map[string]int),
		ProfileGenerated: ws.ICP.IsGenerated,
	}
	if len(ws.Leads) == 0 {
		return stats, nil
	}

	var scoreSum, matchSum int
	for _, lead := range ws.Leads {
		stats.ByTier[string(lead.Tier)]++
		stats.BySource[string(lead.Source)]++
		if lead.Industry != "" {
			stats.ByIndustry[lead.Industry]++
		}
		if lead.Score >= qualifiedScoreThreshold {
			stats.QualifiedLeads++
		}
		if lead.Tier.IsEngaged() {
			stats.EngagedLeads++
		}
		if len(ws.Stats.ContactedChannels(lead.ID)) > 0 {
			stats.ContactedLeads++
		}
		scoreSum += lead.Score
		matchSum += scoring.MatchScore(lead, ws.ICP)
	}
	n := float64(len(ws.Leads))
	stats.AverageScore = roundToTenth(float64(scoreSum) / n)
	stats.AverageMatchScore = roundToTenth(float64(matchSum) / n)
	return stats, nil
}

func scoreLead(lead models.Lead, profile scoring.ICPProfile, stats models.OutreachStats) ScoredLead {
	match := scoring.ExplainMatch(lead, profile)
	channels := stats.ContactedChannels(lead.ID)
	if channels == nil {
		channels = []models.Channel{}
	}
	return ScoredLead{
		Lead:              lead,
		MatchScore:        match.Score,
		Match:             &match,
		ContactedChannels: channels,
	}
}

func (f LeadFilter) matchesLead(lead models.Lead) bool {
	if len(f.Tiers) > 0 && !containsTier(f.Tiers, lead.Tier) {
		return false
	}
	if len(f.Sources) > 0 && !containsSource(f.Sources, lead.Source) {
		return false
	}
	if len(f.Industries) > 0 && !containsFold(f.Industries, lead.Industry) {
		return false
	}
	if f.MinScore != nil && lead.Score < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && lead.Score > *f.MaxScore {
		return false
	}
	if f.AddedAfter != nil && !lead.AddedDate.After(*f.AddedAfter) {
		return false
	}
	return true
}

func containsTier(tiers []models.Tier, tier models.Tier) bool {
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}

func containsSource(sources []models.Source, source models.Source) bool {
	for _, s := range sources {
		if s == source {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(strings.TrimSpace(candidate), v) {
			return true
		}
	}
	return false
}

// exportToJSON exports leads to JSON format
func (s *LeadExportService) exportToJSON(leads []ScoredLead, options LeadExportOptions) ([]byte, error) {
	if !options.IncludeMatchBreakdown {
		for i := range leads {
			leads[i].Match = nil
		}
	}

	exportData := map[string]interface{}{
		"leads":       leads,
		"count":       len(leads),
		"exported_at": s.now().UTC(),
	}

	if options.IncludeMetadata {
		exportData["metadata"] = map[string]interface{}{
			"export_format":           "json",
			"include_match_breakdown": options.IncludeMatchBreakdown,
			"total_leads":             len(leads),
		}
	}

	return json.MarshalIndent(exportData, "", "  ")
}

// exportToCSV exports leads to CSV format
func (s *LeadExportService) exportToCSV(leads []ScoredLead) ([]byte, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	headers := []string{
		"id", "company", "industry", "location", "employees", "revenue", "founded",
		"contact", "title", "email", "phone", "linkedin", "website",
		"score", "tier", "match_score", "source", "added_date", "contacted_channels",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, lead := range leads {
		channels := make([]string, len(lead.ContactedChannels))
		for i, c := range lead.ContactedChannels {
			channels[i] = string(c)
		}
		row := []string{
			lead.ID,
			lead.Company,
			lead.Industry,
			lead.Location,
			lead.Employees,
			lead.Revenue,
			lead.Founded,
			lead.Contact,
			lead.Title,
			lead.Email,
			lead.Phone,
			lead.LinkedIn,
			lead.Website,
			strconv.Itoa(lead.Score),
			string(lead.Tier),
			strconv.Itoa(lead.MatchScore),
			string(lead.Source),
			lead.AddedDate.Format(time.RFC3339),
			strings.Join(channels, "; "),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(output.String()), nil
}
