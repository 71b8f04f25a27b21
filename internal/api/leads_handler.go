package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignashub/ictperfect-tool2/internal/logger"
	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/services"
)

const maxBulkLeads = 500

// LeadsHandler handles lead storage, listing and export
type LeadsHandler struct {
	workspaces *services.WorkspaceService
	export     *services.LeadExportService
	logger     logger.Logger
}

// NewLeadsHandler creates a new leads handler
func NewLeadsHandler(workspaces *services.WorkspaceService, export *services.LeadExportService, log logger.Logger) *LeadsHandler {
	return &LeadsHandler{workspaces: workspaces, export: export, logger: log}
}

type bulkLeadsRequest struct {
	Leads []models.LeadInput `json:"leads" binding:"required,min=1"`
}

// CreateLead stores one lead; the tier is computed when not supplied
func (h *LeadsHandler) CreateLead(c *gin.Context) {
	var in models.LeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid lead format", err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	lead, err := h.workspaces.AddLead(ctx, c.Param("user_id"), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Lead added successfully",
		"lead":      lead,
		"timestamp": time.Now().UTC(),
	})
}

// CreateLeads stores a batch; nothing is stored if any lead is invalid
func (h *LeadsHandler) CreateLeads(c *gin.Context) {
	var req bulkLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid bulk request format", err)
		return
	}
	if len(req.Leads) > maxBulkLeads {
		badRequest(c, fmt.Sprintf("At most %d leads per request", maxBulkLeads), nil)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	leads, err := h.workspaces.AddLeads(ctx, c.Param("user_id"), req.Leads)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Leads added successfully",
		"leads":     leads,
		"count":     len(leads),
		"timestamp": time.Now().UTC(),
	})
}

// ListLeads returns leads matching the query filters, best ICP match first
func (h *LeadsHandler) ListLeads(c *gin.Context) {
	filter, err := parseLeadFilter(c)
	if err != nil {
		badRequest(c, "Invalid filter", err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	leads, err := h.export.GetQualifiedLeads(ctx, c.Param("user_id"), filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads":     leads,
		"count":     len(leads),
		"filter":    filter,
		"timestamp": time.Now().UTC(),
	})
}

// GetLead returns one lead with its match breakdown and contacted channels
func (h *LeadsHandler) GetLead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	lead, err := h.workspaces.Lead(ctx, c.Param("user_id"), c.Param("lead_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lead":      lead,
		"timestamp": time.Now().UTC(),
	})
}

// GetLeadStats returns tier, source and industry distributions
func (h *LeadsHandler) GetLeadStats(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.export.GetLeadStats(ctx, c.Param("user_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now().UTC(),
	})
}

// ExportLeads downloads filtered leads as JSON or CSV
func (h *LeadsHandler) ExportLeads(c *gin.Context) {
	format, err := services.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	filter, err := parseLeadFilter(c)
	if err != nil {
		badRequest(c, "Invalid filter", err)
		return
	}
	options := services.LeadExportOptions{
		Format:                format,
		IncludeMatchBreakdown: c.Query("include_match") == "true",
		IncludeMetadata:       c.Query("include_metadata") == "true",
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	userID := c.Param("user_id")
	data, err := h.export.ExportQualifiedLeads(ctx, userID, filter, options)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	contentType := "application/json"
	if format == services.FormatCSV {
		contentType = "text/csv"
	}
	filename := fmt.Sprintf("leads_%s_%s.%s", sanitizeFilename(userID), time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// parseLeadFilter reads tier, source, industry, min_score, max_score,
// min_match_score, added_after and limit from the query string
func parseLeadFilter(c *gin.Context) (services.LeadFilter, error) {
	var filter services.LeadFilter

	for _, t := range splitList(c.Query("tier")) {
		tier := models.Tier(t)
		switch tier {
		case models.TierHot, models.TierWarm, models.TierCold:
			filter.Tiers = append(filter.Tiers, tier)
		default:
			return filter, fmt.Errorf("unknown tier %q", t)
		}
	}
	for _, s := range splitList(c.Query("source")) {
		filter.Sources = append(filter.Sources, models.Source(s))
	}
	filter.Industries = splitList(c.Query("industry"))

	var err error
	if filter.MinScore, err = optionalInt(c, "min_score"); err != nil {
		return filter, err
	}
	if filter.MaxScore, err = optionalInt(c, "max_score"); err != nil {
		return filter, err
	}
	if filter.MinMatchScore, err = optionalInt(c, "min_match_score"); err != nil {
		return filter, err
	}
	if filter.Limit, err = optionalInt(c, "limit"); err != nil {
		return filter, err
	}
	if filter.Limit != nil && *filter.Limit < 0 {
		return filter, fmt.Errorf("limit must not be negative")
	}

	if raw := c.Query("added_after"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("added_after must be RFC3339: %w", err)
		}
		filter.AddedAfter = &after
	}
	return filter, nil
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
