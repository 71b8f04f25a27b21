package scoring

import (
	"strings"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

// ICP fit and the lead's own quality score are always blended, so a single
// matched dimension cannot dominate the result.
const (
	icpBlendWeight   = 0.7
	leadBlendWeight  = 0.3
	revenueSeparator = " - "
)

// MatchResult explains how a match score was reached
type MatchResult struct {
	Score      int                       `json:"score"`
	ICPScore   int                       `json:"icpScore"`
	Matched    bool                      `json:"matched"`
	Dimensions map[string]CriterionEntry `json:"dimensions"`
}

// MatchScore returns the 0-100 fit of a lead against a profile. Without a
// generated profile, or when no dimension matches, the lead's score is used.
func MatchScore(lead models.Lead, profile ICPProfile) int {
	return ExplainMatch(lead, profile).Score
}

// ExplainMatch is MatchScore with the matched rows of every dimension
func ExplainMatch(lead models.Lead, profile ICPProfile) MatchResult {
	result := MatchResult{
		Score:      lead.Score,
		ICPScore:   lead.Score,
		Dimensions: make(map[string]CriterionEntry),
	}
	if !profile.IsGenerated {
		return result
	}

	c := profile.Criteria
	var weighted, totalWeight float64
	add := func(dimension string, entry CriterionEntry, ok bool) {
		if !ok {
			return
		}
		result.Dimensions[dimension] = entry
		weighted += entry.Score * entry.Weight
		totalWeight += entry.Weight
	}

	entry, ok := findExact(c.Industries, lead.Industry)
	add("industry", entry, ok)
	entry, ok = findExact(c.CompanySizes, lead.Employees)
	add("companySize", entry, ok)
	entry, ok = findExact(c.Regions, lead.Location)
	add("region", entry, ok)
	entry, ok = findRevenue(c.RevenueRanges, lead.Revenue)
	add("revenue", entry, ok)
	entry, ok = findTitle(c.JobTitles, lead.Title)
	add("jobTitle", entry, ok)

	if totalWeight == 0 {
		return result
	}

	result.Matched = true
	result.ICPScore = roundHalfUp(weighted / totalWeight)
	result.Score = roundHalfUp(float64(result.ICPScore)*icpBlendWeight + float64(lead.Score)*leadBlendWeight)
	return result
}

func findExact(entries []CriterionEntry, key string) (CriterionEntry, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return CriterionEntry{}, false
}

// findRevenue matches on the lower bound of each range, e.g. "$10M" of "$10M - $25M"
func findRevenue(entries []CriterionEntry, revenue string) (CriterionEntry, bool) {
	for _, e := range entries {
		prefix, _, _ := strings.Cut(e.Key, revenueSeparator)
		if strings.Contains(revenue, prefix) {
			return e, true
		}
	}
	return CriterionEntry{}, false
}

func findTitle(entries []CriterionEntry, title string) (CriterionEntry, bool) {
	lower := strings.ToLower(title)
	for _, e := range entries {
		if strings.Contains(lower, strings.ToLower(e.Key)) {
			return e, true
		}
	}
	return CriterionEntry{}, false
}
