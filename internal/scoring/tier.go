package scoring

import (
	"strings"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

// Engagement thresholds for tier classification
const (
	HotThreshold  = 85
	WarmThreshold = 65
)

var industryPoints = map[string]int{
	"SaaS":          30,
	"FinTech":       28,
	"Technology":    25,
	"Finance":       24,
	"Healthcare":    22,
	"Consulting":    20,
	"E-commerce":    20,
	"Manufacturing": 18,
	"Real Estate":   16,
	"Education":     14,
}

const defaultIndustryPoints = 10

var companySizePoints = map[string]int{
	"200-500": 30,
	"100-200": 28,
	"500+":    25,
	"75-100":  25,
	"50-75":   22,
	"25-50":   18,
	"10-25":   15,
	"1-10":    10,
}

const defaultCompanySizePoints = 15

// keywordRule awards points when any keyword is found. Rules are evaluated
// in order and the first match wins.
type keywordRule struct {
	keywords []string
	points   int
}

var titleRules = []keywordRule{
	{keywords: []string{"ceo", "founder"}, points: 30},
	{keywords: []string{"cto", "vp"}, points: 25},
	{keywords: []string{"director", "head of"}, points: 20},
	{keywords: []string{"manager"}, points: 15},
}

const defaultTitlePoints = 10

var revenueRules = []keywordRule{
	{keywords: []string{"$50M+", "$100M+"}, points: 25},
	{keywords: []string{"$25M", "$30M"}, points: 22},
	{keywords: []string{"$10M", "$15M"}, points: 18},
	{keywords: []string{"$5M"}, points: 15},
}

const defaultRevenuePoints = 10

// ClassifyTier computes the additive engagement score of a lead and maps it
// onto Hot, Warm or Cold. Unknown categorical values fall back to default points.
func ClassifyTier(in models.LeadInput) models.Tier {
	return TierForEngagement(EngagementScore(in))
}

// EngagementScore is the point total behind ClassifyTier
func EngagementScore(in models.LeadInput) int {
	score := 0

	if points, ok := industryPoints[in.Industry]; ok {
		score += points
	} else {
		score += defaultIndustryPoints
	}

	if points, ok := companySizePoints[in.Employees]; ok {
		score += points
	} else {
		score += defaultCompanySizePoints
	}

	score += firstMatch(titleRules, strings.ToLower(in.Title), defaultTitlePoints)
	score += firstMatch(revenueRules, in.Revenue, defaultRevenuePoints)
	score += scoreBonus(in.Score)

	return score
}

// TierForEngagement applies the tier thresholds
func TierForEngagement(engagement int) models.Tier {
	switch {
	case engagement >= HotThreshold:
		return models.TierHot
	case engagement >= WarmThreshold:
		return models.TierWarm
	default:
		return models.TierCold
	}
}

// scoreBonus adds 3 points for every 5 points of quality score above 70
func scoreBonus(score int) int {
	bonus := floorDiv(score-70, 5) * 3
	if bonus < 0 {
		return 0
	}
	return bonus
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func firstMatch(rules []keywordRule, text string, fallback int) int {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.points
			}
		}
	}
	return fallback
}
