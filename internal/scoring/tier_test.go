package scoring

import (
	"strings"
	"testing"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

func TestClassifyTier(t *testing.T) {
	testCases := []struct {
		name       string
		input      models.LeadInput
		engagement int
		expected   models.Tier
	}{
		{
			name: "Senior SaaS buyer is hot",
			input: models.LeadInput{
				Industry:  "SaaS",
				Employees: "200-500",
				Title:     "VP of Sales",
				Revenue:   "$25M - $50M",
				Score:     90,
			},
			engagement: 113,
			expected:   models.TierHot,
		},
		{
			name: "Unknown categories fall back to defaults",
			input: models.LeadInput{
				Industry:  "Basket Weaving",
				Employees: "lots",
				Title:     "Intern",
				Revenue:   "unknown",
				Score:     70,
			},
			engagement: 45,
			expected:   models.TierCold,
		},
		{
			name: "Exactly 85 is hot",
			input: models.LeadInput{
				Industry:  "Healthcare",
				Employees: "25-50",
				Title:     "CEO",
				Revenue:   "$5M",
				Score:     70,
			},
			engagement: 85,
			expected:   models.TierHot,
		},
		{
			name: "Exactly 65 is warm",
			input: models.LeadInput{
				Industry:  "Real Estate",
				Employees: "25-50",
				Title:     "Office Manager",
				Revenue:   "Under $1M",
				Score:     80,
			},
			engagement: 65,
			expected:   models.TierWarm,
		},
		{
			name: "64 is cold",
			input: models.LeadInput{
				Industry:  "Education",
				Employees: "10-25",
				Title:     "Head of IT",
				Revenue:   "$5M",
				Score:     60,
			},
			engagement: 64,
			expected:   models.TierCold,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EngagementScore(tc.input); got != tc.engagement {
				t.Errorf("Expected engagement %d, got %d", tc.engagement, got)
			}
			if got := ClassifyTier(tc.input); got != tc.expected {
				t.Errorf("Expected tier %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestClassifyTier_Deterministic(t *testing.T) {
	input := models.LeadInput{
		Industry:  "FinTech",
		Employees: "75-100",
		Title:     "Head of Growth",
		Revenue:   "$15M",
		Score:     77,
	}
	first := ClassifyTier(input)
	for i := 0; i < 100; i++ {
		if got := ClassifyTier(input); got != first {
			t.Fatalf("Expected stable tier %s, got %s on call %d", first, got, i)
		}
	}
}

func TestTitlePointsFirstMatchWins(t *testing.T) {
	testCases := []struct {
		title    string
		expected int
	}{
		{"Co-Founder & CTO", 30},
		{"ceo", 30},
		{"VP Engineering", 25},
		{"Head of Sales", 20},
		// "director" contains "cto", so directors score as CTOs
		{"Director of Sales", 25},
		{"Account Manager", 15},
		{"Engineer", 10},
		{"", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			got := firstMatch(titleRules, strings.ToLower(tc.title), defaultTitlePoints)
			if got != tc.expected {
				t.Errorf("Expected %d points for %q, got %d", tc.expected, tc.title, got)
			}
		})
	}
}

func TestRevenuePointsOrder(t *testing.T) {
	testCases := []struct {
		revenue  string
		expected int
	}{
		{"$50M+", 25},
		{"$100M+", 25},
		{"$25M - $50M", 22},
		{"$30M", 22},
		{"$10M - $25M", 22},
		{"$15M", 18},
		{"$5M - $10M", 18},
		{"$1M - $5M", 15},
		{"Under $1M", 10},
	}

	for _, tc := range testCases {
		t.Run(tc.revenue, func(t *testing.T) {
			got := firstMatch(revenueRules, tc.revenue, defaultRevenuePoints)
			if got != tc.expected {
				t.Errorf("Expected %d points for %q, got %d", tc.expected, tc.revenue, got)
			}
		})
	}
}

func TestScoreBonus(t *testing.T) {
	testCases := map[int]int{
		0:   0,
		50:  0,
		69:  0,
		70:  0,
		74:  0,
		75:  3,
		89:  9,
		90:  12,
		100: 18,
	}
	for score, expected := range testCases {
		if got := scoreBonus(score); got != expected {
			t.Errorf("scoreBonus(%d): expected %d, got %d", score, expected, got)
		}
	}
}
