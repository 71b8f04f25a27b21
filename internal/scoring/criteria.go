package scoring

import "math"

// dimensionRule turns a frequency bucket into a criterion row
type dimensionRule struct {
	limit         int
	dominantShare float64
	highWeight    float64
	lowWeight     float64
	baseline      float64
	spread        float64
}

var (
	industryRule = dimensionRule{limit: 5, dominantShare: 0.3, highWeight: 0.9, lowWeight: 0.6, baseline: 60, spread: 40}
	sizeRule     = dimensionRule{limit: 4, dominantShare: 0.2, highWeight: 0.8, lowWeight: 0.5, baseline: 50, spread: 50}
	regionRule   = dimensionRule{limit: 6, dominantShare: 0.25, highWeight: 0.7, lowWeight: 0.4, baseline: 55, spread: 45}
)

// Revenue and title granularity is too sparse in lead data, so these two
// tables are fixed. Order matters: the first matching row wins.
func revenueRanges() []CriterionEntry {
	return []CriterionEntry{
		{Key: "$25M - $50M", Weight: 0.9, Score: 90},
		{Key: "$10M - $25M", Weight: 0.8, Score: 85},
		{Key: "$5M - $10M", Weight: 0.7, Score: 75},
		{Key: "$1M - $5M", Weight: 0.6, Score: 65},
		{Key: "Under $1M", Weight: 0.3, Score: 40},
	}
}

func jobTitles() []CriterionEntry {
	return []CriterionEntry{
		{Key: "VP of Sales", Weight: 0.95, Score: 95},
		{Key: "CTO", Weight: 0.9, Score: 90},
		{Key: "Head of Operations", Weight: 0.85, Score: 85},
		{Key: "Director of Marketing", Weight: 0.8, Score: 80},
		{Key: "Sales Manager", Weight: 0.7, Score: 70},
	}
}

func buildCriteria(a LeadAnalysis) Criteria {
	return Criteria{
		Industries:    industryRule.entries(a.Industries, a.TotalLeads),
		CompanySizes:  sizeRule.entries(a.CompanySizes, a.TotalLeads),
		Regions:       regionRule.entries(a.Locations, a.TotalLeads),
		RevenueRanges: revenueRanges(),
		JobTitles:     jobTitles(),
	}
}

// entries expects buckets already ranked by count; the score grows with the
// share so the ranking also orders the rows by score.
func (r dimensionRule) entries(buckets []Bucket, total int) []CriterionEntry {
	out := []CriterionEntry{}
	if total == 0 {
		return out
	}
	for _, b := range buckets {
		if len(out) == r.limit {
			break
		}
		weight := r.lowWeight
		if float64(b.Count) > float64(total)*r.dominantShare {
			weight = r.highWeight
		}
		share := float64(b.Count) / float64(total)
		out = append(out, CriterionEntry{
			Key:    b.Key,
			Weight: weight,
			Score:  math.Min(100, r.baseline+share*r.spread),
		})
	}
	return out
}
