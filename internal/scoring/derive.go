package scoring

import (
	"math"
	"sort"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

const (
	defaultUserIndustry    = "Technology"
	defaultIdealSize       = "51-200 employees"
	zeroDataConfidence     = 75
	maxConfidence          = 95
	maxConversion          = 35
	tamBaseMultiplier      = 1000
	fallbackTAMMin         = 10000
	fallbackTAMSpan        = 50000
	fallbackConversionMin  = 10
	fallbackConversionSpan = 15
)

// industryCatalog seeds primary industries when there is no lead data
var industryCatalog = []string{
	"SaaS", "Technology", "E-commerce", "Healthcare",
	"Finance", "Manufacturing", "Education", "Real Estate",
}

var industryMarketMultiplier = map[string]float64{
	"Technology":    2.5,
	"SaaS":          3.0,
	"E-commerce":    2.0,
	"Finance":       2.2,
	"Healthcare":    1.8,
	"Manufacturing": 1.5,
	"Real Estate":   1.6,
	"Education":     1.3,
}

// Bucket is one key of a frequency table with its count
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// frequency counts keys while remembering the order they were first seen,
// so rankings break ties by first appearance.
type frequency struct {
	keys   []string
	counts map[string]int
}

func newFrequency() *frequency {
	return &frequency{counts: make(map[string]int)}
}

func (f *frequency) add(key string, n int) {
	if _, seen := f.counts[key]; !seen {
		f.keys = append(f.keys, key)
	}
	f.counts[key] += n
}

// ranked returns buckets by descending count, ties in first-seen order
func (f *frequency) ranked() []Bucket {
	buckets := make([]Bucket, len(f.keys))
	for i, k := range f.keys {
		buckets[i] = Bucket{Key: k, Count: f.counts[k]}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// LeadAnalysis aggregates a lead collection for ICP derivation
type LeadAnalysis struct {
	TotalLeads        int      `json:"totalLeads"`
	HotLeads          int      `json:"hotLeads"`
	WarmLeads         int      `json:"warmLeads"`
	ColdLeads         int      `json:"coldLeads"`
	Industries        []Bucket `json:"industries"`
	CompanySizes      []Bucket `json:"companySizes"`
	Locations         []Bucket `json:"locations"`
	Regions           []Bucket `json:"regions"`
	AverageScore      float64  `json:"averageScore"`
	QualificationRate float64  `json:"qualificationRate"`
	EmailsSent        int      `json:"emailsSent"`
	LinkedInSent      int      `json:"linkedinConnections"`
	CallsMade         int      `json:"callsMade"`
}

// TotalOutreach is the number of messages sent across every channel
func (a LeadAnalysis) TotalOutreach() int {
	return a.EmailsSent + a.LinkedInSent + a.CallsMade
}

// AnalyzeLeads builds the frequency tables and rates behind an ICP profile
func AnalyzeLeads(leads []models.Lead, outreach models.OutreachStats) LeadAnalysis {
	industries := newFrequency()
	sizes := newFrequency()
	locations := newFrequency()

	a := LeadAnalysis{
		TotalLeads:   len(leads),
		EmailsSent:   outreach.EmailsSent,
		LinkedInSent: outreach.LinkedInConnections,
		CallsMade:    outreach.CallsMade,
	}

	scoreSum := 0
	for _, lead := range leads {
		switch lead.Tier {
		case models.TierHot:
			a.HotLeads++
		case models.TierWarm:
			a.WarmLeads++
		case models.TierCold:
			a.ColdLeads++
		}
		industries.add(lead.Industry, 1)
		sizes.add(lead.Employees, 1)
		locations.add(lead.Location, 1)
		scoreSum += lead.Score
	}

	a.Industries = industries.ranked()
	a.CompanySizes = sizes.ranked()
	a.Locations = locations.ranked()

	// regions accumulate in first-seen location order
	regions := newFrequency()
	for _, loc := range locations.keys {
		regions.add(RegionFor(loc), locations.counts[loc])
	}
	a.Regions = regions.ranked()

	if a.TotalLeads > 0 {
		a.AverageScore = float64(scoreSum) / float64(a.TotalLeads)
		a.QualificationRate = float64(a.HotLeads+a.WarmLeads) / float64(a.TotalLeads)
	}
	return a
}

// DeriveICP generates a complete profile from the current leads. With no
// leads every field falls back to a seeded or random default.
func (e *ScoringEngine) DeriveICP(leads []models.Lead, outreach models.OutreachStats, ctx models.UserContext) ICPProfile {
	a := AnalyzeLeads(leads, outreach)
	generated := e.now().UTC()

	return ICPProfile{
		IsGenerated:            true,
		Confidence:             Confidence(a),
		PrimaryIndustries:      e.primaryIndustries(a, ctx),
		IdealCompanySize:       idealCompanySize(a, ctx),
		TopRegions:             topRegions(a, ctx),
		TotalAddressableMarket: e.totalAddressableMarket(a),
		ConversionPrediction:   e.conversionPrediction(a),
		GeneratedDate:          &generated,
		Criteria:               buildCriteria(a),
		Messaging:              buildMessaging(a),
	}
}

// Confidence scores how much the profile can be trusted, capped at 95
func Confidence(a LeadAnalysis) int {
	if a.TotalLeads == 0 {
		return zeroDataConfidence
	}

	confidence := 60
	switch {
	case a.TotalLeads >= 50:
		confidence += 20
	case a.TotalLeads >= 20:
		confidence += 15
	case a.TotalLeads >= 10:
		confidence += 10
	default:
		confidence += 5
	}

	switch {
	case a.QualificationRate >= 0.4:
		confidence += 15
	case a.QualificationRate >= 0.25:
		confidence += 10
	default:
		confidence += 5
	}

	switch total := a.TotalOutreach(); {
	case total >= 100:
		confidence += 10
	case total >= 50:
		confidence += 5
	}

	if confidence > maxConfidence {
		return maxConfidence
	}
	return confidence
}

func (e *ScoringEngine) primaryIndustries(a LeadAnalysis, ctx models.UserContext) []string {
	if a.TotalLeads == 0 {
		userIndustry := ctx.Industry
		if userIndustry == "" {
			userIndustry = defaultUserIndustry
		}
		remaining := make([]string, 0, len(industryCatalog))
		for _, industry := range industryCatalog {
			if industry != userIndustry {
				remaining = append(remaining, industry)
			}
		}
		e.rand.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
		return append([]string{userIndustry}, remaining[:2]...)
	}
	return topKeys(a.Industries, 3)
}

func idealCompanySize(a LeadAnalysis, ctx models.UserContext) string {
	if a.TotalLeads == 0 {
		if ctx.CompanySize != "" {
			return ctx.CompanySize
		}
		return defaultIdealSize
	}
	if len(a.CompanySizes) == 0 {
		return defaultIdealSize
	}
	return a.CompanySizes[0].Key
}

func topRegions(a LeadAnalysis, ctx models.UserContext) []string {
	if a.TotalLeads == 0 {
		return regionsForCountry(ctx.Country)
	}
	return topKeys(a.Regions, 3)
}

func (e *ScoringEngine) totalAddressableMarket(a LeadAnalysis) int {
	if a.TotalLeads == 0 {
		return e.rand.Intn(fallbackTAMSpan) + fallbackTAMMin
	}
	return MarketSize(a)
}

// MarketSize estimates the TAM from lead volume and industry mix
func MarketSize(a LeadAnalysis) int {
	tam := float64(a.TotalLeads * tamBaseMultiplier)
	for _, b := range a.Industries {
		multiplier, ok := industryMarketMultiplier[b.Key]
		if !ok {
			multiplier = 1.0
		}
		tam += float64(b.Count*tamBaseMultiplier) * multiplier
	}

	switch {
	case a.QualificationRate > 0.3:
		tam *= 1.5
	case a.QualificationRate > 0.2:
		tam *= 1.2
	}
	return int(math.Floor(tam))
}

func (e *ScoringEngine) conversionPrediction(a LeadAnalysis) int {
	if a.TotalLeads == 0 {
		return e.rand.Intn(fallbackConversionSpan) + fallbackConversionMin
	}
	return ConversionPrediction(a)
}

// ConversionPrediction estimates the conversion percentage, capped at 35
func ConversionPrediction(a LeadAnalysis) int {
	prediction := 8.0
	if a.TotalLeads > 0 {
		prediction += float64(a.HotLeads) / float64(a.TotalLeads) * 25
		prediction += float64(a.WarmLeads) / float64(a.TotalLeads) * 15
	}

	switch total := a.TotalOutreach(); {
	case total >= 100:
		prediction += 8
	case total >= 50:
		prediction += 5
	case total >= 20:
		prediction += 3
	}

	switch {
	case a.CallsMade >= 20:
		prediction += 5
	case a.CallsMade >= 10:
		prediction += 3
	}

	rounded := roundHalfUp(prediction)
	if rounded > maxConversion {
		return maxConversion
	}
	return rounded
}

func topKeys(buckets []Bucket, n int) []string {
	if len(buckets) < n {
		n = len(buckets)
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = buckets[i].Key
	}
	return keys
}
