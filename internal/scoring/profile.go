package scoring

import "time"

// CriterionEntry is one weighted row of a criteria table
type CriterionEntry struct {
	Key    string  `json:"key"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Criteria holds the five weighted tables used by MatchScore
type Criteria struct {
	Industries    []CriterionEntry `json:"industries"`
	CompanySizes  []CriterionEntry `json:"companySizes"`
	Regions       []CriterionEntry `json:"regions"`
	RevenueRanges []CriterionEntry `json:"revenueRanges"`
	JobTitles     []CriterionEntry `json:"jobTitles"`
}

// IndustryTemplate is the outreach opener suggested for an industry
type IndustryTemplate struct {
	Industry string `json:"industry"`
	Template string `json:"template"`
	Tone     string `json:"tone"`
}

// Messaging is presentation data attached to a profile
type Messaging struct {
	IndustryTemplates []IndustryTemplate `json:"industryTemplates"`
	ValuePropositions []string           `json:"valuePropositions"`
	PainPoints        []string           `json:"painPoints"`
	CommonObjections  []string           `json:"commonObjections"`
	SuccessStories    []string           `json:"successStories"`
}

// ICPProfile is an Ideal Customer Profile derived from a lead collection
type ICPProfile struct {
	IsGenerated            bool       `json:"isGenerated"`
	Confidence             int        `json:"confidence,omitempty"`
	PrimaryIndustries      []string   `json:"primaryIndustries"`
	IdealCompanySize       string     `json:"idealCompanySize"`
	TopRegions             []string   `json:"topRegions"`
	TotalAddressableMarket int        `json:"totalAddressableMarket"`
	ConversionPrediction   int        `json:"conversionPrediction"`
	GeneratedDate          *time.Time `json:"generatedDate,omitempty"`
	Criteria               Criteria   `json:"criteria"`
	Messaging              Messaging  `json:"messaging"`
}

// EmptyProfile is the profile of a workspace that has never generated one
func EmptyProfile() ICPProfile {
	return ICPProfile{
		PrimaryIndustries: []string{},
		TopRegions:        []string{},
		Criteria: Criteria{
			Industries:    []CriterionEntry{},
			CompanySizes:  []CriterionEntry{},
			Regions:       []CriterionEntry{},
			RevenueRanges: []CriterionEntry{},
			JobTitles:     []CriterionEntry{},
		},
		Messaging: Messaging{
			IndustryTemplates: []IndustryTemplate{},
			ValuePropositions: []string{},
			PainPoints:        []string{},
			CommonObjections:  []string{},
			SuccessStories:    []string{},
		},
	}
}
