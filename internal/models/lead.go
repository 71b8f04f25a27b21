package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Tier is the categorical quality bucket assigned to a lead when it is added
type Tier string

const (
	TierHot  Tier = "Hot"
	TierWarm Tier = "Warm"
	TierCold Tier = "Cold"
)

// IsEngaged reports whether the tier is Hot or Warm
func (t Tier) IsEngaged() bool {
	return t == TierHot || t == TierWarm
}

// Source records how a lead entered the workspace. It has no effect on scoring.
type Source string

const (
	SourceManual      Source = "Manual"
	SourceImport      Source = "Import"
	SourceAIGenerated Source = "AI Generated"
)

var validate = validator.New()

// LeadInput is a lead as supplied by a caller, before it has been stored.
// Tier is optional; when empty it is computed by the scoring engine.
type LeadInput struct {
	Company   string `json:"company" validate:"required"`
	Industry  string `json:"industry"`
	Location  string `json:"location"`
	Employees string `json:"employees"`
	Score     int    `json:"score" validate:"min=0,max=100"`
	Tier      Tier   `json:"tier,omitempty" validate:"omitempty,oneof=Hot Warm Cold"`
	Contact   string `json:"contact"`
	Title     string `json:"title"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	Website   string `json:"website"`
	Revenue   string `json:"revenue"`
	Founded   string `json:"founded"`
	Source    Source `json:"source" validate:"omitempty,oneof=Manual Import 'AI Generated'"`
}

// Validate checks the input against its struct tags
func (in *LeadInput) Validate() error {
	return validate.Struct(in)
}

// Lead is a stored prospect record. It is never re-tiered after insertion.
type Lead struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Industry  string    `json:"industry"`
	Location  string    `json:"location"`
	Employees string    `json:"employees"`
	Score     int       `json:"score"`
	Tier      Tier      `json:"tier"`
	Contact   string    `json:"contact"`
	Title     string    `json:"title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LinkedIn  string    `json:"linkedin"`
	Website   string    `json:"website"`
	Revenue   string    `json:"revenue"`
	Founded   string    `json:"founded"`
	AddedDate time.Time `json:"addedDate"`
	Source    Source    `json:"source"`
}

// NewLead stamps an input with its identity and tier
func NewLead(in LeadInput, id string, tier Tier, addedDate time.Time) Lead {
	source := in.Source
	if source == "" {
		source = SourceManual
	}
	return Lead{
		ID:        id,
		Company:   strings.TrimSpace(in.Company),
		Industry:  in.Industry,
		Location:  in.Location,
		Employees: in.Employees,
		Score:     in.Score,
		Tier:      tier,
		Contact:   in.Contact,
		Title:     in.Title,
		Email:     in.Email,
		Phone:     in.Phone,
		LinkedIn:  in.LinkedIn,
		Website:   in.Website,
		Revenue:   in.Revenue,
		Founded:   in.Founded,
		AddedDate: addedDate,
		Source:    source,
	}
}

// Input returns the caller-facing view of a stored lead
func (l Lead) Input() LeadInput {
	return LeadInput{
		Company:   l.Company,
		Industry:  l.Industry,
		Location:  l.Location,
		Employees: l.Employees,
		Score:     l.Score,
		Tier:      l.Tier,
		Contact:   l.Contact,
		Title:     l.Title,
		Email:     l.Email,
		Phone:     l.Phone,
		LinkedIn:  l.LinkedIn,
		Website:   l.Website,
		Revenue:   l.Revenue,
		Founded:   l.Founded,
		Source:    l.Source,
	}
}

// UserContext carries the onboarding answers used to seed an ICP when there are no leads
type UserContext struct {
	Industry    string `json:"industry" validate:"max=100"`
	CompanySize string `json:"companySize" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
}

// Validate checks the context against its struct tags
func (u *UserContext) Validate() error {
	return validate.Struct(u)
}
