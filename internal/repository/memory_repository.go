package repository

import (
	"context"
	"sync"

	"github.com/ignashub/ictperfect-tool2/internal/models"
	"github.com/ignashub/ictperfect-tool2/internal/scoring"
)

// MemoryRepository keeps workspaces in process memory
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]Snapshot
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]Snapshot)}
}

// Load returns a copy of the stored snapshot
func (r *MemoryRepository) Load(ctx context.Context, userID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.store[userID]
	if !ok {
		return NewSnapshot(), nil
	}
	return cloneSnapshot(snap), nil
}

// Save replaces the stored snapshot with a copy of snap
func (r *MemoryRepository) Save(ctx context.Context, userID string, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[userID] = cloneSnapshot(snap)
	return nil
}

// Delete forgets a workspace
func (r *MemoryRepository) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.store, userID)
	return nil
}

// cloneSnapshot copies every slice so callers cannot mutate stored state
func cloneSnapshot(s Snapshot) Snapshot {
	out := Snapshot{
		Leads: append(make([]models.Lead, 0, len(s.Leads)), s.Leads...),
		ICP:   cloneProfile(s.ICP),
		Stats: s.Stats,
	}
	out.Stats.EmailLeads = append([]string{}, s.Stats.EmailLeads...)
	out.Stats.LinkedInLeads = append([]string{}, s.Stats.LinkedInLeads...)
	out.Stats.PhoneLeads = append([]string{}, s.Stats.PhoneLeads...)
	return out
}

func cloneProfile(p scoring.ICPProfile) scoring.ICPProfile {
	out := p
	if p.GeneratedDate != nil {
		t := *p.GeneratedDate
		out.GeneratedDate = &t
	}
	out.PrimaryIndustries = append([]string{}, p.PrimaryIndustries...)
	out.TopRegions = append([]string{}, p.TopRegions...)
	out.Criteria = scoring.Criteria{
		Industries:    append([]scoring.CriterionEntry{}, p.Criteria.Industries...),
		CompanySizes:  append([]scoring.CriterionEntry{}, p.Criteria.CompanySizes...),
		Regions:       append([]scoring.CriterionEntry{}, p.Criteria.Regions...),
		RevenueRanges: append([]scoring.CriterionEntry{}, p.Criteria.RevenueRanges...),
		JobTitles:     append([]scoring.CriterionEntry{}, p.Criteria.JobTitles...),
	}
	out.Messaging = scoring.Messaging{
		IndustryTemplates: append([]scoring.IndustryTemplate{}, p.Messaging.IndustryTemplates...),
		ValuePropositions: append([]string{}, p.Messaging.ValuePropositions...),
		PainPoints:        append([]string{}, p.Messaging.PainPoints...),
		CommonObjections:  append([]string{}, p.Messaging.CommonObjections...),
		SuccessStories:    append([]string{}, p.Messaging.SuccessStories...),
	}
	return out
}
