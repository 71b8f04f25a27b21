package scoring

import (
	"math"
	"math/rand"
	"time"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

// RandomSource supplies the randomness used by the zero-data fallbacks.
// *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// ScoringEngine derives ICP profiles and scores leads against them.
// Tier classification and match scoring are pure; only the ICP fallbacks
// for an empty lead collection draw from the random source.
type ScoringEngine struct {
	rand RandomSource
	now  func() time.Time
}

// Option configures a ScoringEngine
type Option func(*ScoringEngine)

// WithRandomSource replaces the default time-seeded source
func WithRandomSource(src RandomSource) Option {
	return func(e *ScoringEngine) {
		if src != nil {
			e.rand = src
		}
	}
}

// WithSeed makes every fallback reproducible
func WithSeed(seed int64) Option {
	return func(e *ScoringEngine) {
		e.rand = rand.New(rand.NewSource(seed))
	}
}

// WithClock overrides the clock used to stamp generated profiles
func WithClock(now func() time.Time) Option {
	return func(e *ScoringEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewScoringEngine creates a new scoring engine instance
func NewScoringEngine(opts ...Option) *ScoringEngine {
	e := &ScoringEngine{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClassifyTier assigns a tier to a new lead
func (e *ScoringEngine) ClassifyTier(in models.LeadInput) models.Tier {
	return ClassifyTier(in)
}

// MatchScore blends a lead's quality score with its fit against the profile
func (e *ScoringEngine) MatchScore(lead models.Lead, profile ICPProfile) int {
	return MatchScore(lead, profile)
}

// Intn draws from the engine's random source
func (e *ScoringEngine) Intn(n int) int {
	return e.rand.Intn(n)
}

// roundHalfUp rounds .5 towards positive infinity
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
