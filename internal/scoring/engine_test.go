package scoring

import (
	"testing"
	"time"

	"github.com/ignashub/ictperfect-tool2/internal/models"
)

type fixedRandom struct{ n int }

func (f fixedRandom) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func (f fixedRandom) Shuffle(n int, swap func(i, j int)) {}

func TestScoringEngine_InjectedRandomSource(t *testing.T) {
	engine := NewScoringEngine(WithRandomSource(fixedRandom{n: 0}))
	profile := engine.DeriveICP(nil, models.NewOutreachStats(), models.UserContext{Industry: "SaaS"})

	if profile.TotalAddressableMarket != 10000 {
		t.Errorf("Expected minimum fallback TAM, got %d", profile.TotalAddressableMarket)
	}
	if profile.ConversionPrediction != 10 {
		t.Errorf("Expected minimum fallback conversion, got %d", profile.ConversionPrediction)
	}
	// no shuffle: the first two catalog entries other than SaaS
	expected := []string{"SaaS", "Technology", "E-commerce"}
	for i, industry := range expected {
		if profile.PrimaryIndustries[i] != industry {
			t.Errorf("Expected %v, got %v", expected, profile.PrimaryIndustries)
			break
		}
	}

	engine = NewScoringEngine(WithRandomSource(fixedRandom{n: 1 << 30}))
	profile = engine.DeriveICP(nil, models.NewOutreachStats(), models.UserContext{})
	if profile.TotalAddressableMarket != 59999 {
		t.Errorf("Expected maximum fallback TAM 59999, got %d", profile.TotalAddressableMarket)
	}
	if profile.ConversionPrediction != 24 {
		t.Errorf("Expected maximum fallback conversion 24, got %d", profile.ConversionPrediction)
	}
}

func TestScoringEngine_Clock(t *testing.T) {
	stamp := time.Date(2023, 11, 5, 8, 30, 0, 0, time.UTC)
	engine := NewScoringEngine(WithClock(func() time.Time { return stamp }))
	profile := engine.DeriveICP(nil, models.NewOutreachStats(), models.UserContext{})

	if profile.GeneratedDate == nil || !profile.GeneratedDate.Equal(stamp) {
		t.Errorf("Expected generated date %v, got %v", stamp, profile.GeneratedDate)
	}
}

func TestRoundHalfUp(t *testing.T) {
	testCases := map[float64]int{
		0.4:  0,
		0.5:  1,
		84.5: 85,
		85.4: 85,
		99.9: 100,
	}
	for in, expected := range testCases {
		if got := roundHalfUp(in); got != expected {
			t.Errorf("roundHalfUp(%v): expected %d, got %d", in, expected, got)
		}
	}
}
