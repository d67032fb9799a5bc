// Package difficulty derives which tiers are unlocked from statistics.
package difficulty

import "github.com/verte-zerg/verbroulette/internal/model"

// Thresholds gate a tier. A zero MaxAverageElapsedMs means no time limit.
type Thresholds struct {
	MinTotal            int
	MinBestStreak       int
	MaxAverageElapsedMs float64
}

// Tier is an immutable difficulty level.
type Tier struct {
	ID          string
	Name        string
	Description string
	Thresholds  Thresholds
	Benefits    []string
}

// Defaults returns the built-in tiers from easiest to hardest.
func Defaults() []Tier {
	return []Tier{
		{
			ID:          "beginner",
			Name:        "Beginner",
			Description: "Perfect for starting your verb adventure",
			Benefits:    []string{"Most common verbs", "Unlimited time", "Visual hints", "No pressure"},
		},
		{
			ID:          "intermediate",
			Name:        "Intermediate",
			Description: "For students with basic experience",
			Thresholds:  Thresholds{MinTotal: 10, MinBestStreak: 3, MaxAverageElapsedMs: 5000},
			Benefits:    []string{"Mixed verbs", "Moderate time", "Fewer hints", "Basic challenges"},
		},
		{
			ID:          "advanced",
			Name:        "Advanced",
			Description: "For experienced students",
			Thresholds:  Thresholds{MinTotal: 25, MinBestStreak: 8, MaxAverageElapsedMs: 3000},
			Benefits:    []string{"Complex verbs", "Limited time", "No hints", "Intense challenges"},
		},
		{
			ID:          "expert",
			Name:        "Expert",
			Description: "For verb masters",
			Thresholds:  Thresholds{MinTotal: 50, MinBestStreak: 15, MaxAverageElapsedMs: 2000},
			Benefits:    []string{"All verbs", "Extreme time", "No help", "Epic challenges"},
		},
	}
}

// Requirements reports which thresholds of a tier s satisfies.
type Requirements struct {
	Total      bool
	BestStreak bool
	Average    bool
}

// Met returns how many of the three requirements hold.
func (r Requirements) Met() int {
	n := 0
	for _, ok := range []bool{r.Total, r.BestStreak, r.Average} {
		if ok {
			n++
		}
	}
	return n
}

// Check evaluates each threshold of t against s.
func Check(t Tier, s model.Statistics) Requirements {
	return Requirements{
		Total:      s.Total >= t.Thresholds.MinTotal,
		BestStreak: s.BestStreak >= t.Thresholds.MinBestStreak,
		Average:    t.Thresholds.MaxAverageElapsedMs == 0 || s.AverageElapsedMs <= t.Thresholds.MaxAverageElapsedMs,
	}
}

// Unlocked reports whether s satisfies every threshold of t.
func Unlocked(t Tier, s model.Statistics) bool {
	return Check(t, s).Met() == 3
}

// Progress returns the share of satisfied requirements in [0, 1].
func Progress(t Tier, s model.Statistics) float64 {
	return float64(Check(t, s).Met()) / 3
}

// UnlockedTiers returns the tiers unlocked by s, in tier order.
func UnlockedTiers(tiers []Tier, s model.Statistics) []Tier {
	var out []Tier
	for _, t := range tiers {
		if Unlocked(t, s) {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the tier with id.
func Find(tiers []Tier, id string) (Tier, bool) {
	for _, t := range tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}
