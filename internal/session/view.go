package session

import (
	"github.com/verte-zerg/verbroulette/internal/achievement"
	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/difficulty"
	"github.com/verte-zerg/verbroulette/internal/model"
)

// View is an immutable snapshot of the controller. Every slice and map is
// freshly allocated; definitions (achievements, tiers, modes) are shared
// read-only values.
type View struct {
	Generation  uint64
	Statistics  model.Statistics
	CatalogSize int
	Progress    float64

	Spinning bool
	Current  *model.VerbRecord
	Feedback model.Feedback

	Achievements  []AchievementView
	Summary       achievement.Summary
	NewlyUnlocked []achievement.Achievement

	Tiers      []TierView
	Difficulty string

	Modes      []challenge.Mode
	BestScores map[string]int
	Challenge  ChallengeView

	Notice string
	Closed bool
}

// AchievementView pairs a definition with its unlock status.
type AchievementView struct {
	achievement.Achievement
	Unlocked bool
}

// TierView pairs a tier with its requirement status.
type TierView struct {
	difficulty.Tier
	Unlocked     bool
	Requirements difficulty.Requirements
	Progress     float64
}

// ChallengeView describes the challenge timer.
type ChallengeView struct {
	State   challenge.State
	Session challenge.Session
	Result  challenge.Result
}

// Running reports whether a challenge is counting down.
func (v ChallengeView) Running() bool {
	return v.State == challenge.Running
}

// SelectedTier returns the tier view for the selected difficulty.
func (v View) SelectedTier() (TierView, bool) {
	for _, t := range v.Tiers {
		if t.ID == v.Difficulty {
			return t, true
		}
	}
	return TierView{}, false
}
