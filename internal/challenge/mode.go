// Package challenge runs timed practice sessions and keeps best scores.
package challenge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode reports a challenge mode that cannot be run.
var ErrInvalidMode = errors.New("invalid challenge mode")

// Mode is an immutable challenge definition.
type Mode struct {
	ID              string
	Name            string
	Description     string
	DurationSeconds int
	TargetVerbs     int
	Difficulty      string
}

// Defaults returns the built-in challenge modes. Ids are stable because best
// scores are keyed by them.
func Defaults() []Mode {
	return []Mode{
		{ID: "speed-round", Name: "Quick Round", Description: "Complete 10 verbs in 60 seconds", DurationSeconds: 60, TargetVerbs: 10, Difficulty: "easy"},
		{ID: "marathon", Name: "Marathon", Description: "Complete 25 verbs in 3 minutes", DurationSeconds: 180, TargetVerbs: 25, Difficulty: "medium"},
		{ID: "lightning", Name: "Lightning Speed", Description: "Complete 15 verbs in 45 seconds", DurationSeconds: 45, TargetVerbs: 15, Difficulty: "hard"},
		{ID: "master-challenge", Name: "Master Challenge", Description: "Complete 50 verbs in 5 minutes", DurationSeconds: 300, TargetVerbs: 50, Difficulty: "expert"},
	}
}

// ValidateModes rejects blank or duplicate ids and non-positive limits.
func ValidateModes(modes []Mode) error {
	seen := make(map[string]struct{}, len(modes))
	for _, m := range modes {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("%w: id is empty", ErrInvalidMode)
		}
		if _, ok := seen[m.ID]; ok {
			return fmt.Errorf("%w: %q is defined twice", ErrInvalidMode, m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.DurationSeconds <= 0 {
			return fmt.Errorf("%w: %q duration must be > 0", ErrInvalidMode, m.ID)
		}
		if m.TargetVerbs <= 0 {
			return fmt.Errorf("%w: %q target must be > 0", ErrInvalidMode, m.ID)
		}
	}
	return nil
}

// Find returns the mode with id.
func Find(modes []Mode, id string) (Mode, bool) {
	for _, m := range modes {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
