// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Kind classifies a verb by how its past forms are built.
type Kind string

const (
	Regular   Kind = "regular"
	Irregular Kind = "irregular"
)

// ParseKind parses a kind label.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Regular, Irregular:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown verb kind %q", s)
	}
}

// Label returns a display label for the kind.
func (k Kind) Label() string {
	switch k {
	case Regular:
		return "Regular"
	case Irregular:
		return "Irregular"
	default:
		return string(k)
	}
}

// VerbRecord is one immutable catalog entry.
type VerbRecord struct {
	Verb           string `yaml:"verb" json:"verb"`
	Kind           Kind   `yaml:"kind" json:"kind"`
	Past           string `yaml:"past" json:"past"`
	PastParticiple string `yaml:"participle" json:"participle"`
}

// SpinOutcome is produced once per completed spin.
type SpinOutcome struct {
	Verb      VerbRecord
	ElapsedMs int64
}

// Statistics aggregates completed spins since the last reset.
type Statistics struct {
	Regular          int
	Irregular        int
	Total            int
	CurrentStreak    int
	BestStreak       int
	AverageElapsedMs float64
	PerfectRounds    int
}

// Feedback is the learner's self-assessment of a pronunciation.
type Feedback int

const (
	FeedbackPositive Feedback = iota + 1
	FeedbackNegative
)

// String returns the feedback label.
func (f Feedback) String() string {
	switch f {
	case FeedbackPositive:
		return "good"
	case FeedbackNegative:
		return "bad"
	default:
		return "unknown"
	}
}

// Config defines practice settings after flags, env and file are merged.
type Config struct {
	Seed        int64
	SpinMinMs   int
	SpinMaxMs   int
	CatalogPath string
	Difficulty  string
	Speech      string
}

// ChallengeRun captures a completed challenge for the run history.
type ChallengeRun struct {
	ModeID    string
	Completed int
	Target    int
	Success   bool
	EndedAt   time.Time
}
