// Package stats folds spins into running statistics and renders reports.
package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/verbroulette/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Apply folds a completed spin into prev and returns the new snapshot.
func Apply(outcome model.SpinOutcome, prev model.Statistics) model.Statistics {
	next := prev
	switch outcome.Verb.Kind {
	case model.Regular:
		next.Regular++
	case model.Irregular:
		next.Irregular++
	}
	next.Total = prev.Total + 1
	next.CurrentStreak = prev.CurrentStreak + 1
	if next.CurrentStreak > next.BestStreak {
		next.BestStreak = next.CurrentStreak
	}
	n := float64(prev.Total)
	next.AverageElapsedMs = (prev.AverageElapsedMs*n + float64(outcome.ElapsedMs)) / (n + 1)
	return next
}

// Reset returns the zero statistics.
func Reset() model.Statistics {
	return model.Statistics{}
}

// Progress returns the share of the catalog covered by total, capped at 1.
func Progress(total, catalogSize int) float64 {
	if catalogSize <= 0 || total <= 0 {
		return 0
	}
	return math.Min(float64(total)/float64(catalogSize), 1)
}

// ShareText builds the plain text a learner can paste to share progress.
func ShareText(s model.Statistics, current *model.VerbRecord) string {
	var b strings.Builder
	b.WriteString("I'm learning English verbs with Verb Roulette!")
	if current != nil {
		fmt.Fprintf(&b, " I just practiced the verb %q.", current.Verb)
	}
	if s.BestStreak > 0 {
		fmt.Fprintf(&b, " My best streak is %d verbs.", s.BestStreak)
	}
	if s.AverageElapsedMs > 0 {
		fmt.Fprintf(&b, " Average time: %.1fs.", s.AverageElapsedMs/1000)
	}
	b.WriteString(" #VerbRoulette #LearnEnglish #Verbs")
	return b.String()
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
