package stats

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/verte-zerg/verbroulette/internal/model"
)

var (
	regularVerb   = model.VerbRecord{Verb: "walk", Kind: model.Regular, Past: "walked", PastParticiple: "walked"}
	irregularVerb = model.VerbRecord{Verb: "go", Kind: model.Irregular, Past: "went", PastParticiple: "gone"}
)

func TestApplyCountsAndStreak(t *testing.T) {
	s := Reset()
	s = Apply(model.SpinOutcome{Verb: regularVerb, ElapsedMs: 3000}, s)
	s = Apply(model.SpinOutcome{Verb: irregularVerb, ElapsedMs: 5000}, s)
	s = Apply(model.SpinOutcome{Verb: irregularVerb, ElapsedMs: 4000}, s)

	if s.Total != 3 || s.Regular != 1 || s.Irregular != 2 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if s.CurrentStreak != 3 || s.BestStreak != 3 {
		t.Fatalf("unexpected streaks: %+v", s)
	}
	if s.AverageElapsedMs != 4000 {
		t.Fatalf("expected 4000ms average, got %f", s.AverageElapsedMs)
	}
}

func TestApplyDoesNotMutatePrevious(t *testing.T) {
	prev := model.Statistics{Total: 2, Regular: 2, CurrentStreak: 2, BestStreak: 2, AverageElapsedMs: 3000}
	next := Apply(model.SpinOutcome{Verb: irregularVerb, ElapsedMs: 6000}, prev)
	if prev.Total != 2 || prev.Irregular != 0 {
		t.Fatalf("previous snapshot changed: %+v", prev)
	}
	if next.AverageElapsedMs != 4000 {
		t.Fatalf("expected 4000ms average, got %f", next.AverageElapsedMs)
	}
}

func TestApplyStaysConsistentOverRandomSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	s := Reset()
	var sum float64
	prevBest := 0
	for i := 1; i <= 500; i++ {
		verb := regularVerb
		if rnd.Intn(2) == 0 {
			verb = irregularVerb
		}
		elapsed := int64(3000 + rnd.Intn(2000))
		sum += float64(elapsed)
		s = Apply(model.SpinOutcome{Verb: verb, ElapsedMs: elapsed}, s)

		if s.Regular+s.Irregular != s.Total {
			t.Fatalf("step %d: counters do not add up: %+v", i, s)
		}
		if s.BestStreak < s.CurrentStreak {
			t.Fatalf("step %d: best streak below current: %+v", i, s)
		}
		if s.BestStreak < prevBest {
			t.Fatalf("step %d: best streak decreased", i)
		}
		prevBest = s.BestStreak
		mean := sum / float64(i)
		if math.Abs(s.AverageElapsedMs-mean) > 1e-6 {
			t.Fatalf("step %d: average %f, want %f", i, s.AverageElapsedMs, mean)
		}
	}
}

func TestResetClearsEverything(t *testing.T) {
	if Reset() != (model.Statistics{}) {
		t.Fatalf("expected zero statistics")
	}
}

func TestProgress(t *testing.T) {
	if got := Progress(25, 100); got != 0.25 {
		t.Fatalf("expected 0.25, got %f", got)
	}
	if got := Progress(150, 100); got != 1 {
		t.Fatalf("expected progress to cap at 1, got %f", got)
	}
	if got := Progress(5, 0); got != 0 {
		t.Fatalf("expected zero for empty catalog, got %f", got)
	}
}

func TestShareText(t *testing.T) {
	s := model.Statistics{BestStreak: 7, AverageElapsedMs: 3456}
	out := ShareText(s, &irregularVerb)
	for _, want := range []string{`the verb "go"`, "best streak is 7", "Average time: 3.5s", "#VerbRoulette"} {
		if !strings.Contains(out, want) {
			t.Fatalf("share text missing %q: %s", want, out)
		}
	}
	bare := ShareText(model.Statistics{}, nil)
	if strings.Contains(bare, "streak") || strings.Contains(bare, "Average") {
		t.Fatalf("unexpected segments for empty stats: %s", bare)
	}
}

func TestMovingAverage(t *testing.T) {
	out := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %f, want %f", i, out[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{1, 1, 1}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	got := Sparkline([]float64{0, 10})
	if got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}
