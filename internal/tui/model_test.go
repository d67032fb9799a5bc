package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/verbroulette/internal/challenge"
	"github.com/verte-zerg/verbroulette/internal/model"
	"github.com/verte-zerg/verbroulette/internal/roulette"
	"github.com/verte-zerg/verbroulette/internal/session"
)

func newTestModel(t *testing.T, bell *bytes.Buffer) *Model {
	t.Helper()
	opts := Options{
		Session: session.Options{
			Rand: roulette.NewSource(3),
			Spin: roulette.Options{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond},
		},
	}
	if bell != nil {
		opts.Bell = bell
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// findMsg executes cmd and returns the first message of type T it yields,
// descending into batches.
func findMsg[T any](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if found, ok := findMsg[T](c); ok {
				return found, true
			}
		}
		return zero, false
	}
	found, ok := msg.(T)
	return found, ok
}

func TestSpinFlow(t *testing.T) {
	bell := &bytes.Buffer{}
	m := newTestModel(t, bell)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.view.Spinning {
		t.Fatalf("expected spinning view")
	}
	done, ok := findMsg[spinDoneMsg](cmd)
	if !ok {
		t.Fatalf("expected a spin completion command")
	}
	m.Update(done)
	if m.view.Spinning || m.view.Current == nil {
		t.Fatalf("expected a landed verb")
	}
	if m.view.Statistics.Total != 1 {
		t.Fatalf("expected total 1, got %d", m.view.Statistics.Total)
	}
	if bell.String() == "" {
		t.Fatalf("expected the first unlock to ring the bell")
	}
	if !strings.Contains(m.flash, "Achievement unlocked") {
		t.Fatalf("expected unlock flash, got %q", m.flash)
	}

	m.Update(keyRunes("g"))
	if m.view.Feedback != model.FeedbackPositive {
		t.Fatalf("expected positive feedback")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.view.Current != nil {
		t.Fatalf("expected verb dismissed")
	}
}

func TestChallengeStartSchedulesTick(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(keyRunes("c"))
	if cmd == nil {
		t.Fatalf("expected tick command")
	}
	if m.view.Challenge.State != challenge.Running {
		t.Fatalf("expected running challenge")
	}
	if m.view.Challenge.Session.Mode.ID != "marathon" {
		t.Fatalf("expected second mode, got %s", m.view.Challenge.Session.Mode.ID)
	}
	seq := m.view.Challenge.Session.Seq
	_, next := m.Update(tickMsg{seq: seq})
	if next == nil {
		t.Fatalf("expected another tick while running")
	}
	if _, stale := m.Update(tickMsg{seq: seq + 1}); stale != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	m.Update(keyRunes("x"))
	if m.view.Challenge.State != challenge.Idle {
		t.Fatalf("expected challenge stopped")
	}
}

func TestShareAndListenWithoutSpeaker(t *testing.T) {
	m := newTestModel(t, nil)
	m.speechNotice = "no speech synthesizer found"
	m.Update(keyRunes("s"))
	if !strings.Contains(m.share, "Verb Roulette") {
		t.Fatalf("unexpected share text %q", m.share)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.share != "" {
		t.Fatalf("expected share closed")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	done, _ := findMsg[spinDoneMsg](cmd)
	m.Update(done)
	m.Update(keyRunes("l"))
	if m.view.Notice != "no speech synthesizer found" {
		t.Fatalf("expected speech notice, got %q", m.view.Notice)
	}
}

func TestRenderStatsFormats(t *testing.T) {
	v := session.View{Statistics: model.Statistics{Regular: 3, Irregular: 2, Total: 5, CurrentStreak: 5, BestStreak: 5, AverageElapsedMs: 3456}}
	out := renderStats(v)
	for _, want := range []string{"Regular 3", "Irregular 2", "Streak 5 (best 5)", "Avg 3.5s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats line missing %q: %s", want, out)
		}
	}
}

func TestNextUnlockedTier(t *testing.T) {
	v := session.View{
		Difficulty: "beginner",
		Tiers: []session.TierView{
			{Unlocked: true},
			{Unlocked: true},
			{Unlocked: false},
		},
	}
	v.Tiers[0].ID, v.Tiers[1].ID, v.Tiers[2].ID = "beginner", "intermediate", "advanced"
	id, ok := nextUnlockedTier(v)
	if !ok || id != "intermediate" {
		t.Fatalf("expected intermediate, got %q", id)
	}
	v.Difficulty = "intermediate"
	if id, _ := nextUnlockedTier(v); id != "beginner" {
		t.Fatalf("expected wrap to beginner, got %q", id)
	}
	v.Tiers[1].Unlocked = false
	v.Difficulty = "beginner"
	if _, ok := nextUnlockedTier(v); ok {
		t.Fatalf("expected no other unlocked tier")
	}
}

func TestChallengeSummary(t *testing.T) {
	res := challenge.Result{
		Mode:         challenge.Mode{Name: "Quick Round", TargetVerbs: 10},
		Completed:    12,
		Success:      true,
		PreviousBest: 8,
		NewRecord:    true,
	}
	out := challengeSummary(res)
	for _, want := range []string{"12/10", "target reached", "new record (was 8)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q: %s", want, out)
		}
	}
}
