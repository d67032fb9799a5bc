package achievement

import (
	"encoding/json"
	"testing"

	"github.com/verte-zerg/verbroulette/internal/model"
)

func ids(list []Achievement) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestDefaultsAreValid(t *testing.T) {
	defs := Defaults()
	if len(defs) != 12 {
		t.Fatalf("expected 12 achievements, got %d", len(defs))
	}
	if err := ValidateDefinitions(defs); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestEvaluateReportsEveryCrossedThreshold(t *testing.T) {
	s := model.Statistics{Total: 100, Regular: 50, Irregular: 50, CurrentStreak: 100, BestStreak: 100, AverageElapsedMs: 4000}
	state, fresh := Evaluate(Defaults(), s, NewState())
	want := []string{
		"first-steps", "getting-started", "dedicated-learner", "verb-master", "verb-legend",
		"hot-streak", "unstoppable", "perfectionist",
		"balanced-learner", "irregular-expert",
	}
	got := ids(fresh)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if state.Len() != len(want) {
		t.Fatalf("expected %d unlocked, got %d", len(want), state.Len())
	}
}

func TestEvaluateOrdersByCategoryThenDefinition(t *testing.T) {
	defs := []Achievement{
		{ID: "m", Category: CategoryMastery, Rule: TotalAtLeast(1)},
		{ID: "p2", Category: CategoryPractice, Rule: TotalAtLeast(1)},
		{ID: "s", Category: CategoryStreak, Rule: TotalAtLeast(1)},
		{ID: "p1", Category: CategoryPractice, Rule: TotalAtLeast(1)},
	}
	_, fresh := Evaluate(defs, model.Statistics{Total: 1}, NewState())
	got := ids(fresh)
	want := []string{"p2", "p1", "s", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	s := model.Statistics{Total: 12, Regular: 6, Irregular: 6, CurrentStreak: 12, BestStreak: 12, AverageElapsedMs: 3500}
	state, first := Evaluate(Defaults(), s, NewState())
	if len(first) == 0 {
		t.Fatalf("expected unlocks on first evaluation")
	}
	_, second := Evaluate(Defaults(), s, state)
	if len(second) != 0 {
		t.Fatalf("expected no unlocks on second evaluation, got %v", ids(second))
	}
}

func TestUnlocksSurviveReset(t *testing.T) {
	state, _ := Evaluate(Defaults(), model.Statistics{Total: 10, BestStreak: 10, CurrentStreak: 10, Regular: 10}, NewState())
	next, fresh := Evaluate(Defaults(), model.Statistics{}, state)
	if len(fresh) != 0 {
		t.Fatalf("expected nothing new for zero stats")
	}
	for _, id := range []string{"first-steps", "getting-started", "hot-streak", "unstoppable"} {
		if !next.Unlocked(id) {
			t.Fatalf("expected %s to stay unlocked", id)
		}
	}
}

func TestEvaluateDoesNotModifyInputState(t *testing.T) {
	before := NewState()
	_, _ = Evaluate(Defaults(), model.Statistics{Total: 1, CurrentStreak: 1, BestStreak: 1}, before)
	if before.Len() != 0 {
		t.Fatalf("input state was modified")
	}
}

func TestAverageRuleNeedsASpin(t *testing.T) {
	rule := AverageAtMost(2000)
	if rule.Holds(model.Statistics{}) {
		t.Fatalf("average rule must not hold with no spins")
	}
	if !rule.Holds(model.Statistics{Total: 1, AverageElapsedMs: 1500}) {
		t.Fatalf("expected average rule to hold")
	}
	if rule.Holds(model.Statistics{Total: 1, AverageElapsedMs: 2500}) {
		t.Fatalf("expected average rule to fail")
	}
}

func TestAllRule(t *testing.T) {
	rule := All(RegularAtLeast(10), IrregularAtLeast(10))
	if rule.Holds(model.Statistics{Regular: 10, Irregular: 9}) {
		t.Fatalf("expected composite rule to fail")
	}
	if !rule.Holds(model.Statistics{Regular: 10, Irregular: 10}) {
		t.Fatalf("expected composite rule to hold")
	}
	if All().Holds(model.Statistics{}) {
		t.Fatalf("empty composite must not hold")
	}
	if err := All().Validate(); err == nil {
		t.Fatalf("expected empty composite to be invalid")
	}
}

func TestRuleSerializes(t *testing.T) {
	rule := All(TotalAtLeast(3), AverageAtMost(1000))
	data, err := json.Marshal(rule)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Rule
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s := model.Statistics{Total: 3, AverageElapsedMs: 900}
	if !back.Holds(s) || back.String() != rule.String() {
		t.Fatalf("decoded rule differs: %s", back)
	}
}

func TestValidateDefinitionsRejectsDuplicates(t *testing.T) {
	defs := []Achievement{
		{ID: "a", Rule: TotalAtLeast(1)},
		{ID: "a", Rule: TotalAtLeast(2)},
	}
	if err := ValidateDefinitions(defs); err == nil {
		t.Fatalf("expected duplicate id to be rejected")
	}
}

func TestSummarize(t *testing.T) {
	state := NewState("first-steps", "hot-streak", "getting-started")
	sum := Summarize(Defaults(), state)
	if sum.Unlocked != 3 || sum.Total != 12 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if sum.ByCategory[CategoryPractice] != 2 || sum.ByCategory[CategoryStreak] != 1 {
		t.Fatalf("unexpected per-category counts: %+v", sum.ByCategory)
	}
}
