// Package achievement evaluates permanent trophies against statistics.
package achievement

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/verbroulette/internal/model"
)

// Category groups achievements. Evaluation reports categories in the order
// of Categories.
type Category string

const (
	CategoryPractice Category = "practice"
	CategoryStreak   Category = "streak"
	CategorySpeed    Category = "speed"
	CategoryMastery  Category = "mastery"
)

// Categories returns all categories in reporting order.
func Categories() []Category {
	return []Category{CategoryPractice, CategoryStreak, CategorySpeed, CategoryMastery}
}

func (c Category) rank() int {
	for i, cat := range Categories() {
		if cat == c {
			return i
		}
	}
	return len(Categories())
}

// Rarity grades how hard an achievement is.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Achievement is an immutable trophy definition.
type Achievement struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Rarity      Rarity   `json:"rarity" yaml:"rarity"`
	Rule        Rule     `json:"rule" yaml:"rule"`
}

// Defaults returns the built-in achievements in definition order.
func Defaults() []Achievement {
	return []Achievement{
		{ID: "first-steps", Title: "First Steps", Description: "Practice your first verb", Category: CategoryPractice, Rarity: RarityCommon, Rule: TotalAtLeast(1)},
		{ID: "getting-started", Title: "Getting Started", Description: "Practice 10 verbs", Category: CategoryPractice, Rarity: RarityCommon, Rule: TotalAtLeast(10)},
		{ID: "dedicated-learner", Title: "Dedicated Student", Description: "Practice 25 verbs", Category: CategoryPractice, Rarity: RarityRare, Rule: TotalAtLeast(25)},
		{ID: "verb-master", Title: "Verb Master", Description: "Practice 50 verbs", Category: CategoryPractice, Rarity: RarityEpic, Rule: TotalAtLeast(50)},
		{ID: "verb-legend", Title: "Verb Legend", Description: "Practice 100 verbs", Category: CategoryPractice, Rarity: RarityLegendary, Rule: TotalAtLeast(100)},

		{ID: "hot-streak", Title: "Hot Streak", Description: "Get a streak of 5", Category: CategoryStreak, Rarity: RarityRare, Rule: BestStreakAtLeast(5)},
		{ID: "unstoppable", Title: "Unstoppable", Description: "Get a streak of 10", Category: CategoryStreak, Rarity: RarityEpic, Rule: BestStreakAtLeast(10)},
		{ID: "perfectionist", Title: "Perfectionist", Description: "Get a streak of 20", Category: CategoryStreak, Rarity: RarityLegendary, Rule: BestStreakAtLeast(20)},

		{ID: "speed-demon", Title: "Speed Demon", Description: "Average less than 2 seconds", Category: CategorySpeed, Rarity: RarityRare, Rule: AverageAtMost(2000)},
		{ID: "lightning-fast", Title: "Lightning Speed", Description: "Average less than 1 second", Category: CategorySpeed, Rarity: RarityEpic, Rule: AverageAtMost(1000)},

		{ID: "balanced-learner", Title: "Balanced Learner", Description: "Practice 10 regular and 10 irregular verbs", Category: CategoryMastery, Rarity: RarityRare, Rule: All(RegularAtLeast(10), IrregularAtLeast(10))},
		{ID: "irregular-expert", Title: "Irregular Expert", Description: "Practice 25 irregular verbs", Category: CategoryMastery, Rarity: RarityEpic, Rule: IrregularAtLeast(25)},
	}
}

// ValidateDefinitions rejects duplicate ids and invalid rules.
func ValidateDefinitions(defs []Achievement) error {
	seen := make(map[string]struct{}, len(defs))
	for _, a := range defs {
		if a.ID == "" {
			return fmt.Errorf("achievement %q: id is empty", a.Title)
		}
		if _, ok := seen[a.ID]; ok {
			return fmt.Errorf("achievement %q is defined twice", a.ID)
		}
		seen[a.ID] = struct{}{}
		if err := a.Rule.Validate(); err != nil {
			return fmt.Errorf("achievement %q: %w", a.ID, err)
		}
	}
	return nil
}

// State is the set of unlocked achievement ids. Unlocks are permanent: no
// operation removes an id.
type State struct {
	unlocked map[string]struct{}
}

// NewState returns a state with ids already unlocked.
func NewState(ids ...string) State {
	st := State{unlocked: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		st.unlocked[id] = struct{}{}
	}
	return st
}

// Unlocked reports whether id is unlocked.
func (s State) Unlocked(id string) bool {
	_, ok := s.unlocked[id]
	return ok
}

// Len returns the number of unlocked ids.
func (s State) Len() int {
	return len(s.unlocked)
}

// IDs returns the unlocked ids sorted.
func (s State) IDs() []string {
	ids := make([]string, 0, len(s.unlocked))
	for id := range s.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s State) with(ids []string) State {
	next := State{unlocked: make(map[string]struct{}, len(s.unlocked)+len(ids))}
	for id := range s.unlocked {
		next.unlocked[id] = struct{}{}
	}
	for _, id := range ids {
		next.unlocked[id] = struct{}{}
	}
	return next
}

// Evaluate unlocks every locked achievement whose rule holds for s. It
// returns the updated state and the newly unlocked achievements ordered by
// category, then definition order. The input state is not modified.
func Evaluate(defs []Achievement, s model.Statistics, state State) (State, []Achievement) {
	var fresh []Achievement
	for _, a := range defs {
		if state.Unlocked(a.ID) {
			continue
		}
		if a.Rule.Holds(s) {
			fresh = append(fresh, a)
		}
	}
	if len(fresh) == 0 {
		return state, nil
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Category.rank() < fresh[j].Category.rank()
	})
	ids := make([]string, len(fresh))
	for i, a := range fresh {
		ids[i] = a.ID
	}
	return state.with(ids), fresh
}

// Summary counts unlocked achievements per category.
type Summary struct {
	Unlocked   int
	Total      int
	ByCategory map[Category]int
}

// Summarize builds the unlocked-count summary for defs.
func Summarize(defs []Achievement, state State) Summary {
	sum := Summary{Total: len(defs), ByCategory: map[Category]int{}}
	for _, a := range defs {
		if state.Unlocked(a.ID) {
			sum.Unlocked++
			sum.ByCategory[a.Category]++
		}
	}
	return sum
}
