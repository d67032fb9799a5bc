package achievement

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/verbroulette/internal/model"
)

// RuleKind names the threshold a Rule checks.
type RuleKind string

const (
	RuleTotalAtLeast      RuleKind = "total-at-least"
	RuleBestStreakAtLeast RuleKind = "best-streak-at-least"
	RuleRegularAtLeast    RuleKind = "regular-at-least"
	RuleIrregularAtLeast  RuleKind = "irregular-at-least"
	RuleAverageAtMost     RuleKind = "average-at-most"
	RuleAll               RuleKind = "all"
)

// Rule is a serializable predicate over statistics.
type Rule struct {
	Kind  RuleKind `json:"kind" yaml:"kind"`
	N     float64  `json:"n,omitempty" yaml:"n,omitempty"`
	Rules []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

func TotalAtLeast(n int) Rule      { return Rule{Kind: RuleTotalAtLeast, N: float64(n)} }
func BestStreakAtLeast(n int) Rule { return Rule{Kind: RuleBestStreakAtLeast, N: float64(n)} }
func RegularAtLeast(n int) Rule    { return Rule{Kind: RuleRegularAtLeast, N: float64(n)} }
func IrregularAtLeast(n int) Rule  { return Rule{Kind: RuleIrregularAtLeast, N: float64(n)} }
func AverageAtMost(ms float64) Rule { return Rule{Kind: RuleAverageAtMost, N: ms} }

// All holds when every rule holds.
func All(rules ...Rule) Rule {
	return Rule{Kind: RuleAll, Rules: rules}
}

// Holds evaluates the rule against s. The average rule needs at least one
// recorded spin, since the zero average would otherwise satisfy it.
func (r Rule) Holds(s model.Statistics) bool {
	switch r.Kind {
	case RuleTotalAtLeast:
		return float64(s.Total) >= r.N
	case RuleBestStreakAtLeast:
		return float64(s.BestStreak) >= r.N
	case RuleRegularAtLeast:
		return float64(s.Regular) >= r.N
	case RuleIrregularAtLeast:
		return float64(s.Irregular) >= r.N
	case RuleAverageAtMost:
		return s.Total > 0 && s.AverageElapsedMs <= r.N
	case RuleAll:
		for _, sub := range r.Rules {
			if !sub.Holds(s) {
				return false
			}
		}
		return len(r.Rules) > 0
	default:
		return false
	}
}

// Validate reports unknown kinds and empty compositions.
func (r Rule) Validate() error {
	switch r.Kind {
	case RuleTotalAtLeast, RuleBestStreakAtLeast, RuleRegularAtLeast, RuleIrregularAtLeast, RuleAverageAtMost:
		if r.N < 0 {
			return fmt.Errorf("rule %s: threshold must be >= 0", r.Kind)
		}
		return nil
	case RuleAll:
		if len(r.Rules) == 0 {
			return fmt.Errorf("rule %s: needs at least one rule", r.Kind)
		}
		for _, sub := range r.Rules {
			if err := sub.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}

// String renders the rule for debugging and the simulate report.
func (r Rule) String() string {
	switch r.Kind {
	case RuleAverageAtMost:
		return fmt.Sprintf("average <= %gms", r.N)
	case RuleAll:
		parts := make([]string, len(r.Rules))
		for i, sub := range r.Rules {
			parts[i] = sub.String()
		}
		return strings.Join(parts, " and ")
	default:
		label := strings.ReplaceAll(strings.TrimSuffix(string(r.Kind), "-at-least"), "-", " ")
		return fmt.Sprintf("%s %g+", label, r.N)
	}
}
