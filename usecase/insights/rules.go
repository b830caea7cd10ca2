package insights

import "fmt"

// rule pairs a predicate with the message it produces. Rules are evaluated
// in declaration order, which is their priority order.
type rule struct {
	applies func(Metrics) bool
	message func(Metrics) string
}

var suggestionRules = []rule{
	{
		applies: func(m Metrics) bool { return m.SessionsCount == 0 },
		message: func(Metrics) string {
			return "No focus sessions recorded this week. Start small: one 25-minute block today."
		},
	},
	{
		applies: func(m Metrics) bool { return m.TasksCreated > 0 && m.CompletionRate < 50 },
		message: func(m Metrics) string {
			return fmt.Sprintf("Your completion rate is %d%%. Try breaking work into smaller, finishable tasks.", m.CompletionRate)
		},
	},
	{
		applies: func(m Metrics) bool { return m.SessionsCount > 0 && m.DaysWithFocus < 3 },
		message: func(m Metrics) string {
			return fmt.Sprintf("You focused on %d of the last 7 days. A short daily session builds more momentum than rare long ones.", m.DaysWithFocus)
		},
	},
	{
		applies: func(m Metrics) bool { return m.SessionsCount > 0 && m.AvgSessionDuration < 15 },
		message: func(m Metrics) string {
			return fmt.Sprintf("Your sessions average %d minutes. Try longer uninterrupted blocks to reach deeper focus.", m.AvgSessionDuration)
		},
	},
	{
		applies: func(m Metrics) bool { return m.Streak >= 3 },
		message: func(m Metrics) string {
			return fmt.Sprintf("You're on a %d-day streak. Keep it going.", m.Streak)
		},
	},
}

// Suggest evaluates the decision table against the metrics snapshot and
// returns at most max messages, in rule priority order. Deterministic: no
// randomness, no external calls.
func Suggest(metrics Metrics, max int) []string {
	suggestions := []string{}
	for _, r := range suggestionRules {
		if len(suggestions) >= max {
			break
		}
		if r.applies(metrics) {
			suggestions = append(suggestions, r.message(metrics))
		}
	}
	return suggestions
}
