package readiness

import "strings"

// RTA spot checks: keyword heuristics over the intended-use statement
// approximating FDA's Refuse-to-Accept completeness screen. Each check
// is a simple substring probe, matching the review checklist wording.

type RTACheck struct {
	Name   string
	Passed bool
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// SpotCheckIntendedUse runs the four RTA checks against an intended-use
// statement: stated purpose, target population, use environment and
// clinical conditions.
func SpotCheckIntendedUse(intendedUse string) []RTACheck {
	content := strings.ToLower(intendedUse)
	return []RTACheck{
		{Name: "purpose", Passed: strings.Contains(content, "intended for")},
		{Name: "population", Passed: containsAny(content, "adult", "pediatric")},
		{Name: "environment", Passed: containsAny(content, "hospital", "clinic")},
		{Name: "conditions", Passed: containsAny(content, "disease", "condition", "diagnosis")},
	}
}

// RTAScore is the percentage of RTA checks passing.
func RTAScore(checks []RTACheck) int {
	flags := make([]bool, len(checks))
	for i, c := range checks {
		flags[i] = c.Passed
	}
	return score(flags)
}
