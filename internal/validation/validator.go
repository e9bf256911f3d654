package validation

import (
	"strings"
	"time"
)

// Draft is the view of wizard state the validator needs. Satisfied by
// *models.Draft.
type Draft interface {
	Text(key string) string
	Flag(key string) bool
}

// Result is the outcome of validating a draft against a rule set.
// Errors marks every failing field; Message is the aggregate toast-style
// text, empty when the draft passes.
type Result struct {
	Errors  map[string]bool
	Message string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// ValidateStep evaluates one step's rules against the current draft.
// Conditional rules read the draft's other fields live, so toggling the
// follow-up flag immediately changes what step 1 demands.
func ValidateStep(step int, d Draft) Result {
	return evaluate(StepRules(step), d)
}

// ValidateAll evaluates the union of all steps plus the whole-record
// rules, used at final submit.
func ValidateAll(d Draft) Result {
	return evaluate(AllRules(), d)
}

func evaluate(rules []Rule, d Draft) Result {
	errs := make(map[string]bool)
	var missingLabels []string
	var firstViolation string

	for _, rule := range rules {
		value := strings.TrimSpace(d.Text(rule.Field))
		for _, c := range rule.Constraints {
			if c.When != "" && !d.Flag(c.When) {
				continue
			}
			switch c.Kind {
			case Required, RequiredIf:
				if value == "" && !errs[rule.Field] {
					errs[rule.Field] = true
					missingLabels = append(missingLabels, rule.Label)
				}
			case Pattern:
				if value != "" && !c.Regexp.MatchString(value) {
					errs[rule.Field] = true
					if firstViolation == "" {
						firstViolation = c.Message
					}
				}
			case MaxLength:
				if len(value) > c.Max {
					errs[rule.Field] = true
					if firstViolation == "" {
						firstViolation = c.Message
					}
				}
			case OneOf:
				if value != "" && !contains(c.Set, value) {
					errs[rule.Field] = true
					if firstViolation == "" {
						firstViolation = c.Message
					}
				}
			case CalendarDate:
				if value != "" {
					if _, err := time.Parse("2006-01-02", value); err != nil {
						errs[rule.Field] = true
						if firstViolation == "" {
							firstViolation = c.Message
						}
					}
				}
			}
		}
	}

	res := Result{Errors: errs}
	switch {
	case len(missingLabels) > 0:
		res.Message = "Please fill the following required fields: " + strings.Join(missingLabels, ", ")
	case firstViolation != "":
		res.Message = firstViolation
	}
	return res
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
