package proofgate

import (
	"fmt"
	"sort"
	"strings"
)

// #region outcome
// Outcome is the raw solver result.
type Outcome int

const (
	OutcomeUnsat Outcome = iota // unsafe condition unreachable
	OutcomeSat                  // concrete unsafe instantiation exists
	OutcomeUnknown              // timeout or incompleteness
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnsat:
		return "unsat"
	case OutcomeSat:
		return "sat"
	default:
		return "unknown"
	}
}

// #endregion outcome

// #region counterexample
// Counterexample is a concrete variable assignment demonstrating why a
// safety obligation is satisfiable.
type Counterexample struct {
	Assignments map[string]string `json:"counterexample"`
	Summary     string            `json:"model_summary"`
}

// summarize renders the human-readable summary from the assignments.
func summarize(assignments map[string]string) string {
	if len(assignments) == 0 {
		return "satisfiable but no variable assignments found"
	}
	keys := make([]string, 0, len(assignments))
	for k := range assignments {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	shown := keys
	if len(shown) > 3 {
		shown = shown[:3]
	}
	pairs := make([]string, 0, len(shown))
	for _, k := range shown {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, assignments[k]))
	}
	s := fmt.Sprintf("found counterexample with %d variable(s): %s", len(assignments), strings.Join(pairs, ", "))
	if len(keys) > 3 {
		s += fmt.Sprintf(" (and %d more)", len(keys)-3)
	}
	return s
}

// #endregion counterexample

// #region verdict
// Verdict is the gate's decision for one obligation. Disproved verdicts are
// expected, first-class outcomes, not errors.
type Verdict struct {
	Proved         bool
	Counterexample *Counterexample // set on some Disproved verdicts
	Cached         bool            // satisfied from the proof cache
}

// Bool is the thin compatibility wrapper for callers that only need a
// pass/fail answer.
func (v Verdict) Bool() bool {
	return v.Proved
}

// #endregion verdict
