package proofgate

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// #region solver-interface
// Solver decides satisfiability of an SMT-LIB2 obligation and, for SAT
// results, returns the model as variable-name -> rendered-value pairs.
type Solver interface {
	Check(ctx context.Context, formula string) (Outcome, map[string]string, error)
}

// #endregion solver-interface

// #region z3-solver
// Z3Solver shells out to a z3 binary reading SMT-LIB2 on stdin.
type Z3Solver struct {
	Bin     string
	Timeout time.Duration
}

// NewZ3Solver returns a solver driving the given z3 binary.
func NewZ3Solver(bin string) *Z3Solver {
	return &Z3Solver{Bin: bin, Timeout: 10 * time.Second}
}

// Available reports whether the configured binary can be found.
func (s *Z3Solver) Available() bool {
	_, err := exec.LookPath(s.Bin)
	return err == nil
}

// Check runs the solver. A timeout or unparseable output maps to
// OutcomeUnknown, which the gate treats as Disproved (fail closed).
func (s *Z3Solver) Check(ctx context.Context, formula string) (Outcome, map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.Bin, "-in", "-smt2")
	cmd.Stdin = strings.NewReader(formula)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	// z3 exits non-zero on some unknown results; the output line is what
	// matters, so run errors only count when no status line is present.
	runErr := cmd.Run()

	text := out.String()
	switch {
	case strings.HasPrefix(text, "unsat"):
		return OutcomeUnsat, nil, nil
	case strings.HasPrefix(text, "sat"):
		return OutcomeSat, parseModel(text), nil
	case strings.HasPrefix(text, "unknown"):
		return OutcomeUnknown, nil, nil
	}
	if runErr != nil {
		return OutcomeUnknown, nil, fmt.Errorf("z3: %w: %s", runErr, firstLine(text))
	}
	return OutcomeUnknown, nil, fmt.Errorf("z3: unrecognized output: %s", firstLine(text))
}

// #endregion z3-solver

// #region model-parse
var defineFunPattern = regexp.MustCompile(`\(define-fun\s+(\S+)\s+\(\)\s+\S+\s+([^)]+)\)`)

// parseModel extracts define-fun bindings from (get-model) output. Good for
// the Bool/String/numeric-literal fragment the compiler emits; values
// containing unescaped parentheses are outside that fragment.
func parseModel(output string) map[string]string {
	flat := strings.Join(strings.Fields(output), " ")
	model := make(map[string]string)
	for _, m := range defineFunPattern.FindAllStringSubmatch(flat, -1) {
		name := m[1]
		value := strings.TrimSpace(m[2])
		value = strings.Trim(value, `"`)
		model[name] = value
	}
	return model
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// #endregion model-parse

// #region native-solver
// NativeSolver evaluates the restricted fragment emitted by the diff
// compiler without an external binary: conjunctions of asserted Bool
// constants and String equalities against literals. Used when no z3 binary
// is installed so a missing solver degrades rather than disabling the
// gate.
type NativeSolver struct{}

var (
	assertEqPattern   = regexp.MustCompile(`\(assert \(= (\S+) "((?:[^"]|"")*)"\)\)`)
	assertBoolPattern = regexp.MustCompile(`\(assert ([A-Za-z_][A-Za-z0-9_]*)\)`)
)

// Check evaluates the fragment: an explicit `(assert false)` is
// unsatisfiable; otherwise the asserted literals are their own model.
// Formulas outside the fragment come back OutcomeUnknown.
func (NativeSolver) Check(_ context.Context, formula string) (Outcome, map[string]string, error) {
	if strings.Contains(formula, "(assert false)") {
		return OutcomeUnsat, nil, nil
	}

	model := make(map[string]string)
	for _, m := range assertEqPattern.FindAllStringSubmatch(formula, -1) {
		model[m[1]] = strings.ReplaceAll(m[2], `""`, `"`)
	}
	for _, m := range assertBoolPattern.FindAllStringSubmatch(formula, -1) {
		if m[1] == "false" || m[1] == "true" {
			continue
		}
		model[m[1]] = "true"
	}
	if len(model) == 0 {
		return OutcomeUnknown, nil, nil
	}
	return OutcomeSat, model, nil
}

// #endregion native-solver
