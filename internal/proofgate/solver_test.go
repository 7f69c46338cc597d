package proofgate

import (
	"context"
	"testing"
)

func TestNativeSolverUnsat(t *testing.T) {
	outcome, _, err := NativeSolver{}.Check(context.Background(), "(assert false)\n(check-sat)\n")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if outcome != OutcomeUnsat {
		t.Fatalf("expected unsat, got %s", outcome)
	}
}

func TestNativeSolverSatModel(t *testing.T) {
	formula := `(declare-const violation_0_exec Bool)
(declare-const file_0 String)
(declare-const token_0 String)
(assert violation_0_exec)
(assert (= file_0 "agent.py"))
(assert (= token_0 "exec"))
(check-sat)
(get-model)
`
	outcome, model, err := NativeSolver{}.Check(context.Background(), formula)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if outcome != OutcomeSat {
		t.Fatalf("expected sat, got %s", outcome)
	}
	if model["file_0"] != "agent.py" || model["token_0"] != "exec" {
		t.Fatalf("model missing bindings: %v", model)
	}
	if model["violation_0_exec"] != "true" {
		t.Fatalf("asserted bool missing: %v", model)
	}
}

func TestNativeSolverOutsideFragment(t *testing.T) {
	outcome, _, err := NativeSolver{}.Check(context.Background(), "(assert (> x 3))\n")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if outcome != OutcomeUnknown {
		t.Fatalf("formulas outside the fragment must be unknown, got %s", outcome)
	}
}

func TestParseModel(t *testing.T) {
	output := `sat
(
  (define-fun token_0 () String
    "exec")
  (define-fun violation_0_exec () Bool
    true)
)
`
	model := parseModel(output)
	if model["token_0"] != "exec" {
		t.Fatalf("string binding not parsed: %v", model)
	}
	if model["violation_0_exec"] != "true" {
		t.Fatalf("bool binding not parsed: %v", model)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeUnsat.String() != "unsat" || OutcomeSat.String() != "sat" || OutcomeUnknown.String() != "unknown" {
		t.Fatal("outcome strings wrong")
	}
}
