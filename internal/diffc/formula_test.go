package diffc

import (
	"strings"
	"testing"
)

const forbiddenDiff = `diff --git a/agent.py b/agent.py
--- a/agent.py
+++ b/agent.py
@@ -1,1 +1,2 @@
 x = 1
+exec('rm -rf /')
`

func TestCompileCleanDiffIsVacuouslySafe(t *testing.T) {
	c := NewCompiler()
	ob := c.Compile(`diff --git a/agent.py b/agent.py
--- a/agent.py
+++ b/agent.py
@@ -1,1 +1,1 @@
-x = 1
+x = 2
`)
	if !ob.Safe() {
		t.Fatalf("clean diff flagged unsafe: %+v", ob)
	}
	if !strings.Contains(ob.Formula, "(assert false)") {
		t.Fatalf("safe obligation must be unsatisfiable, got:\n%s", ob.Formula)
	}
}

func TestCompileForbiddenPattern(t *testing.T) {
	c := NewCompiler()
	ob := c.Compile(forbiddenDiff)

	if ob.Safe() {
		t.Fatal("exec call must be flagged")
	}
	if len(ob.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(ob.Violations))
	}
	v := ob.Violations[0]
	if v.Pattern != "exec" || v.Token != "exec" || v.File != "agent.py" {
		t.Fatalf("unexpected violation: %+v", v)
	}
	if !strings.Contains(ob.Formula, `(assert (= token_0 "exec"))`) {
		t.Fatalf("formula must bind the matched token:\n%s", ob.Formula)
	}
	if !strings.Contains(ob.Formula, `(assert (= file_0 "agent.py"))`) {
		t.Fatalf("formula must bind the file:\n%s", ob.Formula)
	}
}

func TestCompileDeterministic(t *testing.T) {
	c := NewCompiler()
	a := c.Compile(forbiddenDiff)
	b := c.Compile(forbiddenDiff)
	if a.Formula != b.Formula {
		t.Fatal("structurally identical diffs must compile to byte-identical formulas")
	}
}

func TestCompileMatchingRenameIsSafe(t *testing.T) {
	c := NewCompiler()
	ob := c.Compile(`diff --git a/m.py b/m.py
--- a/m.py
+++ b/m.py
@@ -1,1 +1,1 @@
-def calculate_sum(a, b):
+def compute_sum(a, b):
`)
	if !ob.Safe() {
		t.Fatalf("signature-preserving rename must be safe: %+v", ob)
	}
	if ob.Renames["calculate_sum"] != "compute_sum" {
		t.Fatalf("rename mapping missing: %v", ob.Renames)
	}
}

func TestCompileArityChangedRenameIsMismatch(t *testing.T) {
	c := NewCompiler()
	ob := c.Compile(`diff --git a/m.py b/m.py
--- a/m.py
+++ b/m.py
@@ -1,1 +1,1 @@
-def calculate_sum(a, b):
+def compute_sum(a):
`)
	if ob.Safe() {
		t.Fatal("arity change must be a mismatch")
	}
	if len(ob.Mismatches) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(ob.Mismatches))
	}
	m := ob.Mismatches[0]
	if m.OldName != "calculate_sum" || m.NewName != "compute_sum" {
		t.Fatalf("unexpected mismatch: %+v", m)
	}
	if !strings.Contains(ob.Formula, "rename_0_calculate_sum") {
		t.Fatalf("formula must name the mismatched function:\n%s", ob.Formula)
	}
}

func TestPolicyPatternsUnionedWithDefaults(t *testing.T) {
	c, err := NewCompilerWithPolicy([]string{`\bpickle\b`})
	if err != nil {
		t.Fatalf("merge policy: %v", err)
	}
	if len(c.Patterns()) != len(DefaultPatterns())+1 {
		t.Fatalf("policy pattern not unioned: %d patterns", len(c.Patterns()))
	}

	ob := c.Compile(`diff --git a/m.py b/m.py
--- a/m.py
+++ b/m.py
@@ -1,1 +1,2 @@
 x = 1
+import pickle
`)
	if ob.Safe() {
		t.Fatal("policy pattern must be enforced")
	}
	// Defaults still active alongside policy additions.
	ob2 := c.Compile(forbiddenDiff)
	if ob2.Safe() {
		t.Fatal("defaults must survive policy merge")
	}
}

func TestPolicyPatternRejectsBadRegex(t *testing.T) {
	if _, err := NewCompilerWithPolicy([]string{"("}); err == nil {
		t.Fatal("expected invalid regex to be rejected")
	}
}

func TestRiskScore(t *testing.T) {
	c := NewCompiler()
	if got := c.RiskScore(""); got != 0 {
		t.Fatalf("empty diff risk = %v, want 0", got)
	}
	clean := c.RiskScore(`diff --git a/m.py b/m.py
--- a/m.py
+++ b/m.py
@@ -1,1 +1,1 @@
-x = 1
+x = 2
`)
	dangerous := c.RiskScore(forbiddenDiff)
	if dangerous <= clean {
		t.Fatalf("forbidden diff must score higher: %v <= %v", dangerous, clean)
	}
	if dangerous > 1 {
		t.Fatalf("risk score must be clamped to 1, got %v", dangerous)
	}
}

func TestAnalyzeContext(t *testing.T) {
	c := NewCompiler()
	ctx := c.Analyze(forbiddenDiff)
	if ctx.FileCount != 1 || ctx.AddedLines != 1 {
		t.Fatalf("unexpected context: %+v", ctx)
	}
	if len(ctx.Violations) != 1 || ctx.Violations[0].Token != "exec" {
		t.Fatalf("violations not summarized: %+v", ctx.Violations)
	}
}
