package diffc

import (
	"fmt"
	"sort"
	"strings"
)

// #region compiler
// Compiler turns unified diff text into a safety Obligation. The emitted
// formula is the negation of safety: unsatisfiable when the diff is clean,
// satisfiable (with a model naming the offending file and token) when it
// is not.
type Compiler struct {
	patterns []Pattern
}

// NewCompiler creates a compiler over the default forbidden pattern set.
func NewCompiler() *Compiler {
	return &Compiler{patterns: DefaultPatterns()}
}

// NewCompilerWithPolicy creates a compiler whose pattern set is the union
// of the defaults and the policy-supplied regexes.
func NewCompilerWithPolicy(policy []string) (*Compiler, error) {
	patterns, err := MergePolicyPatterns(policy)
	if err != nil {
		return nil, err
	}
	return &Compiler{patterns: patterns}, nil
}

// Patterns returns the active pattern set.
func (c *Compiler) Patterns() []Pattern {
	return c.patterns
}

// #endregion compiler

// #region compile
// Compile parses the diff and emits its safety obligation.
func (c *Compiler) Compile(diffText string) Obligation {
	ast := Parse(diffText)
	return c.CompileAST(ast)
}

// CompileAST emits the safety obligation for an already-parsed diff.
func (c *Compiler) CompileAST(ast DiffAST) Obligation {
	ob := Obligation{Renames: ast.Renames}

	for _, line := range ast.AddedLines {
		for _, p := range c.patterns {
			if token := p.Regex.FindString(line.Content); token != "" {
				ob.Violations = append(ob.Violations, PatternViolation{
					Pattern: p.Name,
					Token:   strings.TrimSpace(token),
					Line:    line.Content,
					File:    line.File,
					LineNum: line.NewLine,
				})
			}
		}
	}

	oldNames := make([]string, 0, len(ast.Renames))
	for oldName := range ast.Renames {
		oldNames = append(oldNames, oldName)
	}
	sort.Strings(oldNames)
	for _, oldName := range oldNames {
		newName := ast.Renames[oldName]
		oldSig, okOld := ast.Signatures["-"+oldName]
		newSig, okNew := ast.Signatures["+"+newName]
		if okOld && okNew && !oldSig.Equal(newSig) {
			ob.Mismatches = append(ob.Mismatches, RenameMismatch{
				OldName: oldName,
				NewName: newName,
				OldSig:  oldSig,
				NewSig:  newSig,
			})
		}
	}

	ob.Formula = buildFormula(ob)
	return ob
}

// #endregion compile

// #region formula
// buildFormula renders the negation-of-safety obligation as SMT-LIB2 text.
// Findings are emitted in a fixed order so structurally identical diffs
// produce byte-identical formulas.
func buildFormula(ob Obligation) string {
	var b strings.Builder
	b.WriteString("(set-option :produce-models true)\n")

	if ob.Safe() {
		// No unsafe instantiation exists: the negation of safety is
		// unsatisfiable by construction.
		b.WriteString("(assert false)\n(check-sat)\n")
		return b.String()
	}

	for i, v := range ob.Violations {
		fmt.Fprintf(&b, "(declare-const violation_%d_%s Bool)\n", i, v.Pattern)
		fmt.Fprintf(&b, "(declare-const file_%d String)\n", i)
		fmt.Fprintf(&b, "(declare-const token_%d String)\n", i)
		fmt.Fprintf(&b, "(assert violation_%d_%s)\n", i, v.Pattern)
		fmt.Fprintf(&b, "(assert (= file_%d %s))\n", i, smtString(v.File))
		fmt.Fprintf(&b, "(assert (= token_%d %s))\n", i, smtString(v.Token))
	}
	for i, m := range ob.Mismatches {
		fmt.Fprintf(&b, "(declare-const rename_%d_%s Bool)\n", i, m.OldName)
		fmt.Fprintf(&b, "(declare-const old_sig_%d String)\n", i)
		fmt.Fprintf(&b, "(declare-const new_sig_%d String)\n", i)
		fmt.Fprintf(&b, "(assert rename_%d_%s)\n", i, m.OldName)
		fmt.Fprintf(&b, "(assert (= old_sig_%d %s))\n", i, smtString(m.OldSig.Render(m.OldName)))
		fmt.Fprintf(&b, "(assert (= new_sig_%d %s))\n", i, smtString(m.NewSig.Render(m.NewName)))
		fmt.Fprintf(&b, "(assert (not (= old_sig_%d new_sig_%d)))\n", i, i)
	}
	b.WriteString("(check-sat)\n(get-model)\n")
	return b.String()
}

// Render formats a signature as name(arg, ...) -> ret for counterexamples.
func (s Signature) Render(name string) string {
	out := name + "(" + strings.Join(s.Args, ", ") + ")"
	if s.Returns != "" {
		out += " -> " + s.Returns
	}
	return out
}

// smtString quotes a Go string as an SMT-LIB2 string literal. Embedded
// double quotes are doubled per the SMT-LIB standard.
func smtString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// #endregion formula

// #region risk
// RiskScore computes a 0-1 heuristic risk score for a diff: file and line
// volume, forbidden hits, and renames all raise it. Advisory only; the
// proof gate is the deciding check.
func (c *Compiler) RiskScore(diffText string) float64 {
	if strings.TrimSpace(diffText) == "" {
		return 0
	}
	ast := Parse(diffText)
	ob := c.CompileAST(ast)

	score := float64(len(ast.ModifiedFiles))*0.1 +
		float64(len(ast.AddedLines))*0.01 +
		float64(len(ast.RemovedLines))*0.005 +
		float64(len(ast.Renames))*0.2
	if len(ob.Violations) > 0 {
		score += 0.8
	}
	if len(ob.Mismatches) > 0 {
		score += 0.6
	}
	if score > 1 {
		score = 1
	}
	return score
}

// #endregion risk

// #region context
// Analyze summarizes a diff for operator inspection.
func (c *Compiler) Analyze(diffText string) Context {
	ast := Parse(diffText)
	ob := c.CompileAST(ast)

	files := make([]string, 0, len(ast.ModifiedFiles))
	for f := range ast.ModifiedFiles {
		files = append(files, f)
	}
	sort.Strings(files)

	hits := make([]ContextHit, 0, len(ob.Violations))
	for _, v := range ob.Violations {
		hits = append(hits, ContextHit{
			Pattern: v.Pattern,
			Token:   v.Token,
			File:    v.File,
			Line:    v.LineNum,
		})
	}

	return Context{
		FileCount:    len(ast.ModifiedFiles),
		AddedLines:   len(ast.AddedLines),
		RemovedLines: len(ast.RemovedLines),
		RiskScore:    c.RiskScore(diffText),
		Violations:   hits,
		Renames:      ast.Renames,
		Files:        files,
	}
}

// #endregion context
