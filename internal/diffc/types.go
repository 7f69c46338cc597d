package diffc

// #region diff-line
// DiffLine is a single classified line from a unified diff.
type DiffLine struct {
	Op      byte // '+', '-' or ' '
	Content string
	File    string
	Hunk    int // 1-based hunk index within the diff
	OldLine int // line number in the old file, 0 when added
	NewLine int // line number in the new file, 0 when removed
}

// #endregion diff-line

// #region signature
// Signature is a parsed function signature used for rename equivalence.
type Signature struct {
	Name    string
	Args    []string // ordered argument names, annotations stripped
	Returns string   // return annotation, empty when absent
}

// Equal reports whether two signatures declare the same ordered argument
// list and return annotation. Names are compared by the caller.
func (s Signature) Equal(other Signature) bool {
	if len(s.Args) != len(other.Args) || s.Returns != other.Returns {
		return false
	}
	for i := range s.Args {
		if s.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// #endregion signature

// #region diff-ast
// DiffAST is the structured form of one unified diff. Built once per diff
// and not mutated afterwards.
type DiffAST struct {
	AddedLines    []DiffLine
	RemovedLines  []DiffLine
	ModifiedFiles map[string]struct{}
	Renames       map[string]string    // old function name -> new function name
	Signatures    map[string]Signature // "+name" / "-name" -> signature
}

// #endregion diff-ast

// #region violations
// PatternViolation is an added line matching a forbidden pattern.
type PatternViolation struct {
	Pattern string // pattern name, e.g. "exec"
	Token   string // matched token text
	Line    string // full line content
	File    string
	LineNum int
}

// RenameMismatch is a detected rename whose signatures differ.
type RenameMismatch struct {
	OldName string
	NewName string
	OldSig  Signature
	NewSig  Signature
}

// #endregion violations

// #region obligation
// Obligation is a compiled safety obligation: the negation-of-safety
// formula in SMT-LIB2 text plus the structural findings it encodes.
// Structurally identical diffs under the same pattern set compile to
// byte-identical formulas; the proof cache depends on that.
type Obligation struct {
	Formula    string
	Violations []PatternViolation
	Mismatches []RenameMismatch
	Renames    map[string]string
}

// Safe reports whether the obligation carries no structural findings, i.e.
// the negation-of-safety formula is unsatisfiable.
func (o Obligation) Safe() bool {
	return len(o.Violations) == 0 && len(o.Mismatches) == 0
}

// #endregion obligation

// #region context
// Context is a structured summary of a diff for operator inspection.
type Context struct {
	FileCount    int               `json:"file_count"`
	AddedLines   int               `json:"added_lines"`
	RemovedLines int               `json:"removed_lines"`
	RiskScore    float64           `json:"risk_score"`
	Violations   []ContextHit      `json:"violations"`
	Renames      map[string]string `json:"renames"`
	Files        []string          `json:"files"`
}

// ContextHit is one forbidden-pattern hit in a context summary.
type ContextHit struct {
	Pattern string `json:"pattern"`
	Token   string `json:"token"`
	File    string `json:"file"`
	Line    int    `json:"line"`
}

// #endregion context
