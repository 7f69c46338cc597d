package diffc

import (
	"fmt"
	"regexp"
)

// #region pattern
// Pattern is a named forbidden-call pattern. The name keys assertions in
// the compiled formula and appears in counterexamples, so it must be a
// valid SMT-LIB2 symbol fragment (lowercase + underscores).
type Pattern struct {
	Name  string
	Regex *regexp.Regexp
}

// #endregion pattern

// #region defaults
// defaultPatterns covers subprocess invocation, OS-level system calls,
// dynamic evaluation, wildcard and dynamic imports, and namespace
// manipulation. Regex matching is a deny-list heuristic, not semantic
// analysis; it bounds what the gate can prove absent.
var defaultPatterns = []Pattern{
	{Name: "subprocess", Regex: regexp.MustCompile(`\bsubprocess\b`)},
	{Name: "os_system", Regex: regexp.MustCompile(`\bos\.system\b`)},
	{Name: "eval", Regex: regexp.MustCompile(`\beval\b`)},
	{Name: "exec", Regex: regexp.MustCompile(`\bexec\b`)},
	{Name: "wildcard_import", Regex: regexp.MustCompile(`\bimport\s+\*`)},
	{Name: "dynamic_import", Regex: regexp.MustCompile(`\b__import__\b`)},
	{Name: "globals", Regex: regexp.MustCompile(`\bglobals\b`)},
	{Name: "locals", Regex: regexp.MustCompile(`\blocals\b`)},
}

// DefaultPatterns returns a copy of the built-in forbidden pattern set.
func DefaultPatterns() []Pattern {
	out := make([]Pattern, len(defaultPatterns))
	copy(out, defaultPatterns)
	return out
}

// #endregion defaults

// #region merge
// MergePolicyPatterns unions policy-supplied raw regexes with the default
// set. Defaults are never replaced; duplicates (by source) are dropped.
// Policy patterns get generated names policy_0, policy_1, ... in input
// order so compilation stays deterministic.
func MergePolicyPatterns(policy []string) ([]Pattern, error) {
	merged := DefaultPatterns()
	seen := make(map[string]struct{}, len(merged))
	for _, p := range merged {
		seen[p.Regex.String()] = struct{}{}
	}
	for i, raw := range policy {
		if _, dup := seen[raw]; dup {
			continue
		}
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("policy pattern %q: %w", raw, err)
		}
		merged = append(merged, Pattern{Name: fmt.Sprintf("policy_%d", i), Regex: re})
		seen[raw] = struct{}{}
	}
	return merged, nil
}

// #endregion merge
