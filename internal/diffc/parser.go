package diffc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// #region regexes
var (
	defPattern  = regexp.MustCompile(`^\s*def\s+(\w+)\s*\(([^)]*)\)(?:\s*->\s*([^:]+))?\s*:`)
	hunkPattern = regexp.MustCompile(`^@@\s+-(\d+)(?:,\d+)?\s+\+(\d+)(?:,\d+)?\s+@@`)
)

// #endregion regexes

// #region parse
// Parse builds a DiffAST from unified diff text. Lines are only classified
// inside `@@` hunks, so a diff with malformed or missing hunk headers
// parses to an AST with empty line sets (downstream this compiles to a
// vacuously safe formula) rather than failing the pipeline.
func Parse(diffText string) DiffAST {
	ast := DiffAST{
		ModifiedFiles: make(map[string]struct{}),
		Renames:       make(map[string]string),
		Signatures:    make(map[string]Signature),
	}
	if strings.TrimSpace(diffText) == "" {
		return ast
	}

	var (
		currentFile string
		hunk        int
		oldLine     int
		newLine     int
		inHunk      bool
	)

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			inHunk = false
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				currentFile = strings.TrimPrefix(parts[3], "b/")
				ast.ModifiedFiles[currentFile] = struct{}{}
			}
		case strings.HasPrefix(line, "+++ ") || strings.HasPrefix(line, "--- "):
			// File markers carry no classified content.
		case strings.HasPrefix(line, "@@"):
			m := hunkPattern.FindStringSubmatch(line)
			if m == nil {
				inHunk = false
				continue
			}
			hunk++
			oldLine, _ = strconv.Atoi(m[1])
			newLine, _ = strconv.Atoi(m[2])
			inHunk = true
		case inHunk && strings.HasPrefix(line, "+"):
			content := line[1:]
			ast.AddedLines = append(ast.AddedLines, DiffLine{
				Op: '+', Content: content, File: currentFile, Hunk: hunk, NewLine: newLine,
			})
			if sig, ok := parseSignature(content); ok {
				ast.Signatures["+"+sig.Name] = sig
			}
			newLine++
		case inHunk && strings.HasPrefix(line, "-"):
			content := line[1:]
			ast.RemovedLines = append(ast.RemovedLines, DiffLine{
				Op: '-', Content: content, File: currentFile, Hunk: hunk, OldLine: oldLine,
			})
			if sig, ok := parseSignature(content); ok {
				ast.Signatures["-"+sig.Name] = sig
			}
			oldLine++
		case inHunk && strings.HasPrefix(line, " "):
			oldLine++
			newLine++
		}
	}

	detectRenames(&ast)
	return ast
}

// #endregion parse

// #region signatures
// parseSignature extracts a function signature from a def-like line.
func parseSignature(content string) (Signature, bool) {
	m := defPattern.FindStringSubmatch(content)
	if m == nil {
		return Signature{}, false
	}
	sig := Signature{Name: m[1], Returns: strings.TrimSpace(m[3])}
	for _, arg := range strings.Split(m[2], ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		// Strip type annotation and default value, keep the bare name.
		if idx := strings.IndexAny(arg, ":="); idx >= 0 {
			arg = strings.TrimSpace(arg[:idx])
		}
		sig.Args = append(sig.Args, arg)
	}
	return sig, true
}

// #endregion signatures

// #region renames
type defSite struct {
	sig  Signature
	hunk int
}

// detectRenames pairs removed defs against added defs within the same
// hunk. An exact argument-list-and-return match under a different name is
// a rename; a similarly-named pair with differing signatures is also
// recorded as a rename so the gate can flag the signature mismatch.
func detectRenames(ast *DiffAST) {
	removed := collectDefs(ast.RemovedLines)
	added := collectDefs(ast.AddedLines)

	oldNames := make([]string, 0, len(removed))
	for name := range removed {
		oldNames = append(oldNames, name)
	}
	sort.Strings(oldNames)

	usedNew := make(map[string]struct{})

	// First pass: exact signature matches under a different name.
	for _, oldName := range oldNames {
		site := removed[oldName]
		for _, newName := range sortedNames(added) {
			if newName == oldName {
				continue
			}
			if _, taken := usedNew[newName]; taken {
				continue
			}
			cand := added[newName]
			if cand.hunk == site.hunk && site.sig.Equal(cand.sig) {
				ast.Renames[oldName] = newName
				usedNew[newName] = struct{}{}
				break
			}
		}
	}

	// Second pass: similar names with differing signatures. These become
	// structural mismatches in the compiled obligation.
	for _, oldName := range oldNames {
		if _, done := ast.Renames[oldName]; done {
			continue
		}
		site := removed[oldName]
		for _, newName := range sortedNames(added) {
			if newName == oldName {
				continue
			}
			if _, taken := usedNew[newName]; taken {
				continue
			}
			cand := added[newName]
			if cand.hunk == site.hunk && namesSimilar(oldName, newName) {
				ast.Renames[oldName] = newName
				usedNew[newName] = struct{}{}
				break
			}
		}
	}
}

func collectDefs(lines []DiffLine) map[string]defSite {
	defs := make(map[string]defSite)
	for _, line := range lines {
		if sig, ok := parseSignature(line.Content); ok {
			if _, exists := defs[sig.Name]; !exists {
				defs[sig.Name] = defSite{sig: sig, hunk: line.Hunk}
			}
		}
	}
	return defs
}

func sortedNames(defs map[string]defSite) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// namesSimilar reports whether two function names share a prefix or suffix
// of at least three characters, the heuristic used to treat a
// removed/added def pair as a rename candidate.
func namesSimilar(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 3; i <= n; i++ {
		if a[:i] == b[:i] || a[len(a)-i:] == b[len(b)-i:] {
			return true
		}
	}
	return false
}

// #endregion renames
