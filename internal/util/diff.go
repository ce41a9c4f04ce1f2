// Package util holds small helpers: unified-diff rendering and SHA-1
// content hashing (stored by the graph cache as a diagnostic field).
package util

import "github.com/pmezard/go-difflib/difflib"

// UnifiedDiff renders a unified diff between orig and mod, showing exactly
// which lines diverged. Only its own test calls it.
func UnifiedDiff(orig, mod, filename string, context int) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(orig),
		B:        difflib.SplitLines(mod),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  context,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	return text
}
