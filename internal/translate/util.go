package translate

import "strings"

// quoteIdent wraps name as a SQLite double-quoted identifier, doubling any
// embedded double quotes. Used for table aliases and column names,
// including non-identifier KGTK property columns like `node1;salary`.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqlQuoteString renders s as a single-quoted SQL string literal.
func sqlQuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
