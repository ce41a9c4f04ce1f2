package cache

import "strings"

// quoteIdent renders name as a SQLite double-quoted identifier, so header
// columns that aren't valid bare identifiers (e.g. `node1;salary`) can
// still become real column names.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
