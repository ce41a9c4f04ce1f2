// Package tabular implements the tab-delimited row format used for both
// graph cache input and query output: Unix line endings, no quoting, and
// backslash-escaping of any byte that would otherwise be ambiguous with the
// format's own delimiters.
package tabular

import "strings"

var escapeReplacer = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

var unescapeReplacer = strings.NewReplacer(
	`\\`, `\`,
	`\t`, "\t",
	`\n`, "\n",
	`\r`, "\r",
)

// EscapeValue backslash-escapes tab, newline, carriage-return, and
// backslash so the value cannot be mistaken for a field or row boundary.
func EscapeValue(v string) string {
	if strings.IndexAny(v, "\t\n\r\\") < 0 {
		return v
	}
	return escapeReplacer.Replace(v)
}

// UnescapeValue reverses EscapeValue.
func UnescapeValue(v string) string {
	if strings.IndexByte(v, '\\') < 0 {
		return v
	}
	return unescapeReplacer.Replace(v)
}
