// Package literal implements the KGTK Literal Layer: predicates and
// accessors over the domain's textual literal syntax (symbols, strings,
// language-qualified strings, dates, quantities, geo-coordinates), exposed
// as deterministic scalar SQL functions.
//
// Every accessor returns nil on malformed input rather than erroring, so
// WHERE clauses built on top of them degrade to false instead of aborting
// the query.
package literal

import "strings"

// IsString reports whether v is a KGTK plain string literal: begins and
// ends with a double quote.
func IsString(v string) bool {
	return len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`)
}

// Stringify wraps an unquoted value in double quotes. Already-quoted values
// pass through unchanged.
func Stringify(v string) string {
	if IsString(v) {
		return v
	}
	return `"` + v + `"`
}

// Unstringify strips the surrounding double quotes from a string literal.
// Values that are not quoted pass through unchanged.
func Unstringify(v string) string {
	if IsString(v) {
		return v[1 : len(v)-1]
	}
	return v
}

// IsSymbol reports whether v matches none of the other literal shapes: not
// a string, language-qualified string, date, or quantity, and not a
// geo-coordinate.
func IsSymbol(v string) bool {
	return !IsString(v) && !IsLangQualifiedString(v) && !IsDate(v) && !IsGeo(v) && !IsQuantity(v)
}
