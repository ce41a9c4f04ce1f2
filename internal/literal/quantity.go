package literal

import (
	"regexp"
	"strconv"
)

// quantityRe matches <sign?><mantissa>[E<exp>]?[tolerance]?[unit]? where
// tolerance is [+-lo,+-hi] and unit is SI letters or a Q-prefixed identifier.
var quantityRe = regexp.MustCompile(
	`^(?P<number>[+-]?\d+(\.\d+)?([eE][+-]?\d+)?)` +
		`(\[(?P<lowtol>[+-]?\d+(\.\d+)?),(?P<hightol>[+-]?\d+(\.\d+)?)\])?` +
		`(?P<unit>[a-zA-Z]+|Q\d+)?$`,
)

// IsQuantity reports whether v is a KGTK quantity literal.
func IsQuantity(v string) bool {
	if v == "" || IsString(v) || IsLangQualifiedString(v) || IsDate(v) || IsGeo(v) {
		return false
	}
	return quantityRe.MatchString(v)
}

func matchQuantity(v string) []string {
	if !IsQuantity(v) {
		return nil
	}
	return quantityRe.FindStringSubmatch(v)
}

// QuantityNumeral returns the literal numeral text (sign, mantissa,
// exponent) as written.
func QuantityNumeral(v string) (string, bool) {
	m := matchQuantity(v)
	if m == nil {
		return "", false
	}
	return m[quantityRe.SubexpIndex("number")], true
}

// QuantityNumber parses the numeral as a float.
func QuantityNumber(v string) (float64, bool) {
	s, ok := QuantityNumeral(v)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// QuantitySIUnits returns the bare SI unit suffix, if present and not a
// Wikidata Q-identifier.
func QuantitySIUnits(v string) (string, bool) {
	m := matchQuantity(v)
	if m == nil {
		return "", false
	}
	u := m[quantityRe.SubexpIndex("unit")]
	if u == "" || u[0] == 'Q' {
		return "", false
	}
	return u, true
}

// QuantityWDUnits returns the Q-prefixed Wikidata unit identifier, if
// present.
func QuantityWDUnits(v string) (string, bool) {
	m := matchQuantity(v)
	if m == nil {
		return "", false
	}
	u := m[quantityRe.SubexpIndex("unit")]
	if u == "" || u[0] != 'Q' {
		return "", false
	}
	return u, true
}

func quantityTolGroup(v, name string) (float64, bool) {
	m := matchQuantity(v)
	if m == nil {
		return 0, false
	}
	s := m[quantityRe.SubexpIndex(name)]
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// QuantityLowTolerance returns the lower tolerance bound, if declared.
func QuantityLowTolerance(v string) (float64, bool) { return quantityTolGroup(v, "lowtol") }

// QuantityHighTolerance returns the upper tolerance bound, if declared.
func QuantityHighTolerance(v string) (float64, bool) { return quantityTolGroup(v, "hightol") }
