package literal

import (
	"regexp"
	"strconv"
)

// dateRe matches a relaxed KGTK date/time literal:
// ^YYYY(-MM(-DD)?)?(THH(:MM(:SS)?)?)?(Z|[+-]HH:MM)?(/precision)?
var dateRe = regexp.MustCompile(
	`^\^(?P<date>(?P<year>-?\d{1,4})(-(?P<month>\d{2})(-(?P<day>\d{2}))?)?)` +
		`(T(?P<time>(?P<hour>\d{2})(:(?P<minutes>\d{2})(:(?P<seconds>\d{2}(\.\d+)?))?)?)?` +
		`(?P<zone>Z|[+-]\d{2}:?\d{2})?` +
		`(/(?P<precision>\d{1,2}))?$`,
)

// IsDate reports whether v is a KGTK date/time literal: begins with '^'.
func IsDate(v string) bool {
	return len(v) > 0 && v[0] == '^'
}

func matchDate(v string) []string {
	if !IsDate(v) {
		return nil
	}
	m := dateRe.FindStringSubmatch(v)
	if m == nil {
		return nil
	}
	return m
}

func dateGroup(m []string, name string) string {
	return m[dateRe.SubexpIndex(name)]
}

// DateDate returns just the date portion, re-wrapped with the '^' prefix.
func DateDate(v string) (string, bool) {
	m := matchDate(v)
	if m == nil {
		return "", false
	}
	return "^" + dateGroup(m, "date"), true
}

// DateTime returns just the time-of-day portion, re-wrapped with '^'.
func DateTime(v string) (string, bool) {
	m := matchDate(v)
	if m == nil || dateGroup(m, "time") == "" {
		return "", false
	}
	return "^" + dateGroup(m, "time"), true
}

// DateAndTime returns the date and time-of-day concatenated, re-wrapped
// with '^' (no zone or precision suffix).
func DateAndTime(v string) (string, bool) {
	m := matchDate(v)
	if m == nil {
		return "", false
	}
	s := "^" + dateGroup(m, "date")
	if t := dateGroup(m, "time"); t != "" {
		s += "T" + t
	}
	return s, true
}

func dateIntGroup(v, name string) (int64, bool) {
	m := matchDate(v)
	if m == nil {
		return 0, false
	}
	s := dateGroup(m, name)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func DateYear(v string) (int64, bool)    { return dateIntGroup(v, "year") }
func DateMonth(v string) (int64, bool)   { return dateIntGroup(v, "month") }
func DateDay(v string) (int64, bool)     { return dateIntGroup(v, "day") }
func DateHour(v string) (int64, bool)    { return dateIntGroup(v, "hour") }
func DateMinutes(v string) (int64, bool) { return dateIntGroup(v, "minutes") }

// DateSeconds parses the seconds group as a float, since it may carry a
// fractional component.
func DateSeconds(v string) (float64, bool) {
	m := matchDate(v)
	if m == nil {
		return 0, false
	}
	s := dateGroup(m, "seconds")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// DateZone returns the zone component wrapped as a KGTK string literal.
func DateZone(v string) (string, bool) {
	m := matchDate(v)
	if m == nil {
		return "", false
	}
	z := dateGroup(m, "zone")
	if z == "" {
		return "", false
	}
	return Stringify(z), true
}

// DatePrecision returns the declared /precision suffix, 0-14.
func DatePrecision(v string) (int64, bool) {
	p, ok := dateIntGroup(v, "precision")
	if !ok || p > 14 {
		return 0, false
	}
	return p, true
}
