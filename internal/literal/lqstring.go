package literal

import "regexp"

// lqStringRe matches a KGTK language-qualified string: 'text'@lang[-suffix].
// The quoted text may contain escaped single quotes; lang is a bare
// identifier (letters, digits, hyphens are handled by splitting suffix
// separately so lang itself excludes '-').
var lqStringRe = regexp.MustCompile(`^'(?P<text>(?:[^'\\]|\\.)*)'@(?P<lang>[a-zA-Z]+)(?P<suffix>-[a-zA-Z0-9]+)?$`)

// IsLangQualifiedString reports whether v is a KGTK language-qualified
// string literal: begins with a single quote.
func IsLangQualifiedString(v string) bool {
	return len(v) > 0 && v[0] == '\''
}

func matchLQString(v string) []string {
	if !IsLangQualifiedString(v) {
		return nil
	}
	m := lqStringRe.FindStringSubmatch(v)
	if m == nil {
		return nil
	}
	return m
}

// LQStringText returns the quoted text portion as a KGTK string literal, or
// "" with ok=false if v does not match.
func LQStringText(v string) (string, bool) {
	m := matchLQString(v)
	if m == nil {
		return "", false
	}
	return Stringify(m[lqStringRe.SubexpIndex("text")]), true
}

// LQStringLang returns the bare language tag (e.g. "de").
func LQStringLang(v string) (string, bool) {
	m := matchLQString(v)
	if m == nil {
		return "", false
	}
	return m[lqStringRe.SubexpIndex("lang")], true
}

// LQStringSuffix returns the leading-hyphen region suffix (e.g. "-latn").
func LQStringSuffix(v string) (string, bool) {
	m := matchLQString(v)
	if m == nil {
		return "", false
	}
	suffix := m[lqStringRe.SubexpIndex("suffix")]
	if suffix == "" {
		return "", false
	}
	return suffix, true
}

// LQStringLangSuffix returns lang and suffix concatenated (e.g. "de-latn").
func LQStringLangSuffix(v string) (string, bool) {
	m := matchLQString(v)
	if m == nil {
		return "", false
	}
	return m[lqStringRe.SubexpIndex("lang")] + m[lqStringRe.SubexpIndex("suffix")], true
}
