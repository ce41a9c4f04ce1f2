package literal

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dlclark/regexp2"
)

// regexCacheSize mirrors the Python driver's lru_cache(maxsize=100) around
// its compiled-pattern helper.
const regexCacheSize = 100

var compiledPatterns *lru.Cache[string, *regexp2.Regexp]

func init() {
	c, err := lru.New[string, *regexp2.Regexp](regexCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, which regexCacheSize is not
	}
	compiledPatterns = c
}

func getPattern(pattern string) (*regexp2.Regexp, error) {
	if re, ok := compiledPatterns.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	compiledPatterns.Add(pattern, re)
	return re, nil
}

// Regex implements Cypher `=~` full-match semantics: the pattern must match
// the entire string, not merely a prefix or substring. Kypher patterns may
// use backreferences (e.g. `.*(.)\1.*` for "contains a doubled character"),
// which Go's RE2-based stdlib regexp cannot express, hence regexp2 here.
func Regex(value, pattern string) bool {
	re, err := getPattern(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return false
	}
	ok, err := re.MatchString(value)
	return err == nil && ok
}
