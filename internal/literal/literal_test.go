package literal

import "testing"

func TestStringify(t *testing.T) {
	if got := Stringify("hello"); got != `"hello"` {
		t.Errorf("Stringify(hello) = %q", got)
	}
	if got := Stringify(`"hello"`); got != `"hello"` {
		t.Errorf("Stringify should be idempotent on already-quoted input, got %q", got)
	}
}

func TestUnstringify(t *testing.T) {
	if got := Unstringify(`"hello"`); got != "hello" {
		t.Errorf("Unstringify = %q", got)
	}
	if got := Unstringify("hello"); got != "hello" {
		t.Errorf("Unstringify on bare symbol should pass through, got %q", got)
	}
}

func TestIsSymbol(t *testing.T) {
	cases := map[string]bool{
		"Hans":        true,
		`"Hans"`:      false,
		"'Hans'@de":   false,
		"^2020-10-30": false,
		"@47.1/8.5":   false,
		"10.5":        false,
	}
	for v, want := range cases {
		if got := IsSymbol(v); got != want {
			t.Errorf("IsSymbol(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestRegexFullMatch(t *testing.T) {
	if !Regex("Otto", `.*(.)\1.*`) {
		t.Error("expected doubled-character pattern to match Otto")
	}
	if Regex("Hans", `.*(.)\1.*`) {
		t.Error("did not expect doubled-character pattern to match Hans")
	}
	if Regex("xHansy", "Hans") {
		t.Error("kgtk_regex must require a full match, not a substring search")
	}
}
