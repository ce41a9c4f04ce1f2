package lexer

import (
	"testing"

	"github.com/termfx/kyquery/internal/kyparser/token"
)

func TestNextTokenBasicChain(t *testing.T) {
	input := `(i)-[:loves]->(c)`

	want := []token.Type{
		token.LPAREN, token.IDENT, token.RPAREN,
		token.DASH, token.LBRACKET, token.COLON, token.IDENT, token.RBRACKET, token.ARROW_R,
		token.LPAREN, token.IDENT, token.RPAREN,
		token.EOF,
	}

	l := New(input)
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("token %d: got %v, want %v (literal %q)", i, tok.Type, wt, tok.Literal)
		}
	}
}

func TestNextTokenLiterals(t *testing.T) {
	input := `$x "hello" 'Hans'@de ^2020-10-30T02:03:57+10:30/9 @47.1/8.5 =~`

	toks := Tokenize(input)
	types := make([]token.Type, 0, len(toks))
	for _, tk := range toks {
		types = append(types, tk.Type)
	}

	want := []token.Type{
		token.PARAM, token.STRING, token.LQSTRING, token.DATE, token.GEO, token.REGEX, token.EOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(types), types, len(want))
	}
	for i, wt := range want {
		if types[i] != wt {
			t.Errorf("token %d: got %v, want %v", i, types[i], wt)
		}
	}

	if toks[1].Literal != `"hello"` {
		t.Errorf("string literal = %q", toks[1].Literal)
	}
	if toks[2].Literal != "'Hans'@de" {
		t.Errorf("lqstring literal = %q", toks[2].Literal)
	}
}

func TestNextTokenKeywordsCaseInsensitive(t *testing.T) {
	toks := Tokenize("match where return order by")
	want := []token.Type{token.MATCH, token.WHERE, token.RETURN, token.ORDER, token.BY, token.EOF}
	for i, wt := range want {
		if toks[i].Type != wt {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, wt)
		}
	}
}
