package lexer

import "testing"

func tokenTypes(src string) []TokenType {
	l := New(src)
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			return types
		}
	}
}

func TestBasicTokens(t *testing.T) {
	got := tokenTypes(`(+ 5 6)`)
	want := []TokenType{LPAREN, ATOM, ATOM, ATOM, RPAREN, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQuoteAndDottedPair(t *testing.T) {
	l := New(`'(a . b)`)
	expect := []TokenType{QUOTE, LPAREN, ATOM, DOT, ATOM, RPAREN, EOF}
	for i, want := range expect {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestEllipsisIsAnAtomNotADot(t *testing.T) {
	l := New(`...`)
	tok := l.NextToken()
	if tok.Type != ATOM || tok.Literal != "..." {
		t.Fatalf("got %+v", tok)
	}
}

func TestStringLiteralNoEscapes(t *testing.T) {
	l := New(`"hello \n world"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("got %+v", tok)
	}
	if tok.Literal != `hello \n world` {
		t.Fatalf("expected literal backslash-n to pass through unescaped, got %q", tok.Literal)
	}
}

func TestUnterminatedStringIsIllegal(t *testing.T) {
	l := New(`"oops`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %+v", tok)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	got := tokenTypes("; comment\n(foo) ; trailing\n")
	want := []TokenType{LPAREN, ATOM, RPAREN, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPositionsAreOneBasedRuneCounts(t *testing.T) {
	l := New("(+ 1 2)")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("expected first token at 1:1, got %+v", tok.Pos)
	}
}
