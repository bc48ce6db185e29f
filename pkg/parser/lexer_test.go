package parser

import "testing"

func TestNextToken(t *testing.T) {
	input := `local n := 10;
# a comment to skip
if n >= 2 then "ok" else 'x';
fun(a, rest...) { a != nil }
`
	want := []Token{
		{Type: LOCAL, Literal: "local"},
		{Type: IDENT, Literal: "n"},
		{Type: ASSIGN, Literal: ":="},
		{Type: NUMBER, Literal: "10"},
		{Type: SEMI, Literal: ";"},
		{Type: IF, Literal: "if"},
		{Type: IDENT, Literal: "n"},
		{Type: GE, Literal: ">="},
		{Type: NUMBER, Literal: "2"},
		{Type: THEN, Literal: "then"},
		{Type: STRING, Literal: "ok"},
		{Type: ELSE, Literal: "else"},
		{Type: CHAR, Literal: "x"},
		{Type: SEMI, Literal: ";"},
		{Type: FUN, Literal: "fun"},
		{Type: LPAREN, Literal: "("},
		{Type: IDENT, Literal: "a"},
		{Type: COMMA, Literal: ","},
		{Type: IDENT, Literal: "rest"},
		{Type: ELLIPSIS, Literal: "..."},
		{Type: RPAREN, Literal: ")"},
		{Type: LBRACE, Literal: "{"},
		{Type: IDENT, Literal: "a"},
		{Type: NE, Literal: "!="},
		{Type: IDENT, Literal: "nil"},
		{Type: RBRACE, Literal: "}"},
		{Type: EOF},
	}

	lex := NewLexer(input)
	for i, exp := range want {
		tok := lex.NextToken()
		if tok.Type != exp.Type {
			t.Fatalf("token %d: type %q, want %q (literal %q)", i, tok.Type, exp.Type, tok.Literal)
		}
		if tok.Literal != exp.Literal {
			t.Fatalf("token %d: literal %q, want %q", i, tok.Literal, exp.Literal)
		}
	}
}

func TestWordOperatorsLexAsIdentifiers(t *testing.T) {
	lex := NewLexer("a AND NOT b")
	for _, wantLit := range []string{"a", "AND", "NOT", "b"} {
		tok := lex.NextToken()
		if tok.Type != IDENT || tok.Literal != wantLit {
			t.Fatalf("got %q %q, want IDENT %q", tok.Type, tok.Literal, wantLit)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	lex := NewLexer(`"a\tb\n\"q\""`)
	tok := lex.NextToken()
	if tok.Type != STRING || tok.Literal != "a\tb\n\"q\"" {
		t.Fatalf("got %q %q", tok.Type, tok.Literal)
	}
}

func TestCharLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`'a'`, "a"},
		{`'\n'`, "\n"},
		{`'é'`, "é"},
	}
	for _, tc := range cases {
		tok := NewLexer(tc.src).NextToken()
		if tok.Type != CHAR || tok.Literal != tc.want {
			t.Errorf("%s: got %q %q, want CHAR %q", tc.src, tok.Type, tok.Literal, tc.want)
		}
	}

	if tok := NewLexer("'ab'").NextToken(); tok.Type != ILLEGAL {
		t.Errorf("multi-rune char literal must be illegal, got %q %q", tok.Type, tok.Literal)
	}
}

func TestNumbers(t *testing.T) {
	lex := NewLexer("3 2.5 10.")
	for _, want := range []string{"3", "2.5", "10"} {
		tok := lex.NextToken()
		if tok.Type != NUMBER || tok.Literal != want {
			t.Fatalf("got %q %q, want NUMBER %q", tok.Type, tok.Literal, want)
		}
	}
	// The trailing dot is a separate token.
	if tok := lex.NextToken(); tok.Type != DOT {
		t.Fatalf("expected DOT, got %q", tok.Type)
	}
}

func TestPositions(t *testing.T) {
	lex := NewLexer("a\n  b")
	first := lex.NextToken()
	second := lex.NextToken()
	if first.Line != 1 || first.Col != 1 {
		t.Fatalf("first token at %d:%d", first.Line, first.Col)
	}
	if second.Line != 2 || second.Col != 3 {
		t.Fatalf("second token at %d:%d", second.Line, second.Col)
	}
}

func TestUnterminatedString(t *testing.T) {
	if tok := NewLexer(`"abc`).NextToken(); tok.Type != ILLEGAL {
		t.Fatalf("unterminated string must be illegal, got %q", tok.Type)
	}
}

func TestLoneBangAndColonAreIllegal(t *testing.T) {
	for _, src := range []string{"!", ":"} {
		if tok := NewLexer(src).NextToken(); tok.Type != ILLEGAL {
			t.Errorf("%q must be illegal, got %q", src, tok.Type)
		}
	}
}
