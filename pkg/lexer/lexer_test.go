package lexer

import (
	"testing"

	"bearlangc/pkg/diag"
	"bearlangc/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.Kind) []token.Token {
	t.Helper()
	got, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("Tokenize(%q): got %d tokens %v, want %d tokens %v", src, len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Errorf("token %d: got %v, want %v (all: %v)", i, gk[i], want[i], gk)
		}
	}
	return got
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"целое", token.TInt},
		{"дробное", token.TDouble},
		{"строка", token.TString},
		{"логика", token.TBool},
		{"если", token.If},
		{"иначе", token.Else},
		{"пока", token.While},
		{"для", token.For},
		{"ввод", token.Input},
		{"вывод", token.Output},
		{"и", token.And},
		{"или", token.Or},
		{"не", token.Not},
		{"от", token.From},
		{"до", token.To},
		{"правда", token.True},
		{"ложь", token.False},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertKinds(t, tt.src, []token.Kind{tt.kind, token.EOF})
		})
	}
}

func TestIdentifier(t *testing.T) {
	assertKinds(t, "переменная", []token.Kind{token.Ident, token.EOF})
	assertKinds(t, "x1", []token.Kind{token.Ident, token.EOF})
	assertKinds(t, "_foo", []token.Kind{token.Ident, token.EOF})
}

func TestNumbers(t *testing.T) {
	toks := assertKinds(t, "42", []token.Kind{token.Int, token.EOF})
	if toks[0].Lexeme != "42" {
		t.Errorf("lexeme = %q, want 42", toks[0].Lexeme)
	}
	toks = assertKinds(t, "3.14", []token.Kind{token.Double, token.EOF})
	if toks[0].Lexeme != "3.14" {
		t.Errorf("lexeme = %q, want 3.14", toks[0].Lexeme)
	}
	// trailing dot not followed by a digit is not consumed into the number;
	// the lone '.' left behind is then an unknown character at column 2
	_, err := Tokenize("3.")
	if lexErr, ok := err.(*diag.LexError); !ok || lexErr.Column != 2 {
		t.Errorf("Tokenize(\"3.\") error = %v, want a LexError at column 2", err)
	}
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := assertKinds(t, `"a\nb\t\"\\c"`, []token.Kind{token.String, token.EOF})
	want := "a\nb\t\"\\c"
	if toks[0].Lexeme != want {
		t.Errorf("decoded = %q, want %q", toks[0].Lexeme, want)
	}
}

func TestStringUnterminated(t *testing.T) {
	if _, err := Tokenize(`"hello`); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestStringLiteralNewlineRejected(t *testing.T) {
	if _, err := Tokenize("\"a\nb\""); err == nil {
		t.Fatal("expected error for literal newline inside string")
	}
}

func TestStringUnknownEscape(t *testing.T) {
	if _, err := Tokenize(`"\q"`); err == nil {
		t.Fatal("expected error for unknown escape")
	}
}

func TestOperators(t *testing.T) {
	assertKinds(t, "+ - * / % ^ ( ) ,", []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Caret, token.LParen, token.RParen, token.Comma, token.EOF,
	})
	assertKinds(t, "= == < <= > >=", []token.Kind{
		token.Assign, token.Eq, token.Lt, token.Lte, token.Gt, token.Gte, token.EOF,
	})
}

func TestUnknownCharacter(t *testing.T) {
	if _, err := Tokenize("@"); err == nil {
		t.Fatal("expected error for unknown character")
	}
}

func TestComments(t *testing.T) {
	assertKinds(t, "// just a comment", []token.Kind{token.EOF})
	assertKinds(t, "целое x = 1 // trailing comment", []token.Kind{
		token.TInt, token.Ident, token.Assign, token.Int, token.EOF,
	})
}

func TestIndentationBasic(t *testing.T) {
	src := "если (x)\n    вывод x\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.Newline,
		token.Indent, token.Output, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
}

func TestIndentationDedentToZero(t *testing.T) {
	src := "если (x)\n    вывод x\nвывод y\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.Newline,
		token.Indent, token.Output, token.Ident, token.Newline,
		token.Dedent, token.Output, token.Ident, token.Newline,
		token.EOF,
	})
}

func TestBlankAndCommentLinesDoNotAffectIndent(t *testing.T) {
	src := "если (x)\n\n    // a comment\n    вывод x\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.Newline,
		token.Newline, token.Newline,
		token.Indent, token.Output, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
}

func TestInconsistentDedentIsError(t *testing.T) {
	src := "если (x)\n        вывод x\n   вывод y\n"
	if _, err := Tokenize(src); err == nil {
		t.Fatal("expected inconsistent-dedent error")
	}
}

func TestTabIndentWorthFourSpaces(t *testing.T) {
	src := "если (x)\n\tвывод x\n"
	assertKinds(t, src, []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.Newline,
		token.Indent, token.Output, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
}

func TestCyrillicIdentifierBytes(t *testing.T) {
	// "переменная" is a valid identifier distinct from any keyword.
	toks := assertKinds(t, "целое переменная = 1", []token.Kind{
		token.TInt, token.Ident, token.Assign, token.Int, token.EOF,
	})
	if toks[1].Lexeme != "переменная" {
		t.Errorf("lexeme = %q, want переменная", toks[1].Lexeme)
	}
}
