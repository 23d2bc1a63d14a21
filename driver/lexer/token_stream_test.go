package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/nihei9/slrx/driver"
	"github.com/nihei9/slrx/grammar"
	"github.com/nihei9/slrx/grammar/lexical"
)

func exprLexSpec(ws string) *lexical.LexSpec {
	return &lexical.LexSpec{
		Name: "expr",
		Entries: []*lexical.LexEntry{
			newLexEntry("id", "[a-z_][a-z0-9_]*"),
			newLexEntry("num", "[0-9]+"),
			newLexEntry("add", `\+`),
			{
				Kind:    "ws",
				Pattern: ws,
				Skip:    true,
			},
		},
	}
}

func collect(t *testing.T, ts driver.TokenStream) ([]*driver.Token, error) {
	t.Helper()
	var toks []*driver.Token
	for {
		tok, err := ts.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.EOF() {
			return toks, nil
		}
	}
}

func TestTokenStream(t *testing.T) {
	clspec, err, _ := lexical.Compile(exprLexSpec("[\\ \\\t\\\n]+"))
	if err != nil {
		t.Fatal(err)
	}
	ts, err := NewTokenStream(clspec, strings.NewReader("x1+\n 42 +y"))
	if err != nil {
		t.Fatal(err)
	}
	toks, err := collect(t, ts)
	if err != nil {
		t.Fatal(err)
	}
	expected := []*driver.Token{
		{Label: "id", Text: "x1", Row: 1, Col: 1},
		{Label: "add", Text: "+", Row: 1, Col: 3},
		{Label: "num", Text: "42", Row: 2, Col: 2},
		{Label: "add", Text: "+", Row: 2, Col: 5},
		{Label: "id", Text: "y", Row: 2, Col: 6},
		{Label: grammar.SymbolEOF, Row: 2},
	}
	if len(toks) != len(expected) {
		t.Fatalf("unexpected tokens; want: %v, got: %v", expected, toks)
	}
	for i, eTok := range expected {
		if *toks[i] != *eTok {
			t.Fatalf("#%v: unexpected token; want: %+v, got: %+v", i, eTok, toks[i])
		}
	}
}

func TestTokenStream_InvalidToken(t *testing.T) {
	clspec, err, _ := lexical.Compile(exprLexSpec("\\ +"))
	if err != nil {
		t.Fatal(err)
	}
	ts, err := NewTokenStream(clspec, strings.NewReader("x $$ y"))
	if err != nil {
		t.Fatal(err)
	}
	toks, err := collect(t, ts)
	if len(toks) != 1 || toks[0].Label != "id" {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("a lex error is expected; got: %v", err)
	}
	if lexErr.Row != 1 || lexErr.Col != 3 || lexErr.Lexeme != "$$" {
		t.Fatalf("unexpected error: %+v", lexErr)
	}
}

func TestMaleeniTokenStream_AgreesWithTokenStream(t *testing.T) {
	clspec, err, _ := lexical.Compile(exprLexSpec("\\ +"))
	if err != nil {
		t.Fatal(err)
	}
	srcs := []string{
		"a + b",
		"x1+42 + foo_bar",
		"   7",
		"a $ b",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			ts, err := NewTokenStream(clspec, strings.NewReader(src))
			if err != nil {
				t.Fatal(err)
			}
			want, wantErr := collect(t, ts)

			mts, err := NewMaleeniTokenStream(exprLexSpec(" +"), strings.NewReader(src))
			if err != nil {
				t.Fatal(err)
			}
			got, gotErr := collect(t, mts)

			if (wantErr == nil) != (gotErr == nil) {
				t.Fatalf("unexpected error; want: %v, got: %v", wantErr, gotErr)
			}
			if len(want) != len(got) {
				t.Fatalf("unexpected tokens; want: %v, got: %v", want, got)
			}
			for i := range want {
				if *want[i] != *got[i] {
					t.Fatalf("#%v: unexpected token; want: %+v, got: %+v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestCompileMaleeni(t *testing.T) {
	tests := []struct {
		caption string
		lspec   *lexical.LexSpec
	}{
		{
			caption: "a named specification",
			lspec:   exprLexSpec(" +"),
		},
		{
			caption: "a specification without a name",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "a+"),
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			clspec, err := CompileMaleeni(tt.lspec)
			if err != nil {
				t.Fatal(err)
			}
			if len(clspec.KindNames) != len(tt.lspec.Entries)+1 {
				t.Fatalf("unexpected kinds: %v", clspec.KindNames)
			}
		})
	}
}

func TestCompileMaleeni_Error(t *testing.T) {
	lspec := &lexical.LexSpec{
		Entries: []*lexical.LexEntry{
			newLexEntry("t1", "a"),
			newLexEntry("t2", "(a"),
		},
	}
	_, err := CompileMaleeni(lspec)
	if err == nil {
		t.Fatalf("expected error didn't occur")
	}
	if !strings.HasPrefix(err.Error(), "t2: ") {
		t.Fatalf("the error must be reported for the malformed pattern; got: %v", err)
	}
}
