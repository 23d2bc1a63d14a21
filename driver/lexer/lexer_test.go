package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/nihei9/slrx/compressor"
	"github.com/nihei9/slrx/grammar/lexical"
)

func newLexEntry(kind string, pattern string) *lexical.LexEntry {
	return &lexical.LexEntry{
		Kind:    kind,
		Pattern: pattern,
	}
}

func newToken(kindID int, lexeme string) *Token {
	return &Token{
		KindID: KindID(kindID),
		Lexeme: []byte(lexeme),
	}
}

func newEOFToken() *Token {
	return &Token{
		EOF: true,
	}
}

func newInvalidToken(lexeme string) *Token {
	return &Token{
		Lexeme:  []byte(lexeme),
		Invalid: true,
	}
}

func withPos(tok *Token, row int, col int) *Token {
	tok.Row = row
	tok.Col = col
	return tok
}

func TestLexer_Next(t *testing.T) {
	test := []struct {
		caption string
		lspec   *lexical.LexSpec
		src     string
		tokens  []*Token
	}{
		{
			caption: "the lexer scans the longest lexemes",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "(a|b)*abb"),
					newLexEntry("t2", `\ +`),
				},
			},
			src: "abb aabb aaabb babb bbabb abbbabb",
			tokens: []*Token{
				withPos(newToken(1, "abb"), 0, 0),
				withPos(newToken(2, " "), 0, 3),
				withPos(newToken(1, "aabb"), 0, 4),
				withPos(newToken(2, " "), 0, 8),
				withPos(newToken(1, "aaabb"), 0, 9),
				withPos(newToken(2, " "), 0, 14),
				withPos(newToken(1, "babb"), 0, 15),
				withPos(newToken(2, " "), 0, 19),
				withPos(newToken(1, "bbabb"), 0, 20),
				withPos(newToken(2, " "), 0, 25),
				withPos(newToken(1, "abbbabb"), 0, 26),
				withPos(newEOFToken(), 0, 33),
			},
		},
		{
			caption: "optional and repeated groups",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "b?a+"),
					newLexEntry("t2", "(ab)?(cd)+"),
					newLexEntry("t3", `\ +`),
				},
			},
			src: "ba baaa a aaa abcd abcdcdcd cd cdcdcd",
			tokens: []*Token{
				withPos(newToken(1, "ba"), 0, 0),
				withPos(newToken(3, " "), 0, 2),
				withPos(newToken(1, "baaa"), 0, 3),
				withPos(newToken(3, " "), 0, 7),
				withPos(newToken(1, "a"), 0, 8),
				withPos(newToken(3, " "), 0, 9),
				withPos(newToken(1, "aaa"), 0, 10),
				withPos(newToken(3, " "), 0, 13),
				withPos(newToken(2, "abcd"), 0, 14),
				withPos(newToken(3, " "), 0, 18),
				withPos(newToken(2, "abcdcdcd"), 0, 19),
				withPos(newToken(3, " "), 0, 27),
				withPos(newToken(2, "cd"), 0, 28),
				withPos(newToken(3, " "), 0, 30),
				withPos(newToken(2, "cdcdcd"), 0, 31),
				withPos(newEOFToken(), 0, 37),
			},
		},
		{
			caption: "an entry listed earlier wins when two kinds accept the same lexeme",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("kw_if", "if"),
					newLexEntry("id", "[a-z]+"),
					newLexEntry("ws", `\ +`),
				},
			},
			src: "if iff i",
			tokens: []*Token{
				withPos(newToken(1, "if"), 0, 0),
				withPos(newToken(3, " "), 0, 2),
				withPos(newToken(2, "iff"), 0, 3),
				withPos(newToken(3, " "), 0, 6),
				withPos(newToken(2, "i"), 0, 7),
				withPos(newEOFToken(), 0, 8),
			},
		},
		{
			caption: "the lexer falls back to the last accepted lexeme",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "abc"),
					newLexEntry("t2", "a"),
					newLexEntry("t3", "b"),
				},
			},
			src: "ababc",
			tokens: []*Token{
				withPos(newToken(2, "a"), 0, 0),
				withPos(newToken(3, "b"), 0, 1),
				withPos(newToken(1, "abc"), 0, 2),
				withPos(newEOFToken(), 0, 5),
			},
		},
		{
			caption: "consecutive unaccepted characters make one invalid token",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "a+"),
				},
			},
			src: "aXYaa",
			tokens: []*Token{
				withPos(newToken(1, "a"), 0, 0),
				withPos(newInvalidToken("XY"), 0, 1),
				withPos(newToken(1, "aa"), 0, 3),
				withPos(newEOFToken(), 0, 5),
			},
		},
		{
			caption: "an unaccepted prefix at the end of the source is an invalid token",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "abc"),
				},
			},
			src: "abcab",
			tokens: []*Token{
				withPos(newToken(1, "abc"), 0, 0),
				withPos(newInvalidToken("ab"), 0, 3),
				withPos(newEOFToken(), 0, 5),
			},
		},
		{
			caption: "columns are counted in code points",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("greek", "[αβγ]"),
					newLexEntry("ws", `\ `),
				},
			},
			src: "αβ γ",
			tokens: []*Token{
				withPos(newToken(1, "α"), 0, 0),
				withPos(newToken(1, "β"), 0, 1),
				withPos(newToken(2, " "), 0, 2),
				withPos(newToken(1, "γ"), 0, 3),
				withPos(newEOFToken(), 0, 4),
			},
		},
		{
			caption: "the lexer returns the EOF token for an empty source",
			lspec: &lexical.LexSpec{
				Entries: []*lexical.LexEntry{
					newLexEntry("t1", "a"),
				},
			},
			src: "",
			tokens: []*Token{
				withPos(newEOFToken(), 0, 0),
			},
		},
	}
	levels := []compressor.Level{
		compressor.LevelNone,
		compressor.LevelUniqueRows,
		compressor.LevelRowDisplacement,
	}
	for _, tt := range test {
		for _, compLv := range levels {
			t.Run(fmt.Sprintf("%v/%v", tt.caption, compLv), func(t *testing.T) {
				clspec, err, cerrs := lexical.Compile(tt.lspec, lexical.CompressionLevel(compLv))
				if err != nil {
					for _, cerr := range cerrs {
						t.Logf("%#v", cerr)
					}
					t.Fatalf("unexpected error: %v", err)
				}
				lexer, err := NewLexer(NewLexSpec(clspec), strings.NewReader(tt.src))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				for _, eTok := range tt.tokens {
					tok, err := lexer.Next()
					if err != nil {
						t.Fatal(err)
					}
					testToken(t, eTok, tok)

					if tok.EOF {
						break
					}
				}
			})
		}
	}
}

func TestLexer_Next_WithPosition(t *testing.T) {
	lspec := &lexical.LexSpec{
		Entries: []*lexical.LexEntry{
			newLexEntry("newline", "\\\n+"),
			newLexEntry("any", "[a-zαβ]"),
		},
	}

	clspec, err, _ := lexical.Compile(lspec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := "ab\nαβ\n\n\nz"

	expected := []*Token{
		withPos(newToken(2, "a"), 0, 0),
		withPos(newToken(2, "b"), 0, 1),
		withPos(newToken(1, "\n"), 0, 2),

		withPos(newToken(2, "α"), 1, 0),
		withPos(newToken(2, "β"), 1, 1),
		// When a token contains multiple line breaks, the driver sets the token position to
		// the line number where a lexeme first appears.
		withPos(newToken(1, "\n\n\n"), 1, 2),

		withPos(newToken(2, "z"), 4, 0),
		withPos(newEOFToken(), 4, 1),
	}

	lexer, err := NewLexer(NewLexSpec(clspec), strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, eTok := range expected {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatal(err)
		}

		testToken(t, eTok, tok)

		if tok.EOF {
			break
		}
	}
}

func testToken(t *testing.T, expected, actual *Token) {
	t.Helper()

	if actual.KindID != expected.KindID ||
		!bytes.Equal(actual.Lexeme, expected.Lexeme) ||
		actual.EOF != expected.EOF ||
		actual.Invalid != expected.Invalid {
		t.Fatalf(`unexpected token; want: %+v, got: %+v`, expected, actual)
	}

	if actual.Row != expected.Row || actual.Col != expected.Col {
		t.Fatalf(`unexpected token; want: %+v, got: %+v`, expected, actual)
	}
}
