package grammar

import (
	"testing"
)

func TestFollow(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		follow  map[string][]string
	}{
		{
			caption: "productions contain only non-empty productions",
			src:     exprGrammar,
			follow: map[string][]string{
				"E'": {SymbolEOF},
				"E":  {"+", ")", SymbolEOF},
				"T":  {"+", "*", ")", SymbolEOF},
				"F":  {"+", "*", ")", SymbolEOF},
			},
		},
		{
			caption: "nullable symbols pass FOLLOW of the LHS through",
			src: `
S -> A B
A -> a | EPSILON
B -> b | EPSILON
`,
			follow: map[string][]string{
				"S": {SymbolEOF},
				"A": {"b", SymbolEOF},
				"B": {SymbolEOF},
			},
		},
		{
			caption: "a non-terminal followed by an ε placeholder",
			src: `
S -> A EPSILON c
A -> a
`,
			follow: map[string][]string{
				"A": {"c"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			gram := parseTestGrammar(t, tt.src)
			for sym, expected := range tt.follow {
				actual, ok := gram.Follow(sym)
				if !ok {
					t.Fatalf("FOLLOW of %v was not found", sym)
				}
				testSymbols(t, "FOLLOW("+sym+")", expected, actual)
			}
		})
	}
}

func TestFollow_Terminal(t *testing.T) {
	gram := parseTestGrammar(t, exprGrammar)
	_, ok := gram.Follow("id")
	if ok {
		t.Fatalf("FOLLOW of a terminal must not be found")
	}
}
