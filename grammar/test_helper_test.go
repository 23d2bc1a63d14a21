package grammar

import (
	"strings"
	"testing"
)

const exprGrammar = `
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func parseTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	gram, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse a grammar: %v", err)
	}
	return gram
}

func buildTestAutomaton(t *testing.T, src string) *Automaton {
	t.Helper()

	automaton, err := BuildAutomaton(parseTestGrammar(t, src))
	if err != nil {
		t.Fatalf("failed to build an automaton: %v", err)
	}
	return automaton
}

func testSymbols(t *testing.T, caption string, expected, actual []string) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("%v: unexpected symbols; want: %v, got: %v", caption, expected, actual)
	}
	for i, sym := range expected {
		if actual[i] != sym {
			t.Fatalf("%v: unexpected symbols; want: %v, got: %v", caption, expected, actual)
		}
	}
}
