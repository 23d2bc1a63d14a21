package nfa

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// accepts simulates n on input.
func accepts(n *NFA, input string) bool {
	closure := func(states map[int]bool) map[int]bool {
		var stack []int
		for s := range states {
			stack = append(stack, s)
		}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range n.Epsilon(s) {
				if !states[next] {
					states[next] = true
					stack = append(stack, next)
				}
			}
		}
		return states
	}

	cur := closure(map[int]bool{StateStart: true})
	for _, c := range input {
		next := map[int]bool{}
		for s := range cur {
			for _, t := range n.Step(s, c) {
				next[t] = true
			}
		}
		cur = closure(next)
	}
	for s := range cur {
		if n.State(s).Accepting {
			return true
		}
	}
	return false
}

func TestCompile_Shape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrx.lexical")
	defer teardown()

	tests := []struct {
		pattern string
		states  int
		symbols []rune
	}{
		{pattern: "a", states: 2, symbols: []rune{'a'}},
		{pattern: "ab", states: 4, symbols: []rune{'a', 'b'}},
		{pattern: "a|b", states: 6, symbols: []rune{'a', 'b'}},
		{pattern: "a*", states: 4, symbols: []rune{'a'}},
		{pattern: "a+", states: 4, symbols: []rune{'a'}},
		{pattern: "a?", states: 4, symbols: []rune{'a'}},
		{pattern: "[a-c]", states: 10, symbols: []rune{'a', 'b', 'c'}},
		{pattern: "a(b|c)*", states: 10, symbols: []rune{'a', 'b', 'c'}},
		{pattern: "a.b", states: 4, symbols: []rune{'a', 'b'}},
		{pattern: " a @ b ", states: 4, symbols: []rune{'a', 'b'}},
		{pattern: `\(\)`, states: 4, symbols: []rune{'(', ')'}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if n.Len() != tt.states {
				t.Errorf("unexpected state count; want: %v, got: %v", tt.states, n.Len())
			}
			if !reflect.DeepEqual(n.Symbols(), tt.symbols) {
				t.Errorf("unexpected symbols; want: %q, got: %q", tt.symbols, n.Symbols())
			}
			for s := 0; s < n.Len(); s++ {
				if got, want := n.State(s).Accepting, s == n.Len()-1; got != want {
					t.Errorf("state %v: unexpected accepting flag; want: %v, got: %v", s, want, got)
				}
			}
		})
	}
}

func TestCompile_Language(t *testing.T) {
	tests := []struct {
		pattern string
		match   []string
		reject  []string
	}{
		{
			pattern: "a(b|c)*",
			match:   []string{"a", "ab", "ac", "abcbc"},
			reject:  []string{"", "b", "ba", "abd"},
		},
		{
			pattern: "(a|b)*abb",
			match:   []string{"abb", "aabb", "babb", "ababb"},
			reject:  []string{"", "ab", "abba", "bb"},
		},
		{
			pattern: "ab?c",
			match:   []string{"ac", "abc"},
			reject:  []string{"abbc", "a", "bc"},
		},
		{
			pattern: "a+b",
			match:   []string{"ab", "aaab"},
			reject:  []string{"b", "a", "aba"},
		},
		{
			pattern: "a|bc*",
			match:   []string{"a", "b", "bccc"},
			reject:  []string{"ac", "", "abc"},
		},
		{
			pattern: "[a-c_]+",
			match:   []string{"a", "_b_", "cab"},
			reject:  []string{"", "d", "a-c"},
		},
		{
			pattern: `[\]\-]`,
			match:   []string{"]", "-"},
			reject:  []string{"\\", "]-"},
		},
		{
			pattern: `[a-]`,
			match:   []string{"a", "-"},
			reject:  []string{"b"},
		},
		{
			pattern: `\*\|\@`,
			match:   []string{"*|@"},
			reject:  []string{"", "*"},
		},
		{
			pattern: "x y z",
			match:   []string{"xyz"},
			reject:  []string{"x y z"},
		},
		{
			pattern: "日本+",
			match:   []string{"日本", "日本本"},
			reject:  []string{"日"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			for _, in := range tt.match {
				if !accepts(n, in) {
					t.Errorf("%q must match %q", tt.pattern, in)
				}
			}
			for _, in := range tt.reject {
				if accepts(n, in) {
					t.Errorf("%q must not match %q", tt.pattern, in)
				}
			}
		})
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	tests := []struct {
		pattern string
		cause   error
		col     int
	}{
		{pattern: "", cause: synErrNullPattern},
		{pattern: " @ ", cause: synErrNullPattern},
		{pattern: "a|", cause: synErrAltLackOfOperand, col: 2},
		{pattern: "|a", cause: synErrAltLackOfOperand, col: 1},
		{pattern: "a..b", cause: synErrAltLackOfOperand, col: 3},
		{pattern: "(a|)", cause: synErrAltLackOfOperand, col: 4},
		{pattern: "*a", cause: synErrRepNoTarget, col: 1},
		{pattern: "a|*", cause: synErrRepNoTarget, col: 3},
		{pattern: "()", cause: synErrGroupNoElem, col: 2},
		{pattern: "(a", cause: synErrGroupUnclosed},
		{pattern: "a)", cause: synErrGroupNoInitiator, col: 2},
		{pattern: `a\`, cause: synErrIncompletedEscSeq, col: 2},
		{pattern: "[]", cause: synErrBExpNoElem, col: 1},
		{pattern: "[ab", cause: synErrBExpUnclosed, col: 1},
		{pattern: "a]", cause: synErrBExpNoInitiator, col: 2},
		{pattern: "[z-a]", cause: synErrRangeInvalidOrder, col: 3},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			if err == nil {
				t.Fatalf("an error must occur; NFA: %+v", n)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected cause; want: %v, got: %v", tt.cause, err)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("a *SyntaxError is expected; got: %T", err)
			}
			if synErr.Col != tt.col {
				t.Errorf("unexpected column; want: %v, got: %v", tt.col, synErr.Col)
			}
		})
	}
}

func TestNFA_TransitionTable(t *testing.T) {
	n, err := Compile("ab")
	if err != nil {
		t.Fatal(err)
	}
	tab := n.TransitionTable()
	expectedCols := []string{"a", "b", SymbolEpsilon}
	if !reflect.DeepEqual(tab.Columns, expectedCols) {
		t.Fatalf("unexpected columns; want: %v, got: %v", expectedCols, tab.Columns)
	}
	expectedRows := [][]string{
		{"1", "", ""},
		{"", "", "2"},
		{"", "3", ""},
		{"", "", ""},
	}
	if !reflect.DeepEqual(tab.Rows, expectedRows) {
		t.Fatalf("unexpected rows; want: %v, got: %v", expectedRows, tab.Rows)
	}
	if !reflect.DeepEqual(tab.Accepting, []bool{false, false, false, true}) {
		t.Fatalf("unexpected accepting flags: %v", tab.Accepting)
	}

	n, err = Compile("a*")
	if err != nil {
		t.Fatal(err)
	}
	tab = n.TransitionTable()
	if got := tab.Rows[2][1]; got != "1, 3" {
		t.Fatalf("unexpected ε cell; want: %v, got: %v", "1, 3", got)
	}
}

func TestMerge(t *testing.T) {
	a, err := Compile("a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile("b+")
	if err != nil {
		t.Fatal(err)
	}
	m := Merge(a, b)
	if m.Len() != 1+a.Len()+b.Len() {
		t.Fatalf("unexpected state count: %v", m.Len())
	}
	if !reflect.DeepEqual(m.Epsilon(StateStart), []int{1, 1 + a.Len()}) {
		t.Fatalf("unexpected start transitions: %v", m.Epsilon(StateStart))
	}
	if !reflect.DeepEqual(m.Symbols(), []rune{'a', 'b'}) {
		t.Fatalf("unexpected symbols: %q", m.Symbols())
	}
	kinds := map[int]bool{}
	for s := 0; s < m.Len(); s++ {
		st := m.State(s)
		if st.Accepting {
			kinds[st.Kind] = true
		}
	}
	if !reflect.DeepEqual(kinds, map[int]bool{0: true, 1: true}) {
		t.Fatalf("unexpected accepting kinds: %v", kinds)
	}
	for _, in := range []string{"a", "b", "bbb"} {
		if !accepts(m, in) {
			t.Errorf("merged automaton must accept %q", in)
		}
	}
	if accepts(m, "ab") {
		t.Errorf("merged automaton must not accept %q", "ab")
	}
}

func TestSymbolString(t *testing.T) {
	tests := []struct {
		c        rune
		expected string
	}{
		{c: 'a', expected: "a"},
		{c: ' ', expected: `' '`},
		{c: '\n', expected: `'\n'`},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := SymbolString(tt.c); got != tt.expected {
				t.Fatalf("want: %v, got: %v", tt.expected, got)
			}
		})
	}
}
