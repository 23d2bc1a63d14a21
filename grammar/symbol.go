package grammar

import (
	"math"

	"golang.org/x/exp/slices"
)

const (
	// SymbolEpsilon is a placeholder for the empty string. It reserves no stack slot.
	SymbolEpsilon = "EPSILON"

	// SymbolEOF is the end-of-input marker. Token streams are terminated by it.
	SymbolEOF = "$"

	symbolEpsilonAlias = "ε"
)

func isEpsilon(text string) bool {
	return text == SymbolEpsilon || text == symbolEpsilonAlias
}

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
	symbolKindEpsilon     = symbolKind("epsilon")
	symbolKindEOF         = symbolKind("eof")
)

func (t symbolKind) String() string {
	return string(t)
}

const (
	symbolOrderEOF     = math.MaxInt32 - 1
	symbolOrderEpsilon = math.MaxInt32
)

// symbolTable classifies every symbol exactly once. The registration order is used to print symbols
// in a stable order.
type symbolTable struct {
	kinds    map[string]symbolKind
	order    map[string]int
	nonTerms []string
	terms    []string
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		kinds: map[string]symbolKind{
			SymbolEpsilon: symbolKindEpsilon,
			SymbolEOF:     symbolKindEOF,
		},
		order: map[string]int{
			SymbolEpsilon: symbolOrderEpsilon,
			SymbolEOF:     symbolOrderEOF,
		},
	}
}

func (t *symbolTable) registerNonTerminal(text string) bool {
	if _, ok := t.kinds[text]; ok {
		return false
	}
	t.kinds[text] = symbolKindNonTerminal
	t.order[text] = len(t.nonTerms) + len(t.terms)
	t.nonTerms = append(t.nonTerms, text)
	return true
}

func (t *symbolTable) registerTerminal(text string) bool {
	if _, ok := t.kinds[text]; ok {
		return false
	}
	t.kinds[text] = symbolKindTerminal
	t.order[text] = len(t.nonTerms) + len(t.terms)
	t.terms = append(t.terms, text)
	return true
}

func (t *symbolTable) kind(text string) (symbolKind, bool) {
	k, ok := t.kinds[text]
	return k, ok
}

func (t *symbolTable) isNonTerminal(text string) bool {
	return t.kinds[text] == symbolKindNonTerminal
}

// isTerminal reports whether a symbol can appear in a token stream. The end-of-input marker counts as
// a terminal.
func (t *symbolTable) isTerminal(text string) bool {
	k := t.kinds[text]
	return k == symbolKindTerminal || k == symbolKindEOF
}

func (t *symbolTable) sort(syms []string) {
	slices.SortFunc(syms, func(a, b string) int {
		return t.order[a] - t.order[b]
	})
}
