/*
Package grammar analyses context-free grammars for SLR(1) parsing.

A grammar is read from a line-oriented text format (see Parse) or imported from EBNF (see FromEBNF).
The package computes FIRST and FOLLOW sets, builds the canonical LR(0) automaton of the augmented
grammar, and derives the SLR(1) reduce entries from FOLLOW. Conflicts are recorded on the automaton
instead of failing the build, so non-SLR grammars can still be inspected.

	gram, err := grammar.Parse(src)
	automaton, err := grammar.BuildAutomaton(gram)
	if !automaton.IsSLR() {
		for _, c := range automaton.Conflicts() { ... }
	}
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrx.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.grammar")
}
