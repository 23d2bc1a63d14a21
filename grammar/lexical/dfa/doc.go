/*
Package dfa turns Thompson NFAs into deterministic automata.

FromNFA runs the subset construction and Minimize merges equivalent states by partition
refinement. A minimal DFA can be flattened into a ScanTable or emitted as Go source by GenScanner.

	n, _ := nfa.Compile("(a|b)*abb")
	d := dfa.Minimize(dfa.FromNFA(n))
	d.Match("babb") // true
*/
package dfa

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrx.lexical'.
func tracer() tracing.Trace {
	return tracing.Select("slrx.lexical")
}
